// Package reconcile keeps a client's local projection of a board's cards in
// step with the server: one full fetch, then incremental event merges.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/yukikurage/retro-board-api/internal/events"
)

// State of a BoardView.
type State int

const (
	Loading State = iota
	Ready
	// Reconciling is held only while Apply merges under the view's lock.
	// State never reports it; callers see Ready before and after a merge.
	Reconciling
	Failed
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Reconciling:
		return "reconciling"
	case Failed:
		return "error"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

var (
	ErrInvalidTransition = errors.New("invalid board view transition")
	ErrNotReady          = errors.New("board view is not ready")
	ErrUnknownEvent      = errors.New("unknown board event")
)

// Stage is a board column as the client needs it for grouping.
type Stage struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
}

// Snapshot is the result of a full fetch.
type Snapshot struct {
	Stages []Stage
	Cards  []events.CardView
}

// Loader performs the full fetch of a board.
type Loader interface {
	Load(ctx context.Context, boardID string) (Snapshot, error)
}

// BoardView is the local projection of one board. It is safe for concurrent
// use; events are merged one at a time.
type BoardView struct {
	boardID string

	mu     sync.Mutex
	state  State
	stages []Stage
	cards  []events.CardView
	err    error
}

// NewBoardView returns a view in the Loading state.
func NewBoardView(boardID string) *BoardView {
	return &BoardView{boardID: boardID, state: Loading}
}

func (v *BoardView) BoardID() string {
	return v.boardID
}

// State returns Loading, Ready or Failed.
func (v *BoardView) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Err returns the failure that moved the view to the error state.
func (v *BoardView) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

// Load performs the initial fetch. It is only legal while Loading.
func (v *BoardView) Load(ctx context.Context, loader Loader) error {
	v.mu.Lock()
	if v.state != Loading {
		state := v.state
		v.mu.Unlock()
		return fmt.Errorf("%w: load from %s", ErrInvalidTransition, state)
	}
	v.mu.Unlock()
	return v.fetch(ctx, loader)
}

// Retry re-runs the full fetch after a failed load.
func (v *BoardView) Retry(ctx context.Context, loader Loader) error {
	v.mu.Lock()
	if v.state != Failed {
		state := v.state
		v.mu.Unlock()
		return fmt.Errorf("%w: retry from %s", ErrInvalidTransition, state)
	}
	v.state = Loading
	v.err = nil
	v.mu.Unlock()
	return v.fetch(ctx, loader)
}

func (v *BoardView) fetch(ctx context.Context, loader Loader) error {
	snapshot, err := loader.Load(ctx, v.boardID)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.state = Failed
		v.err = err
		return err
	}
	v.stages = snapshot.Stages
	v.cards = snapshot.Cards
	if v.cards == nil {
		v.cards = []events.CardView{}
	}
	v.state = Ready
	return nil
}

// Apply merges one event into the view. Events arriving before the view is
// Ready are rejected; the full fetch already covers them.
func (v *BoardView) Apply(envelope events.Envelope) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.state != Ready {
		return ErrNotReady
	}
	v.state = Reconciling
	defer func() { v.state = Ready }()

	cards, err := merge(v.cards, envelope)
	if err != nil {
		return err
	}
	v.cards = cards
	return nil
}

// Cards returns a copy of the local card list in merge order.
func (v *BoardView) Cards() []events.CardView {
	v.mu.Lock()
	defer v.mu.Unlock()
	return cloneCards(v.cards)
}

// Stages returns the stages from the last full fetch.
func (v *BoardView) Stages() []Stage {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]Stage(nil), v.stages...)
}

// Columns groups the current cards by the fetched stages in display order.
func (v *BoardView) Columns() []Column {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Columns(v.stages, v.cards)
}

func cloneCards(cards []events.CardView) []events.CardView {
	out := make([]events.CardView, len(cards))
	for i, c := range cards {
		c.Reactions = append([]events.ReactionView{}, c.Reactions...)
		out[i] = c
	}
	return out
}
