package reconcile

import (
	"sort"
	"time"

	"github.com/yukikurage/retro-board-api/internal/events"
)

// UpvoteType is the reaction type counted as a vote.
const UpvoteType = "UPVOTE"

// Column is one stage with its cards in display order.
type Column struct {
	Stage Stage
	Cards []events.CardView
}

// Upvotes counts the UPVOTE reactions of card.
func Upvotes(card events.CardView) int {
	n := 0
	for _, r := range card.Reactions {
		if r.Type == UpvoteType {
			n++
		}
	}
	return n
}

// SortForDisplay orders cards by upvotes descending, newest first on ties.
func SortForDisplay(cards []events.CardView) {
	sort.SliceStable(cards, func(i, j int) bool {
		vi, vj := Upvotes(cards[i]), Upvotes(cards[j])
		if vi != vj {
			return vi > vj
		}
		return createdAt(cards[i]).After(createdAt(cards[j]))
	})
}

// Columns groups cards by stage. Stages are ordered by their order field;
// cards whose stage is unknown are left out.
func Columns(stages []Stage, cards []events.CardView) []Column {
	ordered := append([]Stage(nil), stages...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Order < ordered[j].Order })

	byStage := make(map[string][]events.CardView, len(ordered))
	for _, c := range cloneCards(cards) {
		byStage[c.StageID] = append(byStage[c.StageID], c)
	}

	columns := make([]Column, 0, len(ordered))
	for _, s := range ordered {
		col := byStage[s.ID]
		if col == nil {
			col = []events.CardView{}
		}
		SortForDisplay(col)
		columns = append(columns, Column{Stage: s, Cards: col})
	}
	return columns
}

func createdAt(card events.CardView) time.Time {
	if card.CreatedAt == nil {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, *card.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}
