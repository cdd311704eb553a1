package reconcile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yukikurage/retro-board-api/internal/events"
)

// ErrBoardNotFound is returned by HTTPLoader when the API answers 404.
var ErrBoardNotFound = errors.New("board not found")

// HTTPLoader fetches a board's stages and cards from the API.
type HTTPLoader struct {
	baseURL string
	client  *http.Client
	userID  string
}

// NewHTTPLoader creates a loader for the API rooted at baseURL. userID, when
// set, is sent as X-User-Id.
func NewHTTPLoader(baseURL, userID string) *HTTPLoader {
	return &HTTPLoader{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
		userID:  userID,
	}
}

func (l *HTTPLoader) Load(ctx context.Context, boardID string) (Snapshot, error) {
	var snapshot Snapshot
	if err := l.get(ctx, "/api/boards/"+url.PathEscape(boardID)+"/stages", &snapshot.Stages); err != nil {
		return Snapshot{}, err
	}
	if err := l.get(ctx, "/api/boards/"+url.PathEscape(boardID)+"/cards", &snapshot.Cards); err != nil {
		return Snapshot{}, err
	}
	if snapshot.Cards == nil {
		snapshot.Cards = []events.CardView{}
	}
	return snapshot, nil
}

func (l *HTTPLoader) get(ctx context.Context, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if l.userID != "" {
		req.Header.Set("X-User-Id", l.userID)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrBoardNotFound
	}
	if resp.StatusCode != http.StatusOK {
		var body struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&body)
		if body.Error == "" {
			body.Error = resp.Status
		}
		return fmt.Errorf("GET %s: %s", path, body.Error)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
