package reconcile

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/yukikurage/retro-board-api/internal/events"
)

// Stream reads board event envelopes from the self-hosted websocket stream.
type Stream struct {
	conn *websocket.Conn
}

// StreamURL turns the API base URL into the board's stream URL.
func StreamURL(baseURL, boardID string) string {
	u := strings.TrimRight(baseURL, "/")
	switch {
	case strings.HasPrefix(u, "https://"):
		u = "wss://" + strings.TrimPrefix(u, "https://")
	case strings.HasPrefix(u, "http://"):
		u = "ws://" + strings.TrimPrefix(u, "http://")
	}
	return u + "/api/boards/" + boardID + "/stream"
}

// DialStream connects to rawURL.
func DialStream(ctx context.Context, rawURL, userID string) (*Stream, error) {
	header := http.Header{}
	if userID != "" {
		header.Set("X-User-Id", userID)
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, rawURL, header)
	if err != nil {
		return nil, err
	}
	return &Stream{conn: conn}, nil
}

// Next blocks until the next envelope arrives or the connection fails.
func (s *Stream) Next() (events.Envelope, error) {
	var envelope events.Envelope
	if err := s.conn.ReadJSON(&envelope); err != nil {
		return events.Envelope{}, err
	}
	return envelope, nil
}

func (s *Stream) Close() error {
	s.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return s.conn.Close()
}

// Follow applies every envelope from s to view until the stream ends or ctx
// is cancelled. onChange runs after each successful merge; envelopes that
// fail to merge are passed to onError and skipped.
func Follow(ctx context.Context, s *Stream, view *BoardView, onChange func(), onError func(error)) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			s.conn.Close()
		case <-done:
		}
	}()

	for {
		envelope, err := s.Next()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if err := view.Apply(envelope); err != nil {
			if onError != nil {
				onError(err)
			}
			continue
		}
		if onChange != nil {
			onChange()
		}
	}
}
