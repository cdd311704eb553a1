package services

import "github.com/yukikurage/retro-board-api/internal/events"

// EventPublisher is the notify half of a live mutation. Services call it only
// after the store write committed; it must not block or fail the caller.
type EventPublisher interface {
	Notify(boardID string, event events.Name, payload any)
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Notify(string, events.Name, any) {}
