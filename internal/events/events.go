// Package events defines the live-collaboration event taxonomy shared by the
// API (which publishes) and the reconciler (which applies).
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/yukikurage/retro-board-api/internal/models"
)

type Name string

const (
	CardCreated         Name = "card:created"
	CardUpdated         Name = "card:updated"
	CardDeleted         Name = "card:deleted"
	CardReactionAdded   Name = "card:reaction-added"
	CardReactionRemoved Name = "card:reaction-removed"
)

// Known reports whether n is part of the taxonomy.
func (n Name) Known() bool {
	switch n {
	case CardCreated, CardUpdated, CardDeleted, CardReactionAdded, CardReactionRemoved:
		return true
	}
	return false
}

// ChannelName is the per-board shared channel all clients of a board subscribe to.
func ChannelName(boardID string) string {
	return "presence-retro-board-" + boardID
}

type AuthorView struct {
	ID    string  `json:"id"`
	Name  *string `json:"name"`
	Email string  `json:"email"`
}

type ReactionView struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Type   string `json:"type"`
}

// CardView is the denormalized card shape carried by card events.
type CardView struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	StageID   string         `json:"stageId"`
	AuthorID  *string        `json:"authorId"`
	Author    *AuthorView    `json:"author"`
	CreatedAt *string        `json:"createdAt"`
	UpdatedAt *string        `json:"updatedAt"`
	Reactions []ReactionView `json:"reactions"`
}

type CardCreatedPayload struct {
	Card CardView `json:"card"`
}

type CardUpdatedPayload struct {
	Card        CardView `json:"card"`
	InitiatorID *string  `json:"initiatorId"`
}

type CardDeletedPayload struct {
	CardID      string  `json:"cardId"`
	InitiatorID *string `json:"initiatorId"`
}

type ReactionAddedPayload struct {
	CardID      string       `json:"cardId"`
	Reaction    ReactionView `json:"reaction"`
	InitiatorID *string      `json:"initiatorId"`
}

// RemovedReaction has no id: the row is gone and clients match on (userId, type).
type RemovedReaction struct {
	UserID string `json:"userId"`
	Type   string `json:"type"`
}

type ReactionRemovedPayload struct {
	CardID      string          `json:"cardId"`
	Reaction    RemovedReaction `json:"reaction"`
	InitiatorID *string         `json:"initiatorId"`
}

// NewCardView assembles the event view of a card. Author and Reactions are
// read from the preloaded relations when present.
func NewCardView(card *models.Card) CardView {
	view := CardView{
		ID:        card.ID,
		Content:   card.Content,
		StageID:   card.StageID,
		AuthorID:  card.AuthorID,
		CreatedAt: isoTime(card.CreatedAt),
		UpdatedAt: isoTime(card.UpdatedAt),
		Reactions: make([]ReactionView, 0, len(card.Reactions)),
	}
	if card.Author != nil {
		view.Author = &AuthorView{ID: card.Author.ID, Name: card.Author.Name, Email: card.Author.Email}
	}
	for _, r := range card.Reactions {
		view.Reactions = append(view.Reactions, NewReactionView(&r))
	}
	return view
}

func NewReactionView(r *models.Reaction) ReactionView {
	return ReactionView{ID: r.ID, UserID: r.UserID, Type: r.Type}
}

func isoTime(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.UTC().Format(time.RFC3339Nano)
	return &s
}

// Envelope is the wire form used by the self-hosted stream: one named event
// and its raw payload.
type Envelope struct {
	Event Name            `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// NewEnvelope encodes payload under event.
func NewEnvelope(event Name, payload any) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode %s payload: %w", event, err)
	}
	return Envelope{Event: event, Data: data}, nil
}
