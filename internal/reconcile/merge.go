package reconcile

import (
	"encoding/json"
	"fmt"

	"github.com/yukikurage/retro-board-api/internal/events"
)

// merge returns cards with envelope applied. Every rule is keyed by id (or by
// userId and type for removals) so duplicated and reordered deliveries are
// harmless.
func merge(cards []events.CardView, envelope events.Envelope) ([]events.CardView, error) {
	switch envelope.Event {
	case events.CardCreated:
		var p events.CardCreatedPayload
		if err := decode(envelope, &p); err != nil {
			return nil, err
		}
		return applyCreated(cards, p.Card), nil

	case events.CardUpdated:
		var p events.CardUpdatedPayload
		if err := decode(envelope, &p); err != nil {
			return nil, err
		}
		return applyUpdated(cards, p.Card), nil

	case events.CardDeleted:
		var p events.CardDeletedPayload
		if err := decode(envelope, &p); err != nil {
			return nil, err
		}
		return applyDeleted(cards, p.CardID), nil

	case events.CardReactionAdded:
		var p events.ReactionAddedPayload
		if err := decode(envelope, &p); err != nil {
			return nil, err
		}
		return applyReactionAdded(cards, p.CardID, p.Reaction), nil

	case events.CardReactionRemoved:
		var p events.ReactionRemovedPayload
		if err := decode(envelope, &p); err != nil {
			return nil, err
		}
		return applyReactionRemoved(cards, p.CardID, p.Reaction), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, envelope.Event)
}

func decode(envelope events.Envelope, dst any) error {
	if err := json.Unmarshal(envelope.Data, dst); err != nil {
		return fmt.Errorf("decode %s: %w", envelope.Event, err)
	}
	return nil
}

func indexOf(cards []events.CardView, id string) int {
	for i := range cards {
		if cards[i].ID == id {
			return i
		}
	}
	return -1
}

func applyCreated(cards []events.CardView, card events.CardView) []events.CardView {
	if indexOf(cards, card.ID) >= 0 {
		return cards
	}
	if card.Reactions == nil {
		card.Reactions = []events.ReactionView{}
	}
	return append([]events.CardView{card}, cards...)
}

func applyUpdated(cards []events.CardView, card events.CardView) []events.CardView {
	i := indexOf(cards, card.ID)
	if i < 0 {
		return cards
	}
	out := cloneCards(cards)
	if card.Reactions == nil {
		card.Reactions = out[i].Reactions
	}
	out[i] = card
	return out
}

func applyDeleted(cards []events.CardView, cardID string) []events.CardView {
	i := indexOf(cards, cardID)
	if i < 0 {
		return cards
	}
	out := make([]events.CardView, 0, len(cards)-1)
	out = append(out, cards[:i]...)
	return append(out, cards[i+1:]...)
}

func applyReactionAdded(cards []events.CardView, cardID string, reaction events.ReactionView) []events.CardView {
	i := indexOf(cards, cardID)
	if i < 0 {
		return cards
	}
	for _, r := range cards[i].Reactions {
		if r.ID == reaction.ID {
			return cards
		}
	}
	out := cloneCards(cards)
	out[i].Reactions = append(out[i].Reactions, reaction)
	return out
}

func applyReactionRemoved(cards []events.CardView, cardID string, reaction events.RemovedReaction) []events.CardView {
	i := indexOf(cards, cardID)
	if i < 0 {
		return cards
	}
	out := cloneCards(cards)
	kept := out[i].Reactions[:0]
	for _, r := range out[i].Reactions {
		if r.UserID == reaction.UserID && r.Type == reaction.Type {
			continue
		}
		kept = append(kept, r)
	}
	out[i].Reactions = kept
	return out
}
