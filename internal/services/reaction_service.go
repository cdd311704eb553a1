package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yukikurage/retro-board-api/internal/events"
	"github.com/yukikurage/retro-board-api/internal/metrics"
	"github.com/yukikurage/retro-board-api/internal/models"
	"github.com/yukikurage/retro-board-api/internal/repository"
)

// ReactionService handles reactions on cards.
type ReactionService struct {
	reactionRepo repository.ReactionRepository
	cards        *CardService
	publisher    EventPublisher
	metrics      *metrics.Metrics
}

// NewReactionService creates a new ReactionService
func NewReactionService(reactionRepo repository.ReactionRepository, cards *CardService, publisher EventPublisher, m *metrics.Metrics) *ReactionService {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &ReactionService{
		reactionRepo: reactionRepo,
		cards:        cards,
		publisher:    publisher,
		metrics:      m,
	}
}

// ReactionKey identifies a reaction by its natural key.
type ReactionKey struct {
	CardID string
	UserID string
	Type   string
}

// AddReaction upserts the reaction. Adding the same key twice converges to
// one row and both calls succeed.
func (s *ReactionService) AddReaction(ctx context.Context, key ReactionKey, initiatorID *string) (*models.Reaction, error) {
	card, err := s.cards.GetCard(ctx, key.CardID)
	if err != nil {
		return nil, err
	}

	reaction, err := s.reactionRepo.Upsert(ctx, &models.Reaction{
		CardID: key.CardID,
		UserID: key.UserID,
		Type:   key.Type,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add reaction: %w", err)
	}
	s.metrics.IncrementReactionAdded()

	if initiatorID == nil {
		initiatorID = &key.UserID
	}
	s.publisher.Notify(card.BoardID, events.CardReactionAdded, events.ReactionAddedPayload{
		CardID:      key.CardID,
		Reaction:    events.NewReactionView(reaction),
		InitiatorID: initiatorID,
	})
	return reaction, nil
}

// RemoveReaction deletes the reaction by key. A missing reaction is an error.
func (s *ReactionService) RemoveReaction(ctx context.Context, key ReactionKey, initiatorID *string) error {
	card, err := s.cards.GetCard(ctx, key.CardID)
	if err != nil {
		return err
	}

	if err := s.reactionRepo.Delete(ctx, key.CardID, key.UserID, key.Type); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReactionNotFound
		}
		return fmt.Errorf("failed to remove reaction: %w", err)
	}

	if initiatorID == nil {
		initiatorID = &key.UserID
	}
	s.publisher.Notify(card.BoardID, events.CardReactionRemoved, events.ReactionRemovedPayload{
		CardID:      key.CardID,
		Reaction:    events.RemovedReaction{UserID: key.UserID, Type: key.Type},
		InitiatorID: initiatorID,
	})
	return nil
}
