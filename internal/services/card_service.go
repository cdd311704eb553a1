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

// CardService handles card business logic. Every successful mutation is
// followed by a board event.
type CardService struct {
	cardRepo  repository.CardRepository
	stageRepo repository.StageRepository
	boards    *BoardService
	publisher EventPublisher
	metrics   *metrics.Metrics
}

// NewCardService creates a new CardService
func NewCardService(cardRepo repository.CardRepository, stageRepo repository.StageRepository, boards *BoardService, publisher EventPublisher, m *metrics.Metrics) *CardService {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &CardService{
		cardRepo:  cardRepo,
		stageRepo: stageRepo,
		boards:    boards,
		publisher: publisher,
		metrics:   m,
	}
}

// CreateCardInput represents input for creating a card
type CreateCardInput struct {
	BoardID  string
	StageID  string
	Content  string
	Type     *models.CardType
	AuthorID *string
}

// UpdateCardInput represents input for updating a card
type UpdateCardInput struct {
	Content     *string
	Type        *models.CardType
	ClearType   bool
	StageID     *string
	InitiatorID *string
}

// ListCards returns a board's cards newest first
func (s *CardService) ListCards(ctx context.Context, boardID string) ([]models.Card, error) {
	if _, err := s.boards.EnsureBoard(ctx, boardID); err != nil {
		return nil, err
	}
	cards, err := s.cardRepo.ListByBoard(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, nil
}

// CreateCard creates a card in one of the board's stages and announces it.
func (s *CardService) CreateCard(ctx context.Context, input CreateCardInput) (*models.Card, error) {
	if _, err := s.boards.EnsureBoard(ctx, input.BoardID); err != nil {
		return nil, err
	}
	if err := s.ensureStage(ctx, input.BoardID, input.StageID); err != nil {
		return nil, err
	}

	card := &models.Card{
		BoardID:  input.BoardID,
		StageID:  input.StageID,
		Content:  input.Content,
		Type:     input.Type,
		AuthorID: input.AuthorID,
	}
	if err := s.cardRepo.Create(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}
	s.metrics.IncrementCardCreated()

	// The write committed; a failed reload still returns and announces the row.
	created, err := s.cardRepo.FindByID(ctx, card.ID)
	if err != nil {
		created = card
		created.EnsureCollections()
	}

	s.publisher.Notify(input.BoardID, events.CardCreated, events.CardCreatedPayload{
		Card: events.NewCardView(created),
	})
	return created, nil
}

// UpdateCard applies a partial update to a card of the board and announces it.
func (s *CardService) UpdateCard(ctx context.Context, boardID, cardID string, input UpdateCardInput) (*models.Card, error) {
	card, err := s.findInBoard(ctx, boardID, cardID)
	if err != nil {
		return nil, err
	}

	if input.Content != nil {
		card.Content = *input.Content
	}
	if input.ClearType {
		card.Type = nil
	} else if input.Type != nil {
		card.Type = input.Type
	}
	if input.StageID != nil && *input.StageID != card.StageID {
		if err := s.ensureStage(ctx, boardID, *input.StageID); err != nil {
			return nil, err
		}
		card.StageID = *input.StageID
	}

	if err := s.cardRepo.Update(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to update card: %w", err)
	}

	updated, err := s.cardRepo.FindByID(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload card: %w", err)
	}

	s.publisher.Notify(boardID, events.CardUpdated, events.CardUpdatedPayload{
		Card:        events.NewCardView(updated),
		InitiatorID: input.InitiatorID,
	})
	return updated, nil
}

// DeleteCard removes a card of the board and announces it.
func (s *CardService) DeleteCard(ctx context.Context, boardID, cardID string, initiatorID *string) error {
	if _, err := s.findInBoard(ctx, boardID, cardID); err != nil {
		return err
	}

	if err := s.cardRepo.Delete(ctx, cardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCardNotFound
		}
		return fmt.Errorf("failed to delete card: %w", err)
	}

	s.publisher.Notify(boardID, events.CardDeleted, events.CardDeletedPayload{
		CardID:      cardID,
		InitiatorID: initiatorID,
	})
	return nil
}

// GetCard returns a card with its relations.
func (s *CardService) GetCard(ctx context.Context, cardID string) (*models.Card, error) {
	card, err := s.cardRepo.FindByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to find card: %w", err)
	}
	return card, nil
}

func (s *CardService) findInBoard(ctx context.Context, boardID, cardID string) (*models.Card, error) {
	card, err := s.cardRepo.FindInBoard(ctx, boardID, cardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to find card: %w", err)
	}
	return card, nil
}

func (s *CardService) ensureStage(ctx context.Context, boardID, stageID string) error {
	if _, err := s.stageRepo.FindInBoard(ctx, boardID, stageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStageNotInBoard
		}
		return fmt.Errorf("failed to find stage: %w", err)
	}
	return nil
}
