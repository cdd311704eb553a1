package services

import (
	"context"
	"fmt"

	"github.com/yukikurage/retro-board-api/internal/models"
	"github.com/yukikurage/retro-board-api/internal/repository"
)

// ParticipantService handles board membership.
type ParticipantService struct {
	participantRepo repository.ParticipantRepository
	boards          *BoardService
}

// NewParticipantService creates a new ParticipantService
func NewParticipantService(participantRepo repository.ParticipantRepository, boards *BoardService) *ParticipantService {
	return &ParticipantService{
		participantRepo: participantRepo,
		boards:          boards,
	}
}

// ListParticipants returns a board's participants by join time.
func (s *ParticipantService) ListParticipants(ctx context.Context, boardID string) ([]models.Participant, error) {
	if _, err := s.boards.EnsureBoard(ctx, boardID); err != nil {
		return nil, err
	}
	participants, err := s.participantRepo.ListByBoard(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	return participants, nil
}

// UpsertParticipant adds the user to the board, or updates their role when
// one is given.
func (s *ParticipantService) UpsertParticipant(ctx context.Context, boardID, userID string, role *models.ParticipantRole) (*models.Participant, error) {
	if _, err := s.boards.EnsureBoard(ctx, boardID); err != nil {
		return nil, err
	}
	participant, err := s.participantRepo.Upsert(ctx, boardID, userID, role)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert participant: %w", err)
	}
	return participant, nil
}
