package services

import (
	"context"
	"fmt"

	"github.com/yukikurage/retro-board-api/internal/models"
	"github.com/yukikurage/retro-board-api/internal/repository"
)

// StageService provides business logic for board stages.
type StageService struct {
	stageRepo repository.StageRepository
	boards    *BoardService
}

// NewStageService creates a new StageService.
func NewStageService(stageRepo repository.StageRepository, boards *BoardService) *StageService {
	return &StageService{
		stageRepo: stageRepo,
		boards:    boards,
	}
}

// ListStages returns a board's stages in display order.
func (s *StageService) ListStages(ctx context.Context, boardID string) ([]models.Stage, error) {
	if _, err := s.boards.EnsureBoard(ctx, boardID); err != nil {
		return nil, err
	}
	stages, err := s.stageRepo.ListByBoard(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stages: %w", err)
	}
	return stages, nil
}

// CreateStage appends a stage. Without an explicit order it takes the next
// position, i.e. the current number of stages.
func (s *StageService) CreateStage(ctx context.Context, boardID, name string, order *int) (*models.Stage, error) {
	if _, err := s.boards.EnsureBoard(ctx, boardID); err != nil {
		return nil, err
	}

	stage := &models.Stage{BoardID: boardID, Name: name}
	if order != nil {
		stage.Order = *order
	} else {
		count, err := s.stageRepo.CountByBoard(ctx, boardID)
		if err != nil {
			return nil, fmt.Errorf("failed to count stages: %w", err)
		}
		stage.Order = int(count)
	}

	if err := s.stageRepo.Create(ctx, stage); err != nil {
		return nil, fmt.Errorf("failed to create stage: %w", err)
	}
	return stage, nil
}
