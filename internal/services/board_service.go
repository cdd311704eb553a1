package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yukikurage/retro-board-api/internal/metrics"
	"github.com/yukikurage/retro-board-api/internal/models"
	"github.com/yukikurage/retro-board-api/internal/repository"
	"github.com/yukikurage/retro-board-api/internal/utils"
)

// DefaultStageNames is the template used when a board is created without stages.
var DefaultStageNames = []string{"Start", "Stop", "Continue"}

// BoardService provides business logic for board operations.
type BoardService struct {
	boardRepo repository.BoardRepository
	userRepo  repository.UserRepository
	aiService *AIService
	metrics   *metrics.Metrics
}

// NewBoardService creates a new BoardService. aiService may be nil.
func NewBoardService(boardRepo repository.BoardRepository, userRepo repository.UserRepository, aiService *AIService, m *metrics.Metrics) *BoardService {
	return &BoardService{
		boardRepo: boardRepo,
		userRepo:  userRepo,
		aiService: aiService,
		metrics:   m,
	}
}

// StageTemplate is one requested stage. Order overrides the list position.
type StageTemplate struct {
	Name  string
	Order *int
}

// CreateBoardInput represents parameters to create a new board.
type CreateBoardInput struct {
	Title         string
	Summary       *string
	Status        *models.BoardStatus
	ScheduledFor  *time.Time
	OwnerID       *string
	OwnerEmail    *string
	OwnerName     *string
	FacilitatorID *string
	Stages        []StageTemplate
}

// UpdateBoardInput represents a partial update. The Clear flags null out the
// matching optional column.
type UpdateBoardInput struct {
	Title             *string
	Summary           *string
	ClearSummary      bool
	Status            *models.BoardStatus
	ScheduledFor      *time.Time
	ClearScheduledFor bool
	FacilitatorID     *string
	ClearFacilitator  bool
}

// BuildStages expands a stage template into stage rows. An empty template
// yields the default Start/Stop/Continue columns.
func BuildStages(templates []StageTemplate) []models.Stage {
	if len(templates) == 0 {
		stages := make([]models.Stage, len(DefaultStageNames))
		for i, name := range DefaultStageNames {
			stages[i] = models.Stage{Name: name, Order: i}
		}
		return stages
	}

	stages := make([]models.Stage, len(templates))
	for i, tmpl := range templates {
		order := i
		if tmpl.Order != nil {
			order = *tmpl.Order
		}
		stages[i] = models.Stage{Name: tmpl.Name, Order: order}
	}
	return stages
}

// ListBoards returns one page of boards newest first, optionally filtered by owner.
func (s *BoardService) ListBoards(ctx context.Context, ownerID *string, page utils.PaginationParams) ([]models.Board, error) {
	boards, err := s.boardRepo.List(ctx, repository.BoardFilter{OwnerID: ownerID, Page: page})
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}
	return boards, nil
}

// CreateBoard creates a board with its stages. The owner, when known, joins
// as OWNER and a distinct facilitator joins as FACILITATOR.
func (s *BoardService) CreateBoard(ctx context.Context, input CreateBoardInput) (*models.Board, error) {
	ownerID, err := s.resolveOwner(ctx, input)
	if err != nil {
		return nil, err
	}

	board := &models.Board{
		Title:         input.Title,
		Summary:       input.Summary,
		ScheduledFor:  input.ScheduledFor,
		OwnerID:       ownerID,
		FacilitatorID: input.FacilitatorID,
	}
	if input.Status != nil {
		board.Status = *input.Status
	}

	var participants []models.Participant
	if ownerID != nil {
		participants = append(participants, models.Participant{UserID: *ownerID, Role: models.RoleOwner})
	}
	if input.FacilitatorID != nil && (ownerID == nil || *input.FacilitatorID != *ownerID) {
		participants = append(participants, models.Participant{UserID: *input.FacilitatorID, Role: models.RoleFacilitator})
	}

	if err := s.boardRepo.CreateWithTemplate(ctx, board, BuildStages(input.Stages), participants); err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}
	s.metrics.IncrementBoardCreated()

	return s.GetBoard(ctx, board.ID)
}

func (s *BoardService) resolveOwner(ctx context.Context, input CreateBoardInput) (*string, error) {
	if input.OwnerID != nil && *input.OwnerID != "" {
		return input.OwnerID, nil
	}
	if input.OwnerEmail == nil || strings.TrimSpace(*input.OwnerEmail) == "" {
		return nil, nil
	}

	owner, err := s.userRepo.Upsert(ctx, repository.UserUpsert{
		Email: strings.TrimSpace(*input.OwnerEmail),
		Name:  input.OwnerName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve board owner: %w", err)
	}
	return &owner.ID, nil
}

// GetBoard returns a board with every nested relation.
func (s *BoardService) GetBoard(ctx context.Context, id string) (*models.Board, error) {
	board, err := s.boardRepo.FindDetail(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to find board: %w", err)
	}
	return board, nil
}

// EnsureBoard reports ErrBoardNotFound unless the board exists.
func (s *BoardService) EnsureBoard(ctx context.Context, id string) (*models.Board, error) {
	board, err := s.boardRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to find board: %w", err)
	}
	return board, nil
}

// UpdateBoard applies a partial update and returns the refreshed board.
func (s *BoardService) UpdateBoard(ctx context.Context, id string, input UpdateBoardInput) (*models.Board, error) {
	board, err := s.EnsureBoard(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		board.Title = *input.Title
	}
	if input.ClearSummary {
		board.Summary = nil
	} else if input.Summary != nil {
		board.Summary = input.Summary
	}
	if input.Status != nil {
		board.Status = *input.Status
	}
	if input.ClearScheduledFor {
		board.ScheduledFor = nil
	} else if input.ScheduledFor != nil {
		board.ScheduledFor = input.ScheduledFor
	}
	if input.ClearFacilitator {
		board.FacilitatorID = nil
	} else if input.FacilitatorID != nil {
		board.FacilitatorID = input.FacilitatorID
	}

	if err := s.boardRepo.Update(ctx, board); err != nil {
		return nil, fmt.Errorf("failed to update board: %w", err)
	}

	return s.GetBoard(ctx, id)
}

// DeleteBoard removes a board with its stages, cards and participants.
func (s *BoardService) DeleteBoard(ctx context.Context, id string) error {
	if err := s.boardRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBoardNotFound
		}
		return fmt.Errorf("failed to delete board: %w", err)
	}
	return nil
}

// SummarizeBoard asks the AI service for a summary of the board's cards and
// stores it on the board.
func (s *BoardService) SummarizeBoard(ctx context.Context, id string) (*models.Board, error) {
	if s.aiService == nil {
		return nil, ErrAIServiceNotConfigured
	}

	board, err := s.GetBoard(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(board.Cards) == 0 {
		return nil, ErrNothingToSummarize
	}

	summary, err := s.aiService.SummarizeBoard(ctx, board)
	if err != nil {
		s.metrics.RecordSummary("error")
		return nil, err
	}
	s.metrics.RecordSummary("ok")

	board.Summary = &summary
	if err := s.boardRepo.Update(ctx, board); err != nil {
		return nil, fmt.Errorf("failed to save board summary: %w", err)
	}
	return board, nil
}
