package dto

import (
	"time"

	"github.com/yukikurage/retro-board-api/internal/models"
)

// StageInput is one column of a custom board template. Order overrides the
// position in the list when present.
type StageInput struct {
	Name  string `json:"name" binding:"required"`
	Order *int   `json:"order"`
}

type CreateBoardRequest struct {
	Title         string              `json:"title" binding:"required"`
	Summary       *string             `json:"summary"`
	Status        *models.BoardStatus `json:"status"`
	ScheduledFor  *time.Time          `json:"scheduledFor"`
	OwnerID       *string             `json:"ownerId"`
	OwnerEmail    *string             `json:"ownerEmail"`
	OwnerName     *string             `json:"ownerName"`
	FacilitatorID *string             `json:"facilitatorId"`
	Stages        []StageInput        `json:"stages" binding:"omitempty,dive"`
}

// UpdateBoardRequest is a partial update. Nullable fields may be cleared with
// an explicit null; Title and Status can only be replaced.
type UpdateBoardRequest struct {
	Title         *string             `json:"title"`
	Summary       Nullable[string]    `json:"summary"`
	Status        *models.BoardStatus `json:"status"`
	ScheduledFor  Nullable[time.Time] `json:"scheduledFor"`
	FacilitatorID Nullable[string]    `json:"facilitatorId"`
}

type CreateStageRequest struct {
	Name  string `json:"name" binding:"required"`
	Order *int   `json:"order"`
}

// SuccessResponse is the body of every delete endpoint.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// SummaryResponse carries the generated board summary.
type SummaryResponse struct {
	BoardID string `json:"boardId"`
	Summary string `json:"summary"`
}
