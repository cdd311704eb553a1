package dto

import "github.com/yukikurage/retro-board-api/internal/models"

type CreateCardRequest struct {
	Content  string           `json:"content" binding:"required"`
	StageID  string           `json:"stageId" binding:"required"`
	Type     *models.CardType `json:"type"`
	AuthorID *string          `json:"authorId"`
}

type UpdateCardRequest struct {
	Content *string                   `json:"content"`
	Type    Nullable[models.CardType] `json:"type"`
	StageID *string                   `json:"stageId"`
}

type CreateCommentRequest struct {
	Body     string `json:"body" binding:"required"`
	AuthorID string `json:"authorId" binding:"required"`
}

type ReactionRequest struct {
	Type   string `json:"type" binding:"required"`
	UserID string `json:"userId" binding:"required"`
}

// ReactionQuery is the key of a reaction removal, taken from the query string.
type ReactionQuery struct {
	Type   string `form:"type" json:"type" binding:"required"`
	UserID string `form:"userId" json:"userId" binding:"required"`
}
