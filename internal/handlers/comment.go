package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yukikurage/retro-board-api/internal/dto"
	apierrors "github.com/yukikurage/retro-board-api/internal/errors"
	"github.com/yukikurage/retro-board-api/internal/services"
)

type CommentHandler struct {
	commentService *services.CommentService
	logger         *zap.Logger
}

func NewCommentHandler(commentService *services.CommentService, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{commentService: commentService, logger: logger}
}

// ListComments returns a card's comments oldest first.
func (h *CommentHandler) ListComments(c *gin.Context) {
	cardID := c.Param("id")

	comments, err := h.commentService.ListComments(c.Request.Context(), cardID)
	if err != nil {
		respondServiceError(c, h.logger, err, "Unable to fetch comments", zap.String("card_id", cardID))
		return
	}

	c.JSON(http.StatusOK, comments)
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	cardID := c.Param("id")

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondBindError(c, err)
		return
	}

	comment, err := h.commentService.AddComment(c.Request.Context(), cardID, req.Body, req.AuthorID)
	if err != nil {
		respondServiceError(c, h.logger, err, "Unable to create comment", zap.String("card_id", cardID))
		return
	}

	c.JSON(http.StatusCreated, comment)
}
