package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yukikurage/retro-board-api/internal/dto"
	apierrors "github.com/yukikurage/retro-board-api/internal/errors"
	"github.com/yukikurage/retro-board-api/internal/middleware"
	"github.com/yukikurage/retro-board-api/internal/services"
)

type ReactionHandler struct {
	reactionService *services.ReactionService
	logger          *zap.Logger
}

func NewReactionHandler(reactionService *services.ReactionService, logger *zap.Logger) *ReactionHandler {
	return &ReactionHandler{reactionService: reactionService, logger: logger}
}

// AddReaction upserts the (card, user, type) reaction. Repeating it is not an error.
func (h *ReactionHandler) AddReaction(c *gin.Context) {
	cardID := c.Param("id")

	var req dto.ReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondBindError(c, err)
		return
	}

	key := services.ReactionKey{CardID: cardID, UserID: req.UserID, Type: req.Type}
	reaction, err := h.reactionService.AddReaction(c.Request.Context(), key, middleware.InitiatorID(c, &req.UserID))
	if err != nil {
		respondServiceError(c, h.logger, err, "Unable to add reaction",
			zap.String("card_id", cardID),
			zap.String("user_id", req.UserID),
		)
		return
	}

	c.JSON(http.StatusCreated, reaction)
}

// RemoveReaction deletes the reaction named by the type and userId query
// parameters.
func (h *ReactionHandler) RemoveReaction(c *gin.Context) {
	cardID := c.Param("id")

	var query dto.ReactionQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		apierrors.MissingFields(c, "type and userId query params are required")
		return
	}

	key := services.ReactionKey{CardID: cardID, UserID: query.UserID, Type: query.Type}
	if err := h.reactionService.RemoveReaction(c.Request.Context(), key, middleware.InitiatorID(c, &query.UserID)); err != nil {
		respondServiceError(c, h.logger, err, "Unable to remove reaction",
			zap.String("card_id", cardID),
			zap.String("user_id", query.UserID),
		)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
