package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yukikurage/retro-board-api/internal/dto"
	apierrors "github.com/yukikurage/retro-board-api/internal/errors"
	"github.com/yukikurage/retro-board-api/internal/services"
)

type ParticipantHandler struct {
	participantService *services.ParticipantService
	logger             *zap.Logger
}

func NewParticipantHandler(participantService *services.ParticipantService, logger *zap.Logger) *ParticipantHandler {
	return &ParticipantHandler{participantService: participantService, logger: logger}
}

func (h *ParticipantHandler) ListParticipants(c *gin.Context) {
	boardID := c.Param("id")

	participants, err := h.participantService.ListParticipants(c.Request.Context(), boardID)
	if err != nil {
		respondServiceError(c, h.logger, err, "Unable to fetch participants", zap.String("board_id", boardID))
		return
	}

	c.JSON(http.StatusOK, participants)
}

// UpsertParticipant adds the user to the board or updates their role.
func (h *ParticipantHandler) UpsertParticipant(c *gin.Context) {
	boardID := c.Param("id")

	var req dto.UpsertParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondBindError(c, err)
		return
	}

	participant, err := h.participantService.UpsertParticipant(c.Request.Context(), boardID, req.UserID, presentEnum(req.Role))
	if err != nil {
		respondServiceError(c, h.logger, err, "Unable to add participant",
			zap.String("board_id", boardID),
			zap.String("user_id", req.UserID),
		)
		return
	}

	c.JSON(http.StatusCreated, participant)
}
