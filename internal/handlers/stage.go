package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yukikurage/retro-board-api/internal/dto"
	apierrors "github.com/yukikurage/retro-board-api/internal/errors"
	"github.com/yukikurage/retro-board-api/internal/services"
)

type StageHandler struct {
	stageService *services.StageService
	logger       *zap.Logger
}

func NewStageHandler(stageService *services.StageService, logger *zap.Logger) *StageHandler {
	return &StageHandler{stageService: stageService, logger: logger}
}

func (h *StageHandler) ListStages(c *gin.Context) {
	boardID := c.Param("id")

	stages, err := h.stageService.ListStages(c.Request.Context(), boardID)
	if err != nil {
		respondServiceError(c, h.logger, err, "Unable to fetch stages", zap.String("board_id", boardID))
		return
	}

	c.JSON(http.StatusOK, stages)
}

// CreateStage appends a stage; without an explicit order it goes last.
func (h *StageHandler) CreateStage(c *gin.Context) {
	boardID := c.Param("id")

	var req dto.CreateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondBindError(c, err)
		return
	}

	stage, err := h.stageService.CreateStage(c.Request.Context(), boardID, req.Name, req.Order)
	if err != nil {
		respondServiceError(c, h.logger, err, "Unable to create stage", zap.String("board_id", boardID))
		return
	}

	c.JSON(http.StatusCreated, stage)
}
