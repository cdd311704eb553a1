package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yukikurage/retro-board-api/internal/dto"
	apierrors "github.com/yukikurage/retro-board-api/internal/errors"
	"github.com/yukikurage/retro-board-api/internal/services"
	"github.com/yukikurage/retro-board-api/internal/utils"
)

type BoardHandler struct {
	boardService *services.BoardService
	logger       *zap.Logger
}

func NewBoardHandler(boardService *services.BoardService, logger *zap.Logger) *BoardHandler {
	return &BoardHandler{
		boardService: boardService,
		logger:       logger,
	}
}

// ListBoards returns boards newest first, optionally filtered by ownerId.
func (h *BoardHandler) ListBoards(c *gin.Context) {
	var ownerID *string
	if v := c.Query("ownerId"); v != "" {
		ownerID = &v
	}

	boards, err := h.boardService.ListBoards(c.Request.Context(), ownerID, utils.GetPaginationParams(c))
	if err != nil {
		respondServiceError(c, h.logger, err, "Unable to fetch boards")
		return
	}

	c.JSON(http.StatusOK, boards)
}

// CreateBoard creates a board with default or custom stages.
func (h *BoardHandler) CreateBoard(c *gin.Context) {
	var req dto.CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondBindError(c, err)
		return
	}

	stages := make([]services.StageTemplate, len(req.Stages))
	for i, s := range req.Stages {
		stages[i] = services.StageTemplate{Name: s.Name, Order: s.Order}
	}

	board, err := h.boardService.CreateBoard(c.Request.Context(), services.CreateBoardInput{
		Title:         req.Title,
		Summary:       req.Summary,
		Status:        presentEnum(req.Status),
		ScheduledFor:  req.ScheduledFor,
		OwnerID:       req.OwnerID,
		OwnerEmail:    req.OwnerEmail,
		OwnerName:     req.OwnerName,
		FacilitatorID: req.FacilitatorID,
		Stages:        stages,
	})
	if err != nil {
		respondServiceError(c, h.logger, err, "Unable to create board", zap.String("title", req.Title))
		return
	}

	c.JSON(http.StatusCreated, dto.NewBoardDetail(board))
}

// GetBoard returns a board with stages, participants, cards, comments and reactions.
func (h *BoardHandler) GetBoard(c *gin.Context) {
	boardID := c.Param("id")

	board, err := h.boardService.GetBoard(c.Request.Context(), boardID)
	if err != nil {
		respondServiceError(c, h.logger, err, "Unable to retrieve board", zap.String("board_id", boardID))
		return
	}

	c.JSON(http.StatusOK, dto.NewBoardDetail(board))
}

// UpdateBoard applies a partial update. An unknown status is rejected before
// the board is read.
func (h *BoardHandler) UpdateBoard(c *gin.Context) {
	boardID := c.Param("id")

	var req dto.UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondBindError(c, err)
		return
	}

	input := services.UpdateBoardInput{
		Title:             req.Title,
		Status:            presentEnum(req.Status),
		Summary:           req.Summary.Value,
		ClearSummary:      req.Summary.Set && req.Summary.Value == nil,
		ScheduledFor:      req.ScheduledFor.Value,
		ClearScheduledFor: req.ScheduledFor.Set && req.ScheduledFor.Value == nil,
		FacilitatorID:     req.FacilitatorID.Value,
		ClearFacilitator:  req.FacilitatorID.Set && req.FacilitatorID.Value == nil,
	}

	board, err := h.boardService.UpdateBoard(c.Request.Context(), boardID, input)
	if err != nil {
		respondServiceError(c, h.logger, err, "Unable to update board", zap.String("board_id", boardID))
		return
	}

	c.JSON(http.StatusOK, dto.NewBoardDetail(board))
}

// DeleteBoard removes a board and everything on it.
func (h *BoardHandler) DeleteBoard(c *gin.Context) {
	boardID := c.Param("id")

	if err := h.boardService.DeleteBoard(c.Request.Context(), boardID); err != nil {
		respondServiceError(c, h.logger, err, "Unable to delete board", zap.String("board_id", boardID))
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// SummarizeBoard generates an AI summary of the board's cards and stores it.
func (h *BoardHandler) SummarizeBoard(c *gin.Context) {
	boardID := c.Param("id")

	board, err := h.boardService.SummarizeBoard(c.Request.Context(), boardID)
	if err != nil {
		respondServiceError(c, h.logger, err, "Unable to summarize board", zap.String("board_id", boardID))
		return
	}

	summary := ""
	if board.Summary != nil {
		summary = *board.Summary
	}
	c.JSON(http.StatusOK, dto.SummaryResponse{BoardID: board.ID, Summary: summary})
}
