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

type CardHandler struct {
	cardService *services.CardService
	logger      *zap.Logger
}

func NewCardHandler(cardService *services.CardService, logger *zap.Logger) *CardHandler {
	return &CardHandler{cardService: cardService, logger: logger}
}

// ListCards returns the board's cards newest first with author, stage,
// comments and reactions.
func (h *CardHandler) ListCards(c *gin.Context) {
	boardID := c.Param("id")

	cards, err := h.cardService.ListCards(c.Request.Context(), boardID)
	if err != nil {
		respondServiceError(c, h.logger, err, "Unable to fetch cards", zap.String("board_id", boardID))
		return
	}

	c.JSON(http.StatusOK, cards)
}

func (h *CardHandler) CreateCard(c *gin.Context) {
	boardID := c.Param("id")

	var req dto.CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondBindError(c, err)
		return
	}

	authorID := req.AuthorID
	if authorID == nil || *authorID == "" {
		authorID = middleware.InitiatorID(c, nil)
	}

	card, err := h.cardService.CreateCard(c.Request.Context(), services.CreateCardInput{
		BoardID:  boardID,
		StageID:  req.StageID,
		Content:  req.Content,
		Type:     presentEnum(req.Type),
		AuthorID: authorID,
	})
	if err != nil {
		respondServiceError(c, h.logger, err, "Unable to create card",
			zap.String("board_id", boardID),
			zap.String("stage_id", req.StageID),
		)
		return
	}

	c.JSON(http.StatusCreated, card)
}

// UpdateCard changes content, type or stage. A null type clears it.
func (h *CardHandler) UpdateCard(c *gin.Context) {
	boardID := c.Param("id")
	cardID := c.Param("cardId")

	var req dto.UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondBindError(c, err)
		return
	}

	input := services.UpdateCardInput{
		Content:     req.Content,
		ClearType:   req.Type.Set && req.Type.Value == nil,
		Type:        presentEnum(req.Type.Value),
		StageID:     req.StageID,
		InitiatorID: middleware.InitiatorID(c, nil),
	}
	if req.StageID != nil && *req.StageID == "" {
		input.StageID = nil
	}

	card, err := h.cardService.UpdateCard(c.Request.Context(), boardID, cardID, input)
	if err != nil {
		respondServiceError(c, h.logger, err, "Unable to update card",
			zap.String("board_id", boardID),
			zap.String("card_id", cardID),
		)
		return
	}

	c.JSON(http.StatusOK, card)
}

func (h *CardHandler) DeleteCard(c *gin.Context) {
	boardID := c.Param("id")
	cardID := c.Param("cardId")

	err := h.cardService.DeleteCard(c.Request.Context(), boardID, cardID, middleware.InitiatorID(c, nil))
	if err != nil {
		respondServiceError(c, h.logger, err, "Unable to delete card",
			zap.String("board_id", boardID),
			zap.String("card_id", cardID),
		)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
