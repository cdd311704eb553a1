package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/yukikurage/retro-board-api/internal/errors"
	"github.com/yukikurage/retro-board-api/internal/models"
	"github.com/yukikurage/retro-board-api/internal/services"
)

// ContextKeyBoard holds the board loaded by RequireBoard.
const ContextKeyBoard = "board"

// BoardFinder looks a board up without its relations.
type BoardFinder interface {
	EnsureBoard(ctx context.Context, id string) (*models.Board, error)
}

// RequireBoard loads the board named by the :id parameter and answers 404
// when it does not exist.
func RequireBoard(boards BoardFinder, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		boardID := c.Param("id")

		board, err := boards.EnsureBoard(c.Request.Context(), boardID)
		if err != nil {
			if errors.Is(err, services.ErrBoardNotFound) {
				apierrors.NotFound(c, "Board not found")
				return
			}
			logger.Error("Failed to load board",
				zap.String("board_id", boardID),
				zap.Error(err),
			)
			apierrors.InternalError(c, "Failed to fetch board")
			return
		}

		c.Set(ContextKeyBoard, board)
		c.Next()
	}
}

// GetBoard returns the board stored by RequireBoard.
func GetBoard(c *gin.Context) (*models.Board, bool) {
	v, exists := c.Get(ContextKeyBoard)
	if !exists {
		return nil, false
	}
	board, ok := v.(*models.Board)
	return board, ok
}
