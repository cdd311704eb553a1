package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/yukikurage/retro-board-api/internal/errors"
	"github.com/yukikurage/retro-board-api/internal/services"
)

// respondServiceError maps service sentinels to their status codes. Anything
// else is logged with fields and answered with the opaque message.
func respondServiceError(c *gin.Context, logger *zap.Logger, err error, message string, fields ...zap.Field) {
	switch {
	case errors.Is(err, services.ErrBoardNotFound):
		apierrors.NotFound(c, "Board not found")
	case errors.Is(err, services.ErrCardNotFound):
		apierrors.NotFound(c, "Card not found")
	case errors.Is(err, services.ErrStageNotFound):
		apierrors.NotFound(c, "Stage not found")
	case errors.Is(err, services.ErrReactionNotFound):
		apierrors.NotFound(c, "Reaction not found")
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrStageNotInBoard):
		apierrors.Unprocessable(c, "Stage does not belong to this board")
	case errors.Is(err, services.ErrNothingToSummarize):
		apierrors.Unprocessable(c, "Board has no cards to summarize")
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, "AI service is not configured")
	default:
		logger.Error(message, append(fields, zap.Error(err))...)
		apierrors.InternalError(c, message)
	}
}

// presentEnum treats an empty enum value as absent.
func presentEnum[T ~string](v *T) *T {
	if v == nil || *v == "" {
		return nil
	}
	return v
}
