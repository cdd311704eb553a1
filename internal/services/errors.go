package services

import "errors"

var (
	ErrBoardNotFound          = errors.New("board not found")
	ErrStageNotFound          = errors.New("stage not found")
	ErrStageNotInBoard        = errors.New("stage does not belong to this board")
	ErrCardNotFound           = errors.New("card not found")
	ErrReactionNotFound       = errors.New("reaction not found")
	ErrUserNotFound           = errors.New("user not found")
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrNothingToSummarize     = errors.New("board has no cards to summarize")
)
