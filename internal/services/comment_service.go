package services

import (
	"context"
	"fmt"

	"github.com/yukikurage/retro-board-api/internal/models"
	"github.com/yukikurage/retro-board-api/internal/repository"
)

// CommentService handles card comments. Comments are append-only.
type CommentService struct {
	commentRepo repository.CommentRepository
	cards       *CardService
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repository.CommentRepository, cards *CardService) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		cards:       cards,
	}
}

// ListComments returns a card's comments oldest first.
func (s *CommentService) ListComments(ctx context.Context, cardID string) ([]models.Comment, error) {
	if _, err := s.cards.GetCard(ctx, cardID); err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByCard(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// AddComment appends a comment to a card.
func (s *CommentService) AddComment(ctx context.Context, cardID, body, authorID string) (*models.Comment, error) {
	if _, err := s.cards.GetCard(ctx, cardID); err != nil {
		return nil, err
	}

	comment := &models.Comment{CardID: cardID, Body: body, AuthorID: authorID}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}
