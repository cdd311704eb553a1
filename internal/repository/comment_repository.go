package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/yukikurage/retro-board-api/internal/database"
	"github.com/yukikurage/retro-board-api/internal/models"
)

// GormCommentRepository is a GORM implementation of CommentRepository
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &GormCommentRepository{db: db}
}

func (r *GormCommentRepository) ListByCard(ctx context.Context, cardID string) ([]models.Comment, error) {
	comments := []models.Comment{}
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Scopes(database.OldestFirst).
		Where("card_id = ?", cardID).
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *GormCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	db := r.db.WithContext(ctx)
	if err := db.Omit("Author").Create(comment).Error; err != nil {
		return err
	}
	return db.Preload("Author").Where("id = ?", comment.ID).First(comment).Error
}
