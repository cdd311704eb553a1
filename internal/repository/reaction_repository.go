package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yukikurage/retro-board-api/internal/database"
	"github.com/yukikurage/retro-board-api/internal/models"
)

// GormReactionRepository is a GORM implementation of ReactionRepository
type GormReactionRepository struct {
	db *gorm.DB
}

// NewReactionRepository creates a new ReactionRepository
func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &GormReactionRepository{db: db}
}

// Upsert inserts with ON CONFLICT DO NOTHING and then reads the row back by
// its natural key, since a skipped insert leaves the generated ID unused.
func (r *GormReactionRepository) Upsert(ctx context.Context, reaction *models.Reaction) (*models.Reaction, error) {
	db := r.db.WithContext(ctx)
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "card_id"}, {Name: "user_id"}, {Name: "type"}},
		DoNothing: true,
	}).Create(reaction).Error; err != nil {
		return nil, err
	}

	var stored models.Reaction
	if err := db.Where("card_id = ? AND user_id = ? AND type = ?", reaction.CardID, reaction.UserID, reaction.Type).
		First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *GormReactionRepository) Delete(ctx context.Context, cardID, userID, reactionType string) error {
	result := r.db.WithContext(ctx).
		Where("card_id = ? AND user_id = ? AND type = ?", cardID, userID, reactionType).
		Delete(&models.Reaction{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormReactionRepository) ListByCard(ctx context.Context, cardID string) ([]models.Reaction, error) {
	reactions := []models.Reaction{}
	if err := r.db.WithContext(ctx).
		Scopes(database.OldestFirst).
		Where("card_id = ?", cardID).
		Find(&reactions).Error; err != nil {
		return nil, err
	}
	return reactions, nil
}
