package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/yukikurage/retro-board-api/internal/database"
	"github.com/yukikurage/retro-board-api/internal/models"
)

// GormCardRepository is a GORM implementation of CardRepository
type GormCardRepository struct {
	db *gorm.DB
}

// NewCardRepository creates a new CardRepository
func NewCardRepository(db *gorm.DB) CardRepository {
	return &GormCardRepository{db: db}
}

// withRelations preloads everything a card view needs.
func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Stage").
		Preload("Comments", database.OldestFirst).
		Preload("Comments.Author").
		Preload("Reactions", database.OldestFirst)
}

// ListByBoard lists a board's cards newest first
func (r *GormCardRepository) ListByBoard(ctx context.Context, boardID string) ([]models.Card, error) {
	cards := []models.Card{}
	if err := r.db.WithContext(ctx).
		Scopes(withRelations).
		Where("board_id = ?", boardID).
		Order("created_at DESC").
		Find(&cards).Error; err != nil {
		return nil, err
	}
	for i := range cards {
		cards[i].EnsureCollections()
	}
	return cards, nil
}

// Create creates a new card
func (r *GormCardRepository) Create(ctx context.Context, card *models.Card) error {
	return r.db.WithContext(ctx).Omit("Author", "Stage", "Comments", "Reactions").Create(card).Error
}

// FindByID finds a card by ID with relations
func (r *GormCardRepository) FindByID(ctx context.Context, id string) (*models.Card, error) {
	var card models.Card
	if err := r.db.WithContext(ctx).
		Scopes(withRelations).
		Where("id = ?", id).
		First(&card).Error; err != nil {
		return nil, err
	}
	card.EnsureCollections()
	return &card, nil
}

// FindInBoard finds a card scoped to a board
func (r *GormCardRepository) FindInBoard(ctx context.Context, boardID, cardID string) (*models.Card, error) {
	var card models.Card
	if err := r.db.WithContext(ctx).
		Where("id = ? AND board_id = ?", cardID, boardID).
		First(&card).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

// Update updates a card
func (r *GormCardRepository) Update(ctx context.Context, card *models.Card) error {
	return r.db.WithContext(ctx).
		Omit("Author", "Stage", "Comments", "Reactions").
		Save(card).Error
}

// Delete deletes a card and its comments and reactions in a transaction
func (r *GormCardRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("card_id = ?", id).Delete(&models.Reaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("card_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&models.Card{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
