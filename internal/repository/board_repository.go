package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/yukikurage/retro-board-api/internal/database"
	"github.com/yukikurage/retro-board-api/internal/models"
)

// GormBoardRepository is a GORM implementation of BoardRepository
type GormBoardRepository struct {
	db *gorm.DB
}

// NewBoardRepository creates a new BoardRepository
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &GormBoardRepository{db: db}
}

// List returns boards newest first
func (r *GormBoardRepository) List(ctx context.Context, filter BoardFilter) ([]models.Board, error) {
	query := r.db.WithContext(ctx).
		Preload("Stages", database.StagesInOrder).
		Preload("Participants", joinedFirst).
		Preload("Participants.User").
		Order("created_at DESC")

	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}
	if filter.Page.Limit > 0 {
		query = query.Scopes(database.Paginate(filter.Page))
	}

	boards := []models.Board{}
	if err := query.Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}

// CreateWithTemplate creates a board with its stages and participants atomically.
func (r *GormBoardRepository) CreateWithTemplate(ctx context.Context, board *models.Board, stages []models.Stage, participants []models.Participant) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Stages", "Participants", "Cards", "Owner", "Facilitator").Create(board).Error; err != nil {
			return err
		}

		for i := range stages {
			stages[i].BoardID = board.ID
		}
		if len(stages) > 0 {
			if err := tx.Create(&stages).Error; err != nil {
				return err
			}
		}

		for i := range participants {
			participants[i].BoardID = board.ID
		}
		if len(participants) > 0 {
			if err := tx.Omit("User").Create(&participants).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// FindByID finds a board by ID with optional preloading
func (r *GormBoardRepository) FindByID(ctx context.Context, id string, preload ...string) (*models.Board, error) {
	var board models.Board
	query := r.db.WithContext(ctx)

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.Where("id = ?", id).First(&board).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// FindDetail finds a board with owner, facilitator, stages, participants and
// cards (newest first) including comments and reactions.
func (r *GormBoardRepository) FindDetail(ctx context.Context, id string) (*models.Board, error) {
	var board models.Board
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Facilitator").
		Preload("Stages", database.StagesInOrder).
		Preload("Participants", joinedFirst).
		Preload("Participants.User").
		Preload("Cards", newestFirst).
		Preload("Cards.Author").
		Preload("Cards.Stage").
		Preload("Cards.Comments", database.OldestFirst).
		Preload("Cards.Comments.Author").
		Preload("Cards.Reactions", database.OldestFirst).
		Where("id = ?", id).
		First(&board).Error
	if err != nil {
		return nil, err
	}
	return &board, nil
}

// Update updates a board
func (r *GormBoardRepository) Update(ctx context.Context, board *models.Board) error {
	return r.db.WithContext(ctx).
		Omit("Owner", "Facilitator", "Stages", "Participants", "Cards").
		Save(board).Error
}

// Delete deletes a board and all related data in a transaction
func (r *GormBoardRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cardIDs := tx.Model(&models.Card{}).Select("id").Where("board_id = ?", id)

		if err := tx.Where("card_id IN (?)", cardIDs).Delete(&models.Reaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("card_id IN (?)", cardIDs).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("board_id = ?", id).Delete(&models.Card{}).Error; err != nil {
			return err
		}
		if err := tx.Where("board_id = ?", id).Delete(&models.Stage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("board_id = ?", id).Delete(&models.Participant{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&models.Board{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func joinedFirst(db *gorm.DB) *gorm.DB {
	return db.Order("joined_at ASC")
}

func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}
