package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/yukikurage/retro-board-api/internal/database"
	"github.com/yukikurage/retro-board-api/internal/models"
)

// GormStageRepository is a GORM implementation of StageRepository
type GormStageRepository struct {
	db *gorm.DB
}

// NewStageRepository creates a new StageRepository
func NewStageRepository(db *gorm.DB) StageRepository {
	return &GormStageRepository{db: db}
}

func (r *GormStageRepository) ListByBoard(ctx context.Context, boardID string) ([]models.Stage, error) {
	stages := []models.Stage{}
	if err := r.db.WithContext(ctx).
		Scopes(database.StagesInOrder).
		Where("board_id = ?", boardID).
		Find(&stages).Error; err != nil {
		return nil, err
	}
	return stages, nil
}

func (r *GormStageRepository) CountByBoard(ctx context.Context, boardID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Stage{}).Where("board_id = ?", boardID).Count(&count).Error
	return count, err
}

func (r *GormStageRepository) FindInBoard(ctx context.Context, boardID, stageID string) (*models.Stage, error) {
	var stage models.Stage
	if err := r.db.WithContext(ctx).
		Where("id = ? AND board_id = ?", stageID, boardID).
		First(&stage).Error; err != nil {
		return nil, err
	}
	return &stage, nil
}

func (r *GormStageRepository) Create(ctx context.Context, stage *models.Stage) error {
	return r.db.WithContext(ctx).Create(stage).Error
}
