package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yukikurage/retro-board-api/internal/models"
)

// GormParticipantRepository is a GORM implementation of ParticipantRepository
type GormParticipantRepository struct {
	db *gorm.DB
}

// NewParticipantRepository creates a new ParticipantRepository
func NewParticipantRepository(db *gorm.DB) ParticipantRepository {
	return &GormParticipantRepository{db: db}
}

func (r *GormParticipantRepository) ListByBoard(ctx context.Context, boardID string) ([]models.Participant, error) {
	participants := []models.Participant{}
	if err := r.db.WithContext(ctx).
		Preload("User").
		Scopes(joinedFirst).
		Where("board_id = ?", boardID).
		Find(&participants).Error; err != nil {
		return nil, err
	}
	return participants, nil
}

func (r *GormParticipantRepository) Upsert(ctx context.Context, boardID, userID string, role *models.ParticipantRole) (*models.Participant, error) {
	db := r.db.WithContext(ctx)

	participant := &models.Participant{BoardID: boardID, UserID: userID}
	onConflict := clause.OnConflict{
		Columns:   []clause.Column{{Name: "board_id"}, {Name: "user_id"}},
		DoNothing: true,
	}
	if role != nil {
		participant.Role = *role
		onConflict.DoNothing = false
		onConflict.DoUpdates = clause.AssignmentColumns([]string{"role"})
	}

	if err := db.Omit("User").Clauses(onConflict).Create(participant).Error; err != nil {
		return nil, err
	}

	var stored models.Participant
	if err := db.Preload("User").
		Where("board_id = ? AND user_id = ?", boardID, userID).
		First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}
