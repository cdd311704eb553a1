package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yukikurage/retro-board-api/internal/models"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListRecent lists the newest users
func (r *GormUserRepository) ListRecent(ctx context.Context, limit int) ([]models.User, error) {
	users := []models.User{}
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Upsert creates or updates a user keyed by email
func (r *GormUserRepository) Upsert(ctx context.Context, input UserUpsert) (*models.User, error) {
	db := r.db.WithContext(ctx)

	user := &models.User{
		Email:     input.Email,
		Name:      input.Name,
		AvatarURL: input.AvatarURL,
	}

	var columns []string
	if input.Name != nil {
		columns = append(columns, "name")
	}
	if input.AvatarURL != nil {
		columns = append(columns, "avatar_url")
	}

	onConflict := clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}
	if len(columns) > 0 {
		onConflict.DoNothing = false
		onConflict.DoUpdates = clause.AssignmentColumns(append(columns, "updated_at"))
	}

	if err := db.Clauses(onConflict).Create(user).Error; err != nil {
		return nil, err
	}

	return r.FindByEmail(ctx, input.Email)
}
