package database

import (
	"fmt"

	"github.com/yukikurage/retro-board-api/internal/models"
	"gorm.io/gorm"
)

// Models lists every persisted entity in dependency order.
func Models() []any {
	return []any{
		&models.User{},
		&models.Board{},
		&models.Stage{},
		&models.Card{},
		&models.Comment{},
		&models.Reaction{},
		&models.Participant{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return EnsureIndexes(db)
}

// EnsureIndexes makes sure the natural-key unique indexes exist. Upserts on
// reactions, participants and users rely on them.
func EnsureIndexes(db *gorm.DB) error {
	indexes := []struct {
		model any
		name  string
	}{
		{&models.Reaction{}, "idx_reactions_card_user_type"},
		{&models.Participant{}, "idx_participants_board_user"},
		{&models.User{}, "idx_users_email"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.model, idx.name) {
			continue
		}
		if err := migrator.CreateIndex(idx.model, idx.name); err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}
	return nil
}
