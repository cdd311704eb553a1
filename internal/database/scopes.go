package database

import (
	"gorm.io/gorm"

	"github.com/yukikurage/retro-board-api/internal/utils"
)

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// StagesInOrder orders stages by their board position. Usable as a Preload condition.
func StagesInOrder(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// OldestFirst orders by creation time ascending, e.g. comments on a card.
func OldestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}
