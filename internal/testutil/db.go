// Package testutil holds shared fixtures for package tests.
package testutil

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yukikurage/retro-board-api/internal/database"
	"github.com/yukikurage/retro-board-api/internal/models"
)

// NewSQLite opens a migrated in-memory database that lives for the test.
// A single connection keeps every query on the same in-memory database.
func NewSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.Migrate(db))
	return db
}

// CreateUser inserts a user with the given email.
func CreateUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateBoard inserts a board with the named stages in order.
func CreateBoard(t *testing.T, db *gorm.DB, title string, stageNames ...string) (*models.Board, []models.Stage) {
	t.Helper()
	board := &models.Board{Title: title}
	require.NoError(t, db.Create(board).Error)

	stages := make([]models.Stage, 0, len(stageNames))
	for i, name := range stageNames {
		stage := models.Stage{BoardID: board.ID, Name: name, Order: i}
		require.NoError(t, db.Create(&stage).Error)
		stages = append(stages, stage)
	}
	return board, stages
}

// CreateCard inserts a card in the given stage.
func CreateCard(t *testing.T, db *gorm.DB, boardID, stageID, content string) *models.Card {
	t.Helper()
	card := &models.Card{BoardID: boardID, StageID: stageID, Content: content}
	require.NoError(t, db.Create(card).Error)
	return card
}

// NewMock returns a gorm handle over go-sqlmock using the MySQL dialector,
// for exercising store failures.
func NewMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}
