package repository

import (
	"context"

	"github.com/yukikurage/retro-board-api/internal/models"
	"github.com/yukikurage/retro-board-api/internal/utils"
)

// BoardRepository defines the interface for board data access
type BoardRepository interface {
	// List returns boards newest first with ordered stages and participants
	List(ctx context.Context, filter BoardFilter) ([]models.Board, error)

	// CreateWithTemplate creates a board, its stages and its initial participants
	// within a single transaction.
	CreateWithTemplate(ctx context.Context, board *models.Board, stages []models.Stage, participants []models.Participant) error

	// FindByID finds a board by ID with optional preloading
	FindByID(ctx context.Context, id string, preload ...string) (*models.Board, error)

	// FindDetail finds a board with every relation needed to render it
	FindDetail(ctx context.Context, id string) (*models.Board, error)

	// Update saves a board's own columns
	Update(ctx context.Context, board *models.Board) error

	// Delete deletes a board and all related data
	Delete(ctx context.Context, id string) error
}

// BoardFilter holds filtering options for listing boards
type BoardFilter struct {
	OwnerID *string
	Page    utils.PaginationParams
}

// StageRepository defines the interface for stage data access
type StageRepository interface {
	// ListByBoard lists a board's stages in display order
	ListByBoard(ctx context.Context, boardID string) ([]models.Stage, error)

	// CountByBoard counts a board's stages
	CountByBoard(ctx context.Context, boardID string) (int64, error)

	// FindInBoard finds a stage that belongs to the given board
	FindInBoard(ctx context.Context, boardID, stageID string) (*models.Stage, error)

	// Create creates a new stage
	Create(ctx context.Context, stage *models.Stage) error
}

// CardRepository defines the interface for card data access
type CardRepository interface {
	// ListByBoard lists a board's cards newest first with author, stage, comments and reactions
	ListByBoard(ctx context.Context, boardID string) ([]models.Card, error)

	// Create creates a new card
	Create(ctx context.Context, card *models.Card) error

	// FindByID finds a card with author, stage, comments and reactions
	FindByID(ctx context.Context, id string) (*models.Card, error)

	// FindInBoard finds a card that belongs to the given board, without relations
	FindInBoard(ctx context.Context, boardID, cardID string) (*models.Card, error)

	// Update saves a card's own columns
	Update(ctx context.Context, card *models.Card) error

	// Delete deletes a card with its comments and reactions
	Delete(ctx context.Context, id string) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// ListByCard lists a card's comments oldest first
	ListByCard(ctx context.Context, cardID string) ([]models.Comment, error)

	// Create creates a comment and loads its author
	Create(ctx context.Context, comment *models.Comment) error
}

// ReactionRepository defines the interface for reaction data access
type ReactionRepository interface {
	// Upsert creates the reaction unless one with the same (card, user, type)
	// exists, and returns the stored row either way.
	Upsert(ctx context.Context, reaction *models.Reaction) (*models.Reaction, error)

	// Delete removes the reaction keyed by (card, user, type). It returns
	// gorm.ErrRecordNotFound when no row matched.
	Delete(ctx context.Context, cardID, userID, reactionType string) error

	// ListByCard lists a card's reactions oldest first
	ListByCard(ctx context.Context, cardID string) ([]models.Reaction, error)
}

// ParticipantRepository defines the interface for participant data access
type ParticipantRepository interface {
	// ListByBoard lists a board's participants by join time with their users
	ListByBoard(ctx context.Context, boardID string) ([]models.Participant, error)

	// Upsert creates the (board, user) participant or, when role is given,
	// updates the role of the existing one.
	Upsert(ctx context.Context, boardID, userID string, role *models.ParticipantRole) (*models.Participant, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// FindByID finds a user by ID
	FindByID(ctx context.Context, id string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// ListRecent lists the newest users
	ListRecent(ctx context.Context, limit int) ([]models.User, error)

	// Upsert creates the user keyed by email or updates the provided profile fields
	Upsert(ctx context.Context, input UserUpsert) (*models.User, error)
}

// UserUpsert holds the fields of a create-or-update by email. Nil fields are
// left untouched on an existing user.
type UserUpsert struct {
	Email     string
	Name      *string
	AvatarURL *string
}
