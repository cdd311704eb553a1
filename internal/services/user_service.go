package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yukikurage/retro-board-api/internal/models"
	"github.com/yukikurage/retro-board-api/internal/repository"
)

// RecentUsersLimit caps GET /users without an email filter.
const RecentUsersLimit = 50

// UserService handles user lookups and upserts by email.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// UpsertUserInput represents the profile fields of a user keyed by email.
type UpsertUserInput struct {
	Email     string
	Name      *string
	AvatarURL *string
}

// UpsertUser creates the user or updates the provided profile fields.
func (s *UserService) UpsertUser(ctx context.Context, input UpsertUserInput) (*models.User, error) {
	user, err := s.userRepo.Upsert(ctx, repository.UserUpsert{
		Email:     strings.TrimSpace(input.Email),
		Name:      input.Name,
		AvatarURL: input.AvatarURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return user, nil
}

// FindByEmail returns the user with the given email.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// FindByID returns the user with the given id.
func (s *UserService) FindByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// ListRecentUsers returns the newest users.
func (s *UserService) ListRecentUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.ListRecent(ctx, RecentUsersLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
