package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bargainhunt/backend/internal/models"
	"github.com/bargainhunt/backend/internal/repository"
)

// UserService manages the lifecycle of anonymous users
type UserService struct {
	users UserStore
}

// NewUserService creates a new user service
func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// EnsureUser creates a free-tier user if the id is unknown. Existing users are not modified.
func (s *UserService) EnsureUser(ctx context.Context, id string) (*models.User, error) {
	id, err := cleanUserID(id)
	if err != nil {
		return nil, err
	}
	if err := s.users.CreateIfAbsent(ctx, id); err != nil {
		return nil, err
	}
	return s.GetUser(ctx, id)
}

// GetUser returns the user or ErrNotFound
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	id, err := cleanUserID(id)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

// Upgrade moves the user to the pro tier. Unknown ids are created on the way.
func (s *UserService) Upgrade(ctx context.Context, id string) error {
	return s.setTier(ctx, id, models.TierPro)
}

// Reset moves the user back to the free tier. Unknown ids are created on the way.
func (s *UserService) Reset(ctx context.Context, id string) error {
	return s.setTier(ctx, id, models.TierFree)
}

func (s *UserService) setTier(ctx context.Context, id string, tier models.Tier) error {
	id, err := cleanUserID(id)
	if err != nil {
		return err
	}
	return s.users.SetTier(ctx, id, tier)
}

func cleanUserID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("userId is required: %w", ErrInvalidInput)
	}
	return id, nil
}
