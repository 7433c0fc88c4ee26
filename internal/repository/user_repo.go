package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bargainhunt/backend/internal/database"
	"github.com/bargainhunt/backend/internal/models"
)

var (
	// ErrUserNotFound is returned when a user is not found
	ErrUserNotFound = errors.New("user not found")
)

// UserRepository handles user database operations
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateIfAbsent inserts a free-tier user unless one with the same id exists.
// An existing row is left untouched.
func (r *UserRepository) CreateIfAbsent(ctx context.Context, id string) error {
	query := `
		INSERT INTO users (id, tier)
		VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING
	`
	if _, err := r.db.Exec(ctx, query, id, string(models.TierFree)); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, email, tier, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	var (
		user models.User
		tier string
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Email, &tier, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	user.Tier = models.Tier(tier)

	return &user, nil
}

// SetTier sets a user's tier, creating the user first if the id is unknown.
func (r *UserRepository) SetTier(ctx context.Context, id string, tier models.Tier) error {
	if !tier.IsValid() {
		return fmt.Errorf("invalid tier: %s", tier)
	}

	query := `
		INSERT INTO users (id, tier)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE
		SET tier = EXCLUDED.tier, updated_at = now()
	`
	if _, err := r.db.Exec(ctx, query, id, string(tier)); err != nil {
		return fmt.Errorf("failed to update tier: %w", err)
	}
	return nil
}
