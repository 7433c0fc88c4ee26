package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bargainhunt/backend/internal/database"
)

// StatsRepository handles named global counters
type StatsRepository struct {
	db *database.DB
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *database.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// Seed creates the counter with the baseline value if it does not exist yet
func (r *StatsRepository) Seed(ctx context.Context, key string, baseline int64) error {
	query := `
		INSERT INTO global_stats (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO NOTHING
	`
	if _, err := r.db.Exec(ctx, query, key, baseline); err != nil {
		return fmt.Errorf("failed to seed stat %s: %w", key, err)
	}
	return nil
}

// Get returns the counter value, or 0 if it was never created
func (r *StatsRepository) Get(ctx context.Context, key string) (int64, error) {
	var value int64
	err := r.db.QueryRow(ctx, `SELECT value FROM global_stats WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get stat %s: %w", key, err)
	}
	return value, nil
}

// Increment adds one to the counter in a single statement and returns the new value.
// A missing counter is created at baseline+1.
func (r *StatsRepository) Increment(ctx context.Context, key string, baseline int64) (int64, error) {
	query := `
		INSERT INTO global_stats (key, value)
		VALUES ($1, $2::bigint + 1)
		ON CONFLICT (key) DO UPDATE
		SET value = global_stats.value + 1, updated_at = now()
		RETURNING value
	`
	var value int64
	if err := r.db.QueryRow(ctx, query, key, baseline).Scan(&value); err != nil {
		return 0, fmt.Errorf("failed to increment stat %s: %w", key, err)
	}
	return value, nil
}
