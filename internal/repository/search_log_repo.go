package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/bargainhunt/backend/internal/database"
)

// SearchLogRepository stores the append-only search log used for quota accounting
type SearchLogRepository struct {
	db *database.DB
}

// NewSearchLogRepository creates a new search log repository
func NewSearchLogRepository(db *database.DB) *SearchLogRepository {
	return &SearchLogRepository{db: db}
}

// CountForDate returns how many searches a user logged on the given calendar day.
// Only the year, month and day of day are used.
func (r *SearchLogRepository) CountForDate(ctx context.Context, userID string, day time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM search_logs
		WHERE user_id = $1 AND search_date = $2
	`
	var count int
	if err := r.db.QueryRow(ctx, query, userID, day).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count searches: %w", err)
	}
	return count, nil
}

// Append records one search for the user on the given calendar day
func (r *SearchLogRepository) Append(ctx context.Context, userID string, day time.Time) error {
	query := `
		INSERT INTO search_logs (user_id, search_date)
		VALUES ($1, $2)
	`
	if _, err := r.db.Exec(ctx, query, userID, day); err != nil {
		return fmt.Errorf("failed to log search: %w", err)
	}
	return nil
}
