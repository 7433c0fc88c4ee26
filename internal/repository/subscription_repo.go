package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bargainhunt/backend/internal/database"
	"github.com/bargainhunt/backend/internal/models"
)

// SubscriptionRepository handles store-alert subscription rows
type SubscriptionRepository struct {
	db *database.DB
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *database.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Add inserts the (email, store) pair. It reports false when the pair already existed.
func (r *SubscriptionRepository) Add(ctx context.Context, email, storeName string) (bool, error) {
	query := `
		INSERT INTO subscriptions (email, store_name)
		VALUES ($1, $2)
		ON CONFLICT (email, store_name) DO NOTHING
	`
	rows, err := r.db.Exec(ctx, query, email, storeName)
	if err != nil {
		return false, fmt.Errorf("failed to add subscription: %w", err)
	}
	return rows == 1, nil
}

// Remove deletes the (email, store) pair if present
func (r *SubscriptionRepository) Remove(ctx context.Context, email, storeName string) error {
	query := `DELETE FROM subscriptions WHERE email = $1 AND store_name = $2`
	if _, err := r.db.Exec(ctx, query, email, storeName); err != nil {
		return fmt.Errorf("failed to remove subscription: %w", err)
	}
	return nil
}

// ListByEmail returns all subscriptions of one e-mail address
func (r *SubscriptionRepository) ListByEmail(ctx context.Context, email string) ([]models.Subscription, error) {
	query := `
		SELECT id, email, store_name, created_at
		FROM subscriptions
		WHERE email = $1
		ORDER BY created_at, id
	`
	rows, err := r.db.Query(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return scanSubscriptions(rows)
}

// ListAll returns every subscription
func (r *SubscriptionRepository) ListAll(ctx context.Context) ([]models.Subscription, error) {
	query := `
		SELECT id, email, store_name, created_at
		FROM subscriptions
		ORDER BY store_name, id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list all subscriptions: %w", err)
	}
	return scanSubscriptions(rows)
}

func scanSubscriptions(rows pgx.Rows) ([]models.Subscription, error) {
	defer rows.Close()

	subs := make([]models.Subscription, 0)
	for rows.Next() {
		var s models.Subscription
		if err := rows.Scan(&s.ID, &s.Email, &s.StoreName, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subscriptions: %w", err)
	}
	return subs, nil
}
