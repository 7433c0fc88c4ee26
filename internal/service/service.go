// Package service holds the business rules of the bargain search backend:
// user bootstrap, daily quota, subscriptions, the savings counter and search.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/bargainhunt/backend/internal/models"
)

// Errors returned by services. Handlers map them to HTTP status codes.
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("not found")
	ErrQuotaExceeded = errors.New("daily limit reached")
	ErrUpstream      = errors.New("upstream failure")
)

// UserStore persists users
type UserStore interface {
	CreateIfAbsent(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	SetTier(ctx context.Context, id string, tier models.Tier) error
}

// SearchLogStore persists the per-day search log
type SearchLogStore interface {
	CountForDate(ctx context.Context, userID string, day time.Time) (int, error)
	Append(ctx context.Context, userID string, day time.Time) error
}

// SubscriptionStore persists store-alert subscriptions
type SubscriptionStore interface {
	Add(ctx context.Context, email, storeName string) (bool, error)
	Remove(ctx context.Context, email, storeName string) error
	ListByEmail(ctx context.Context, email string) ([]models.Subscription, error)
	ListAll(ctx context.Context) ([]models.Subscription, error)
}

// StatsStore persists named counters
type StatsStore interface {
	Seed(ctx context.Context, key string, baseline int64) error
	Get(ctx context.Context, key string) (int64, error)
	Increment(ctx context.Context, key string, baseline int64) (int64, error)
}

// DealFinder discovers deals for a store
type DealFinder interface {
	FindDeals(ctx context.Context, storeName string) (*models.BargainResult, error)
}

// EmailDrafter writes a discount-request e-mail for a store
type EmailDrafter interface {
	DraftEmail(ctx context.Context, storeName string) (*models.EmailDraft, error)
}
