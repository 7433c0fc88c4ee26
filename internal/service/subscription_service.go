package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/bargainhunt/backend/internal/models"
)

// SubscriptionService manages e-mail alerts for stores
type SubscriptionService struct {
	subs SubscriptionStore
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(subs SubscriptionStore) *SubscriptionService {
	return &SubscriptionService{subs: subs}
}

// Subscribe records the (email, store) pair. Subscribing twice is a no-op.
// It reports whether a new row was created.
func (s *SubscriptionService) Subscribe(ctx context.Context, email, storeName string) (bool, error) {
	email, storeName = normalizeEmail(email), models.NormalizeStoreName(storeName)
	if email == "" || storeName == "" {
		return false, fmt.Errorf("email and storeName are required: %w", ErrInvalidInput)
	}
	return s.subs.Add(ctx, email, storeName)
}

// Unsubscribe removes the pair. Missing fields or an absent pair are not errors.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, email, storeName string) error {
	email, storeName = normalizeEmail(email), models.NormalizeStoreName(storeName)
	if email == "" || storeName == "" {
		return nil
	}
	return s.subs.Remove(ctx, email, storeName)
}

// ListByEmail returns the subscriptions of one address
func (s *SubscriptionService) ListByEmail(ctx context.Context, email string) ([]models.Subscription, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("email is required: %w", ErrInvalidInput)
	}
	return s.subs.ListByEmail(ctx, email)
}

// ListAll returns every subscription
func (s *SubscriptionService) ListAll(ctx context.Context) ([]models.Subscription, error) {
	return s.subs.ListAll(ctx)
}

// SubscribersByStore groups subscriber e-mails by store. Store names that differ only
// in case share one group, named after the first spelling listed. Each e-mail appears once per group.
func (s *SubscriptionService) SubscribersByStore(ctx context.Context) (map[string][]string, error) {
	all, err := s.subs.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string)
	groups := make(map[string][]string)
	seen := make(map[[2]string]bool)
	for _, sub := range all {
		key := models.StoreKey(sub.StoreName)
		name, ok := names[key]
		if !ok {
			name = sub.StoreName
			names[key] = name
		}
		member := [2]string{key, sub.Email}
		if seen[member] {
			continue
		}
		seen[member] = true
		groups[name] = append(groups[name], sub.Email)
	}
	return groups, nil
}

// DistinctStores returns the sorted set of stores with at least one subscriber
func (s *SubscriptionService) DistinctStores(ctx context.Context) ([]string, error) {
	groups, err := s.SubscribersByStore(ctx)
	if err != nil {
		return nil, err
	}
	stores := make([]string, 0, len(groups))
	for store := range groups {
		stores = append(stores, store)
	}
	sort.Strings(stores)
	return stores, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
