package alerts

import (
	"context"
	"fmt"

	"github.com/bargainhunt/backend/internal/cache"
	"github.com/bargainhunt/backend/internal/models"
)

// SeenStore remembers which codes were already announced per store
type SeenStore struct {
	redis *cache.Redis
}

// NewSeenStore creates a Redis-backed seen store
func NewSeenStore(redis *cache.Redis) *SeenStore {
	return &SeenStore{redis: redis}
}

func seenKey(storeName string) string {
	return "alerts:seen:" + models.StoreKey(storeName)
}

// Unseen returns the codes not yet recorded for the store, in input order.
// Repeated codes are returned once.
func (s *SeenStore) Unseen(ctx context.Context, storeName string, codes []models.DiscountCode) ([]models.DiscountCode, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	unique := make([]models.DiscountCode, 0, len(codes))
	keys := make([]any, 0, len(codes))
	dup := make(map[string]bool, len(codes))
	for _, c := range codes {
		k := c.Key()
		if dup[k] {
			continue
		}
		dup[k] = true
		unique = append(unique, c)
		keys = append(keys, k)
	}

	found, err := s.redis.SMIsMember(ctx, seenKey(storeName), keys...)
	if err != nil {
		return nil, fmt.Errorf("failed to check seen codes: %w", err)
	}

	fresh := make([]models.DiscountCode, 0)
	for i, c := range unique {
		if !found[i] {
			fresh = append(fresh, c)
		}
	}
	return fresh, nil
}

// MarkSeen records codes for the store
func (s *SeenStore) MarkSeen(ctx context.Context, storeName string, codes []models.DiscountCode) error {
	if len(codes) == 0 {
		return nil
	}
	keys := make([]any, len(codes))
	for i, c := range codes {
		keys[i] = c.Key()
	}
	if err := s.redis.SAdd(ctx, seenKey(storeName), keys...); err != nil {
		return fmt.Errorf("failed to record seen codes: %w", err)
	}
	return nil
}
