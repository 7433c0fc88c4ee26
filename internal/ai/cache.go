package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bargainhunt/backend/internal/cache"
	"github.com/bargainhunt/backend/internal/models"
)

const (
	// DefaultDealsCacheTTL is how long a store's deals are reused
	DefaultDealsCacheTTL = 30 * time.Minute

	// CacheKeyPrefix is the prefix for all AI cache keys
	CacheKeyPrefix = "ai:"
)

// AICache caches deal search results in Redis
type AICache struct {
	redis *cache.Redis
	ttl   time.Duration
}

// NewAICache creates a new AI cache wrapper. A zero ttl uses DefaultDealsCacheTTL.
func NewAICache(redis *cache.Redis, ttl time.Duration) *AICache {
	if ttl <= 0 {
		ttl = DefaultDealsCacheTTL
	}
	return &AICache{redis: redis, ttl: ttl}
}

func dealsCacheKey(storeName string) string {
	return cache.GenerateCacheKey(CacheKeyPrefix+"deals", models.StoreKey(storeName))
}

// GetDeals returns the cached result for a store, or nil on a miss
func (c *AICache) GetDeals(ctx context.Context, storeName string) (*models.BargainResult, error) {
	var result models.BargainResult
	if err := c.redis.GetJSON(ctx, dealsCacheKey(storeName), &result); err != nil {
		if errors.Is(err, cache.ErrMiss) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

// SetDeals caches the result for a store
func (c *AICache) SetDeals(ctx context.Context, storeName string, result *models.BargainResult) error {
	if err := c.redis.SetJSON(ctx, dealsCacheKey(storeName), result, c.ttl); err != nil {
		return fmt.Errorf("failed to cache deals: %w", err)
	}
	return nil
}

// InvalidateDeals removes the cached result for a store
func (c *AICache) InvalidateDeals(ctx context.Context, storeName string) error {
	return c.redis.Delete(ctx, dealsCacheKey(storeName))
}
