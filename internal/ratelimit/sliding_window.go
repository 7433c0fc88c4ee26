package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// checkSlidingWindowLimit keeps one sorted-set entry per request, scored by its
// timestamp in microseconds, and counts the entries inside the window.
func (r *RateLimiter) checkSlidingWindowLimit(ctx context.Context, key string) (bool, int, error) {
	now := r.now()
	nowMicro := now.UnixMicro()
	windowStart := now.Add(-r.window).UnixMicro()

	pipe := r.cache.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "-inf", strconv.FormatInt(windowStart, 10))
	countCmd := pipe.ZCard(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return false, 0, fmt.Errorf("failed to execute rate limit check: %w", err)
	}

	count := int(countCmd.Val())
	if count >= r.limit {
		return false, 0, nil
	}

	pipe = r.cache.Pipeline()
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(nowMicro),
		Member: strconv.FormatInt(nowMicro, 10) + ":" + uuid.NewString(),
	})
	pipe.Expire(ctx, key, r.window+time.Second)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("failed to add rate limit entry: %w", err)
	}

	return true, r.limit - count - 1, nil
}

// Reset clears the window of an identifier
func (r *RateLimiter) Reset(ctx context.Context, identifier string) error {
	if err := r.cache.Delete(ctx, limitKey(identifier)); err != nil {
		return fmt.Errorf("failed to reset rate limit: %w", err)
	}
	return nil
}
