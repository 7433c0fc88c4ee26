// Package cache wraps the Redis client shared by the deal cache, the gift-card
// cache, the burst limiter and the alert job.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned by Get when the key does not exist
var ErrMiss = errors.New("cache miss")

// Redis wraps the redis client
type Redis struct {
	client *redis.Client
}

// NewRedisFromURL creates a new Redis client from a URL and checks the connection
func NewRedisFromURL(ctx context.Context, redisURL string) (*Redis, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Redis{client: client}, nil
}

// NewRedisWithClient wraps an existing client
func NewRedisWithClient(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// Client returns the underlying redis client
func (r *Redis) Client() *redis.Client {
	return r.client
}

// Close closes the Redis connection
func (r *Redis) Close() error {
	return r.client.Close()
}

// Health checks the Redis health
func (r *Redis) Health(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Get retrieves a value. A missing key yields ErrMiss.
func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrMiss
	}
	return val, err
}

// Set stores a value with optional expiration
func (r *Redis) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

// Delete removes keys
func (r *Redis) Delete(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

// TTL returns the remaining time to live of a key
func (r *Redis) TTL(ctx context.Context, key string) (time.Duration, error) {
	return r.client.TTL(ctx, key).Result()
}

// SAdd adds members to a set
func (r *Redis) SAdd(ctx context.Context, key string, members ...any) error {
	return r.client.SAdd(ctx, key, members...).Err()
}

// SMIsMember reports set membership for each member, in order
func (r *Redis) SMIsMember(ctx context.Context, key string, members ...any) ([]bool, error) {
	return r.client.SMIsMember(ctx, key, members...).Result()
}

// SMembers returns all members of a set
func (r *Redis) SMembers(ctx context.Context, key string) ([]string, error) {
	return r.client.SMembers(ctx, key).Result()
}

// Pipeline creates a new pipeline for batch operations
func (r *Redis) Pipeline() redis.Pipeliner {
	return r.client.Pipeline()
}
