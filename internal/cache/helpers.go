package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// GenerateCacheKey creates a cache key from prefix and params
func GenerateCacheKey(prefix string, params ...any) string {
	if len(params) == 0 {
		return prefix
	}

	data, _ := json.Marshal(params)
	hash := md5.Sum(data)
	return prefix + ":" + hex.EncodeToString(hash[:])
}

// GetJSON loads the JSON value stored under key into dst. It returns ErrMiss when absent.
func (r *Redis) GetJSON(ctx context.Context, key string, dst any) error {
	data, err := r.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(data), dst); err != nil {
		return fmt.Errorf("failed to unmarshal cached %s: %w", key, err)
	}
	return nil
}

// SetJSON stores value as JSON under key
func (r *Redis) SetJSON(ctx context.Context, key string, value any, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	return r.Set(ctx, key, string(data), expiration)
}

// GetETag returns a hash of the data for ETag support
func GetETag(data any) string {
	jsonData, _ := json.Marshal(data)
	hash := md5.Sum(jsonData)
	return `"` + hex.EncodeToString(hash[:]) + `"`
}
