// Package cache implements the stats cache on Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

// invalidateScanCount bounds how many keys a single SCAN iteration
// inspects while invalidating a user's cached analytics.
const invalidateScanCount = 100

// statsCache implements the adapter.StatsCache interface on Redis.
// Values are stored as JSON; all analytics keys for a user share the
// "stats:<user-id>:" prefix so they can be dropped together.
type statsCache struct {
	client *redis.Client
}

// NewStatsCache creates a new Redis-backed stats cache instance.
func NewStatsCache(client *redis.Client) adapter.StatsCache {
	return &statsCache{
		client: client,
	}
}

// Get loads a cached value into dest. It returns false on a miss.
func (c *statsCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read cache key %s: %w", key, err)
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return false, fmt.Errorf("failed to decode cached value for %s: %w", key, err)
	}
	return true, nil
}

// Set stores a value under key with the given TTL.
func (c *statsCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache key %s: %w", key, err)
	}
	return nil
}

// InvalidateUser drops all cached analytics for the user.
func (c *statsCache) InvalidateUser(ctx context.Context, userID uuid.UUID) error {
	pattern := fmt.Sprintf("stats:%s:*", userID)

	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, invalidateScanCount).Result()
		if err != nil {
			return fmt.Errorf("failed to scan cache keys for user %s: %w", userID, err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to delete cache keys for user %s: %w", userID, err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
