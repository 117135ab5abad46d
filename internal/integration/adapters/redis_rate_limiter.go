// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/budget-planner/backend/internal/application/adapter"
)

const rateLimitKeyPrefix = "ratelimit:"

// redisRateLimiter implements adapter.RateLimiter using a fixed window
// counter in Redis.
type redisRateLimiter struct {
	client *redis.Client
}

// NewRedisRateLimiter creates a new Redis-backed rate limiter.
func NewRedisRateLimiter(client *redis.Client) adapter.RateLimiter {
	return &redisRateLimiter{client: client}
}

// Allow increments the counter for the key and reports whether the request
// fits within the limit. Redis failures allow the request through so an
// outage never locks users out.
func (r *redisRateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	redisKey := rateLimitKeyPrefix + key

	count, err := r.client.Incr(ctx, redisKey).Result()
	if err != nil {
		slog.Warn("Rate limiter unavailable, allowing request", "key", key, "error", err)
		return true, nil
	}

	if count == 1 {
		if err := r.client.Expire(ctx, redisKey, window).Err(); err != nil {
			slog.Warn("Failed to set rate limit window", "key", key, "error", err)
		}
	}

	return count <= int64(limit), nil
}

// Reset clears the counter for the key.
func (r *redisRateLimiter) Reset(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, rateLimitKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to reset rate limit for %s: %w", key, err)
	}
	return nil
}
