package adapter

import (
	"context"
	"time"
)

// RateLimiter defines the interface for counting attempts against a key
// inside a fixed window.
type RateLimiter interface {
	// Allow records an attempt for the key and reports whether it stays
	// within limit attempts per window. Implementations fail open: an
	// unreachable backend never blocks the caller.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)

	// Reset clears the counter for the key.
	Reset(ctx context.Context, key string) error
}
