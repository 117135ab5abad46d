package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestLimiter(t *testing.T) (*miniredis.Miniredis, *redisRateLimiter) {
	t.Helper()

	mini, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mini.Close)

	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mini, &redisRateLimiter{client: client}
}

func TestRedisRateLimiter(t *testing.T) {
	ctx := context.Background()

	t.Run("allows up to the limit then blocks", func(t *testing.T) {
		_, limiter := newTestLimiter(t)

		for i := 0; i < 5; i++ {
			allowed, err := limiter.Allow(ctx, "login:1.2.3.4", 5, time.Minute)
			if err != nil {
				t.Fatalf("unexpected error on attempt %d: %v", i+1, err)
			}
			if !allowed {
				t.Fatalf("attempt %d should be allowed", i+1)
			}
		}

		allowed, err := limiter.Allow(ctx, "login:1.2.3.4", 5, time.Minute)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if allowed {
			t.Error("sixth attempt should be blocked")
		}
	})

	t.Run("keys are counted independently", func(t *testing.T) {
		_, limiter := newTestLimiter(t)

		if allowed, _ := limiter.Allow(ctx, "login:1.1.1.1", 1, time.Minute); !allowed {
			t.Fatal("first attempt for first key should be allowed")
		}
		if allowed, _ := limiter.Allow(ctx, "login:1.1.1.1", 1, time.Minute); allowed {
			t.Error("second attempt for first key should be blocked")
		}
		if allowed, _ := limiter.Allow(ctx, "login:2.2.2.2", 1, time.Minute); !allowed {
			t.Error("first attempt for second key should be allowed")
		}
	})

	t.Run("counter resets after the window expires", func(t *testing.T) {
		mini, limiter := newTestLimiter(t)

		if allowed, _ := limiter.Allow(ctx, "login:1.2.3.4", 1, time.Minute); !allowed {
			t.Fatal("first attempt should be allowed")
		}
		if allowed, _ := limiter.Allow(ctx, "login:1.2.3.4", 1, time.Minute); allowed {
			t.Fatal("second attempt should be blocked")
		}

		mini.FastForward(2 * time.Minute)

		allowed, err := limiter.Allow(ctx, "login:1.2.3.4", 1, time.Minute)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !allowed {
			t.Error("attempt after window expiry should be allowed")
		}
	})

	t.Run("reset clears the counter", func(t *testing.T) {
		_, limiter := newTestLimiter(t)

		if allowed, _ := limiter.Allow(ctx, "login:1.2.3.4", 1, time.Minute); !allowed {
			t.Fatal("first attempt should be allowed")
		}
		if err := limiter.Reset(ctx, "login:1.2.3.4"); err != nil {
			t.Fatalf("reset failed: %v", err)
		}
		if allowed, _ := limiter.Allow(ctx, "login:1.2.3.4", 1, time.Minute); !allowed {
			t.Error("attempt after reset should be allowed")
		}
	})

	t.Run("fails open when redis is down", func(t *testing.T) {
		mini, limiter := newTestLimiter(t)
		mini.Close()

		allowed, err := limiter.Allow(ctx, "login:1.2.3.4", 1, time.Minute)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !allowed {
			t.Error("request should be allowed when redis is unreachable")
		}
	})
}
