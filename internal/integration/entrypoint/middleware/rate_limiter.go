// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/budget-planner/backend/internal/application/adapter"
	domainerror "github.com/budget-planner/backend/internal/domain/error"
	"github.com/budget-planner/backend/internal/integration/entrypoint/dto"
)

const (
	// defaultMaxAttempts is the default number of allowed attempts per window.
	defaultMaxAttempts = 5
	// defaultWindowDuration is the default time window for rate limiting.
	defaultWindowDuration = 1 * time.Minute
)

// RateLimiter provides IP-based rate limiting for sensitive endpoints.
type RateLimiter struct {
	limiter        adapter.RateLimiter
	maxAttempts    int
	windowDuration time.Duration
}

// NewRateLimiter creates a new rate limiter middleware with default settings.
func NewRateLimiter(limiter adapter.RateLimiter) *RateLimiter {
	return &RateLimiter{
		limiter:        limiter,
		maxAttempts:    defaultMaxAttempts,
		windowDuration: defaultWindowDuration,
	}
}

// NewRateLimiterWithConfig creates a new rate limiter middleware with custom settings.
func NewRateLimiterWithConfig(limiter adapter.RateLimiter, maxAttempts int, windowDuration time.Duration) *RateLimiter {
	return &RateLimiter{
		limiter:        limiter,
		maxAttempts:    maxAttempts,
		windowDuration: windowDuration,
	}
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip rate limiting in E2E mode or test environment
		if os.Getenv("E2E_MODE") == "true" || os.Getenv("ENV") == "test" {
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		if clientIP == "" {
			clientIP = c.Request.RemoteAddr
		}

		allowed, err := rl.limiter.Allow(c.Request.Context(), "login:"+clientIP, rl.maxAttempts, rl.windowDuration)
		if err != nil || allowed {
			c.Next()
			return
		}

		c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
			Error: "Too many requests. Please try again later.",
			Code:  string(domainerror.ErrCodeRateLimited),
		})
		c.Abort()
	}
}
