// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

const (
	// defaultMaxAttempts is the default number of allowed attempts per window.
	defaultMaxAttempts = 5
	// defaultWindowDuration is the default time window for rate limiting.
	defaultWindowDuration = 1 * time.Minute
)

// window counts attempts from one client until it expires.
type window struct {
	attempts int
	expires  time.Time
}

// RateLimiter limits attempts per client IP within a fixed window.
// State lives in memory; a multi-instance deployment limits per node.
type RateLimiter struct {
	mu          sync.Mutex
	windows     map[string]*window
	maxAttempts int
	duration    time.Duration
	now         func() time.Time
}

// NewRateLimiter creates a new rate limiter with default settings.
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithConfig(defaultMaxAttempts, defaultWindowDuration)
}

// NewRateLimiterWithConfig creates a new rate limiter with custom settings.
func NewRateLimiterWithConfig(maxAttempts int, duration time.Duration) *RateLimiter {
	return &RateLimiter{
		windows:     make(map[string]*window),
		maxAttempts: maxAttempts,
		duration:    duration,
		now:         time.Now,
	}
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip rate limiting in test environments
		if os.Getenv("ENV") == "test" {
			c.Next()
			return
		}

		key := c.ClientIP()
		if key == "" {
			key = c.Request.RemoteAddr
		}

		if !rl.allow(key) {
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// allow records an attempt for the key and reports whether it is
// within the limit. A fresh window starts when the old one expired.
func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()

	w, ok := rl.windows[key]
	if !ok || now.After(w.expires) {
		rl.windows[key] = &window{
			attempts: 1,
			expires:  now.Add(rl.duration),
		}
		return true
	}

	if w.attempts >= rl.maxAttempts {
		return false
	}
	w.attempts++
	return true
}

// Reset clears the rate limiter state (useful for testing).
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.windows = make(map[string]*window)
}

// Cleanup removes expired windows; callers may run it periodically to
// keep memory bounded.
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, w := range rl.windows {
		if now.After(w.expires) {
			delete(rl.windows, key)
		}
	}
}
