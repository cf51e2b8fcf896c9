package middleware

import (
	"testing"
	"time"
)

func TestRateLimiter_BlocksAfterLimit(t *testing.T) {
	rl := NewRateLimiterWithConfig(2, time.Minute)

	if !rl.allow("10.0.0.1") || !rl.allow("10.0.0.1") {
		t.Fatal("attempts within the limit must be allowed")
	}
	if rl.allow("10.0.0.1") {
		t.Error("attempt over the limit must be blocked")
	}
	if !rl.allow("10.0.0.2") {
		t.Error("a different client must not be affected")
	}
}

func TestRateLimiter_WindowExpires(t *testing.T) {
	rl := NewRateLimiterWithConfig(1, time.Minute)
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	if !rl.allow("10.0.0.1") {
		t.Fatal("first attempt must be allowed")
	}
	if rl.allow("10.0.0.1") {
		t.Fatal("second attempt in the same window must be blocked")
	}

	now = now.Add(2 * time.Minute)
	if !rl.allow("10.0.0.1") {
		t.Error("attempt after the window expired must be allowed")
	}
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl := NewRateLimiterWithConfig(1, time.Minute)
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.allow("10.0.0.1")
	now = now.Add(2 * time.Minute)
	rl.Cleanup()

	if len(rl.windows) != 0 {
		t.Errorf("expected expired windows to be removed, got %d", len(rl.windows))
	}
}
