// Package adapter defines interfaces that are implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// StatsCache defines the interface for caching computed analytics
// payloads. Implementations marshal values as JSON; a cache miss is not
// an error.
type StatsCache interface {
	// Get loads a cached value into dest. It returns false on a miss.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores a value under key with the given TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// InvalidateUser drops all cached analytics for the user. Called
	// after any ledger or category write.
	InvalidateUser(ctx context.Context, userID uuid.UUID) error
}
