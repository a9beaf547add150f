package cache

import (
	"context"
	"time"
)

// EntitlementCache remembers users known to hold a valid access grant.
// Only positive answers are stored; a miss always falls through to the database.
type EntitlementCache interface {
	// Entitled reports whether userID is cached as entitled.
	Entitled(ctx context.Context, userID string) (bool, error)
	// MarkEntitled caches userID as entitled for ttl.
	MarkEntitled(ctx context.Context, userID string, ttl time.Duration) error
}

// Noop is used when no Redis address is configured.
type Noop struct{}

func (Noop) Entitled(context.Context, string) (bool, error)            { return false, nil }
func (Noop) MarkEntitled(context.Context, string, time.Duration) error { return nil }
