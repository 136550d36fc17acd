package cache

import (
	"context"
	"time"
)

// PageCache is a keyed byte store with per-entry TTL. The public feed middleware
// stores whole rendered responses in it; entries go away on expiry or on a
// Clear, never on content writes. That stale-read window is part of the design.
type PageCache interface {
	// Get returns the entry for key and whether an unexpired one exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Clear drops every entry. Concurrent readers keep working; they simply
	// start missing. This is the operational escape hatch, not request flow.
	Clear(ctx context.Context) error
}
