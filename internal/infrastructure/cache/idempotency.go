package cache

import (
	"context"
	"time"
)

// IdempotencyStore records request keys that have already been
// accepted, so that a replayed submission (a retried payment, a bulk
// batch posted twice) is rejected instead of applied again.
type IdempotencyStore interface {
	// MarkProcessed marks a key as processed with a TTL. Returns true
	// if the key was newly marked, false if it was already present.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed checks if a key has already been processed
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Close releases any resources held by the store
	Close() error
}
