package domain

import (
	"context"
	"time"
)

// Cache is an optional read-through cache for derived read models
// (alerts, statistics). Implementations must treat misses as non-errors.
type Cache interface {
	// Get unmarshals the cached value into dest; found is false on a miss.
	Get(ctx context.Context, key string, dest any) (found bool, err error)

	// Set stores the value under key with the given TTL.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error

	// Invalidate drops the given keys.
	Invalidate(ctx context.Context, keys ...string) error
}
