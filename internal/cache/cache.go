package cache

import (
	"context"
	"time"
)

// Cache is a typed key/value cache. A miss is reported as (nil, nil) so
// callers can fall back to the database without error handling noise.
type Cache[T any] interface {
	// Get returns the cached value for id, or nil when absent.
	Get(ctx context.Context, id string) (*T, error)
	// Set stores value under id for the given TTL.
	Set(ctx context.Context, id string, value *T, ttl time.Duration) error
	// Del removes the cached value for id. Absent keys are not an error.
	Del(ctx context.Context, id string) error
}
