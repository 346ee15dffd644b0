// Package cache is the key/value port used for outcome counters.
package cache

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key does not exist.
var ErrNotFound = errors.New("cache: key not found")

// Cache is a minimal key/value cache interface (e.g. Redis).
type Cache interface {
	// Ping checks if the cache is reachable.
	Ping(ctx context.Context) error

	// Get retrieves a value by key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Incr atomically increments a numeric value and returns the new value.
	Incr(ctx context.Context, key string) (int64, error)
}
