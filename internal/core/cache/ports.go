package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by a Remote when the key does not exist or has expired.
var ErrNotFound = errors.New("cache: key not found")

// Remote is a shared, out-of-process tier for memoized results. Values are opaque
// bytes; the memoizer owns the encoding.
type Remote interface {
	// Get retrieves a value by key, returning ErrNotFound when absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value for ttl. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error

	// Clear removes every value owned by this tier and returns how many were removed.
	Clear(ctx context.Context) (int, error)

	// Ping checks if the backing service is reachable.
	Ping(ctx context.Context) error

	// Close releases the connection.
	Close() error
}
