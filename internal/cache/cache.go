package cache

import (
	"context"
	"time"
)

// Cache is the byte-oriented cache the search handler puts in front of
// the aggregation pipeline. Implementations must be safe for concurrent
// use; a miss is (nil, nil), not an error.
type Cache interface {
	// Get retrieves a value, nil when the key is absent or expired
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value; expiration <= 0 means no expiry
	Set(ctx context.Context, key string, value []byte, expiration time.Duration) error

	// Delete removes a key
	Delete(ctx context.Context, key string) error

	// Exists checks if a key is present
	Exists(ctx context.Context, key string) (bool, error)

	// Close releases the underlying connection
	Close() error

	// Health checks backend reachability
	Health(ctx context.Context) error
}

// CacheError represents a cache operation error
type CacheError struct {
	Operation string
	Key       string
	Err       error
}

func (e *CacheError) Error() string {
	return "cache " + e.Operation + " failed for key '" + e.Key + "': " + e.Err.Error()
}

func (e *CacheError) Unwrap() error {
	return e.Err
}
