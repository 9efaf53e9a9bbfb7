// Package cache provides content-addressed caching for layout computations.
//
// Layouts are pure functions of their input, so a cache key is just a hash
// of the matrix data plus the layout options. The CLI uses the file backend
// under ~/.cache/harris/, the HTTP API can use the Redis backend for
// multi-instance deployments, and tests use the null backend.
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface for computed artifacts.
type Cache interface {
	// Get retrieves a value. The second result is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}
