// Package cache wraps the key-value store behind the gateway's read-through
// cache. The store is a pure optimization: no method ever returns a store
// error to the caller. Connectivity failures degrade to cache-miss on reads
// and to a no-op on writes.
package cache

import "context"

// Store is the adapter contract the gateway depends on.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the cached value for key. The second return is false on
	// miss; store errors are absorbed and reported as a miss.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores value under key with the deployment-wide TTL. Best
	// effort; store errors are absorbed.
	Set(ctx context.Context, key string, value []byte)

	// Enabled reports whether a live store backs this adapter.
	Enabled() bool

	// Close releases any resources held by the store.
	Close() error
}

// result is the internal outcome of a store read. Store errors exist only on
// this side of the adapter boundary; callers observe hit or miss.
type result int

const (
	resultHit result = iota
	resultMiss
	resultStoreError
)
