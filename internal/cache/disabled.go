package cache

import "context"

// Disabled is the Store used when no cache backend is reachable at startup.
// Every read misses and every write is dropped, so all flows fall through to
// the provider.
type Disabled struct{}

// Get always reports a miss.
func (Disabled) Get(ctx context.Context, key string) ([]byte, bool) { return nil, false }

// Set drops the value.
func (Disabled) Set(ctx context.Context, key string, value []byte) {}

// Enabled reports false.
func (Disabled) Enabled() bool { return false }

// Close is a no-op.
func (Disabled) Close() error { return nil }
