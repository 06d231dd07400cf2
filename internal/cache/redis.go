package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultTTL applies when the deployment does not configure one.
	DefaultTTL = 5 * time.Minute

	// opTimeout bounds every connect and command so a degraded store
	// cannot stall the request pipeline.
	opTimeout = 2 * time.Second
)

// Config holds Redis connection configuration.
type Config struct {
	// URL is the Redis connection URL (e.g., "redis://localhost:6379").
	URL string

	// TTL is the time-to-live applied to every cache entry.
	TTL time.Duration
}

// redisStore implements Store using Redis.
type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis and returns a live Store. If the store is
// unreachable or the URL is invalid, it returns the disabled Store instead:
// the process starts and serves traffic without caching, and no per-request
// reconnects are attempted.
func New(cfg Config) Store {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		slog.Warn("invalid redis URL, cache disabled", "error", err)
		return Disabled{}
	}
	opts.DialTimeout = opTimeout
	opts.ReadTimeout = opTimeout
	opts.WriteTimeout = opTimeout

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		slog.Warn("redis unreachable, cache disabled", "error", err)
		return Disabled{}
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	slog.Info("redis cache connected", "ttl", ttl)

	return &redisStore{client: client, ttl: ttl}
}

// Get retrieves a cached value, collapsing store errors to a miss.
func (s *redisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	value, res := s.get(ctx, key)
	return value, res == resultHit
}

func (s *redisStore) get(ctx context.Context, key string) ([]byte, result) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, resultMiss
		}
		slog.Warn("cache get failed", "key", key, "error", err)
		return nil, resultStoreError
	}
	return data, resultHit
}

// Set stores a value with the configured TTL. Failures are logged and dropped.
func (s *redisStore) Set(ctx context.Context, key string, value []byte) {
	if err := s.client.Set(ctx, key, value, s.ttl).Err(); err != nil {
		slog.Warn("cache set failed", "key", key, "error", err)
	}
}

// Enabled reports true; a live connection backs this store.
func (s *redisStore) Enabled() bool { return true }

// Close closes the Redis connection.
func (s *redisStore) Close() error {
	return s.client.Close()
}
