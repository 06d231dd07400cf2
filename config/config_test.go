package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "GEOAPIFY_API_KEY", "REDIS_URL", "CACHE_TTL_SECONDS", "ALLOWED_ORIGINS", "METRICS_ENABLED", "METRICS_ENDPOINT", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "redis://localhost:6379", cfg.Cache.RedisURL)
	assert.Equal(t, 300*time.Second, cfg.Cache.TTL)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Endpoint)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Empty(t, cfg.Geoapify.APIKey)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GEOAPIFY_API_KEY", "test-api-key")
	t.Setenv("REDIS_URL", "redis://cache.internal:6380/1")
	t.Setenv("CACHE_TTL_SECONDS", "600")
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, https://staging.example.com")
	t.Setenv("METRICS_ENABLED", "true")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "test-api-key", cfg.Geoapify.APIKey)
	assert.Equal(t, "redis://cache.internal:6380/1", cfg.Cache.RedisURL)
	assert.Equal(t, 600*time.Second, cfg.Cache.TTL)
	assert.Equal(t, []string{"https://app.example.com", "https://staging.example.com"}, cfg.Server.AllowedOrigins)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("CACHE_TTL_SECONDS", "not-a-number")
	t.Setenv("METRICS_ENABLED", "maybe")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 300*time.Second, cfg.Cache.TTL)
	assert.False(t, cfg.Metrics.Enabled)
}
