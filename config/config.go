// Package config provides environment-sourced configuration for the gateway.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	Server   ServerConfig
	Geoapify GeoapifyConfig
	Cache    CacheConfig
	Metrics  MetricsConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string
	// AllowedOrigins is the cross-origin caller allow-list. Defaults to
	// the wildcard for dev; deployments should pin it to the frontend URL.
	AllowedOrigins []string
}

// GeoapifyConfig holds provider configuration.
type GeoapifyConfig struct {
	APIKey string
}

// CacheConfig holds cache store configuration.
type CacheConfig struct {
	RedisURL string
	TTL      time.Duration
}

// MetricsConfig holds Prometheus exposition configuration.
type MetricsConfig struct {
	Enabled  bool
	Endpoint string
}

// LoggingConfig holds log output configuration.
type LoggingConfig struct {
	// Format is "text" (tint, for terminals) or "json".
	Format string
}

// Load reads configuration from an optional .env file and the environment.
func Load() (*Config, error) {
	// Missing .env is fine; the environment may carry everything.
	_ = godotenv.Load() //nolint:errcheck

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			AllowedOrigins: splitOrigins(getEnv("ALLOWED_ORIGINS", "*")),
		},
		Geoapify: GeoapifyConfig{
			APIKey: os.Getenv("GEOAPIFY_API_KEY"),
		},
		Cache: CacheConfig{
			RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),
			TTL:      time.Duration(getEnvInt("CACHE_TTL_SECONDS", 300)) * time.Second,
		},
		Metrics: MetricsConfig{
			Enabled:  getEnvBool("METRICS_ENABLED", false),
			Endpoint: getEnv("METRICS_ENDPOINT", "/metrics"),
		},
		Logging: LoggingConfig{
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvBool(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return origins
}
