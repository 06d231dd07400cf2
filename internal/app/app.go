// Package app wires the gateway's dependencies and manages their lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"localfind/config"
	"localfind/internal/cache"
	"localfind/internal/gateway"
	"localfind/internal/geoapify"
	"localfind/internal/server"
)

// App holds the assembled application.
type App struct {
	config *config.Config
	store  cache.Store
	server *server.Server
}

// New creates an App with all dependencies initialized. A missing cache
// backend is not fatal: the app runs with caching disabled. The caller must
// call Shutdown to release resources.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	store := cache.New(cache.Config{
		URL: cfg.Cache.RedisURL,
		TTL: cfg.Cache.TTL,
	})
	if !store.Enabled() {
		slog.Warn("running without cache, every request goes upstream")
	}

	provider := geoapify.New(cfg.Geoapify.APIKey)
	svc := gateway.New(store, provider)

	srv := server.New(svc, &server.Config{
		AllowedOrigins:  cfg.Server.AllowedOrigins,
		MetricsEnabled:  cfg.Metrics.Enabled,
		MetricsEndpoint: cfg.Metrics.Endpoint,
	})

	return &App{
		config: cfg,
		store:  store,
		server: srv,
	}, nil
}

// Start runs the HTTP server. Blocks until the server stops.
func (a *App) Start() error {
	return a.server.Start(":" + a.config.Server.Port)
}

// Shutdown stops the HTTP server and closes the cache store.
func (a *App) Shutdown(ctx context.Context) error {
	return errors.Join(
		a.server.Shutdown(ctx),
		a.store.Close(),
	)
}
