// Package api exposes analyses over HTTP.
package api

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"altlens/internal/metrics"
	"altlens/internal/model"
)

// Analyzer runs one analysis.
type Analyzer interface {
	Run(ctx context.Context, username, apiKey string) (model.Report, error)
}

// RouterConfig holds configuration for the router
type RouterConfig struct {
	Analyzer Analyzer
	// DefaultAPIKey is used when a request carries no X-API-Key header.
	DefaultAPIKey string
}

// NewRouter creates and configures the HTTP router.
func NewRouter(cfg *RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/api/health", HealthHandler)
	r.Post("/api/analyze", NewAnalyzeHandler(cfg.Analyzer, cfg.DefaultAPIKey))
	r.Handle("/metrics", metrics.Handler())

	return r
}
