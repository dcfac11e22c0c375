// Package api exposes the Heimdall deaggregation engine over HTTP.
//
// The service is a debugging and integration surface: callers POST batches of
// base64-encoded stream records and get back the expanded user records, with
// per-record decode failures reported inline. Prometheus metrics are served
// on /metrics.
package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Router builds the chi router for a server
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API key authentication middleware for protected routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(apiKeyMiddleware(s.config.APIKey, s.metrics))

		// Health check
		r.Get("/health", s.metrics.InstrumentHandler("GET", "/api/v1/health", s.handleHealth))

		// Deaggregation operations
		r.Post("/deaggregate", s.metrics.InstrumentHandler("POST", "/api/v1/deaggregate", s.handleDeaggregate))
		r.Post("/inspect", s.metrics.InstrumentHandler("POST", "/api/v1/inspect", s.handleInspect))

		// Diagnostics
		r.Get("/stats", s.metrics.InstrumentHandler("GET", "/api/v1/stats", s.handleStats))
	})

	return r
}

// StartServer starts the HTTP server with all routes configured
func StartServer(config ServerConfig) error {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	metrics := NewMetrics()
	deaggregator := NewDeaggregatorFactory().CreateDeaggregator(logger)
	server := NewServer(deaggregator, config, metrics)

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	logger.Info("starting server", zap.String("addr", addr))

	return http.ListenAndServe(addr, server.Router())
}
