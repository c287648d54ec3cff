// Moodscape - Mood-Aware Music Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodscape

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/moodscape/internal/middleware"
)

// RouterConfig tunes cross-cutting route behavior.
type RouterConfig struct {
	// RateLimitRequests per RateLimitWindow per client IP on the API
	// routes. Zero disables rate limiting.
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// CORSOrigins is the allowed origin list; ["*"] allows any.
	CORSOrigins []string
}

// NewRouter assembles the chi router with the full middleware stack.
func NewRouter(handler *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health probes stay outside rate limiting so orchestrators are never
	// throttled away from them.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/", handler.Health)
		r.Get("/live", handler.HealthLive)
		r.Get("/ready", handler.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimitRequests > 0 {
			r.Use(httprate.LimitByIP(cfg.RateLimitRequests, cfg.RateLimitWindow))
		}
		r.Use(middleware.PrometheusMetrics)

		r.Post("/recommendations", handler.Recommend)
		r.Post("/recommendations/mood", handler.PredictMood)
		r.Get("/users/{userID}/profile", handler.Profile)
	})

	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}
