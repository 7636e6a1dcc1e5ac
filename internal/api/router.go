// Groupscope - Chat Group Member Profiling Dashboard
// Copyright 2026 X. Fang (xlfang)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xlfang/groupscope

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xlfang/groupscope/internal/config"
)

// NewRouter wires the full route tree with the global middleware stack.
func NewRouter(cfg config.ServerConfig, handler *Handler) http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied in order to every route.
	r.Use(RequestID())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(RequestLogger())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(httprate.LimitByIP(cfg.RateLimit, time.Minute))
		r.Use(PrometheusMetrics())

		r.Get("/health", handler.Health)
		r.Get("/stats", handler.Stats)
		r.Get("/overview", handler.Overview)
		r.Put("/dimension", handler.SelectDimension)
		r.Put("/group", handler.SelectGroup)
		r.Get("/groups", handler.Groups)
		r.Get("/charts/{slot}", handler.Chart)
		r.Get("/table", handler.Table)
		r.Get("/users/{id}", handler.UserDetail)
		r.Get("/export", handler.Export)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
