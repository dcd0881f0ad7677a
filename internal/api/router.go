// Presencelog - VRChat Attendance Analytics for VRCX
// Copyright 2026 Kestrel Arden
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelin/presencelog

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kestrelin/presencelog/internal/config"
)

// NewRouter configures all HTTP routes for the dashboard API.
func NewRouter(h *Handler, cfg *config.ServerConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied in order.
	r.Use(RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
	}))

	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(httprate.LimitByIP(cfg.RateLimitReqs, cfg.RateLimitWindow))
		r.Use(PrometheusMetrics)

		r.Get("/health", h.Health)

		r.Route("/attendance", func(r chi.Router) {
			r.Get("/hourly", h.AttendanceHourly)
			r.Get("/daily", h.AttendanceDaily)
			r.Get("/weekday", h.AttendanceWeekday)
			r.Get("/weekly", h.AttendanceWeekly)
			r.Get("/hourly-averages", h.AttendanceHourlyAverages)
			r.Get("/weekday-averages", h.AttendanceWeekdayAverages)
		})

		r.Get("/locations", h.Locations)
		r.Get("/instances", h.Instances)
	})

	return r
}
