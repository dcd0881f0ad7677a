// Presencelog - VRChat Attendance Analytics for VRCX
// Copyright 2026 Kestrel Arden
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelin/presencelog

// Package metrics exposes Prometheus instrumentation for the serve mode:
// gamelog query performance, aggregation timing, and HTTP throughput.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// QueryDuration tracks SQLite query latency per store operation.
	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "presencelog_query_duration_seconds",
			Help:    "Duration of VRCX gamelog queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// QueryErrors counts failed gamelog queries per store operation.
	QueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "presencelog_query_errors_total",
			Help: "Total number of failed VRCX gamelog queries",
		},
		[]string{"operation"},
	)

	// AggregationDuration tracks engine time per granularity.
	AggregationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "presencelog_aggregation_duration_seconds",
			Help:    "Duration of attendance aggregations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"granularity"},
	)

	// HTTPRequestDuration tracks API latency per route and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "presencelog_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)

	// HTTPRequestsInFlight gauges concurrently served requests.
	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "presencelog_http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)
)

// ObserveQuery records one store query observation.
func ObserveQuery(operation string, start time.Time, err error) {
	QueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		QueryErrors.WithLabelValues(operation).Inc()
	}
}
