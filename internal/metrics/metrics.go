// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

// Package metrics exposes the Prometheus instrumentation for Showfinder.
//
// Metrics are registered with the default registry through promauto and are
// served by promhttp on /metrics. Covered areas:
//
//   - DuckDB query latency and errors
//   - API request counts, latency and in-flight requests
//   - Radius search strategy attempts, dropped results and degraded answers
//   - Geocoder lookups by source and outcome
//   - Circuit breaker state for every protected upstream
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Search Metrics
	SearchStrategyAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_strategy_attempts_total",
			Help: "Radius search strategy executions by outcome",
		},
		[]string{"strategy", "result"}, // result: "success", "failure", "skipped"
	)

	SearchStrategyDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "search_strategy_duration_seconds",
			Help:    "Duration of a single radius search strategy",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"strategy"},
	)

	SearchResultsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_results_dropped_total",
			Help: "Candidates removed by client-side verification",
		},
		[]string{"strategy", "reason"}, // reason: "out_of_radius", "no_coordinates", "date", "status", "facet"
	)

	SearchSuspiciousCoordinates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_suspicious_coordinates_total",
			Help: "Stored coordinates flagged as out of range or out of region",
		},
		[]string{"reason"},
	)

	SearchDegradedResponses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "search_degraded_responses_total",
			Help: "Searches answered by the unfiltered emergency strategy",
		},
	)

	SearchUnavailable = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "search_unavailable_total",
			Help: "Searches where every strategy failed",
		},
	)

	// Geocoding Metrics
	GeocodeRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geocode_requests_total",
			Help: "Coordinate resolutions by source and result",
		},
		[]string{"source", "result"}, // source: "zip-table", "nominatim", "debug-fallback"
	)

	GeocodeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "geocode_duration_seconds",
			Help:    "Upstream geocoder latency in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5},
		},
		[]string{"provider"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordDBQuery records a database query metric.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks in-flight API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordStrategyAttempt records one strategy execution.
func RecordStrategyAttempt(strategy, result string, duration time.Duration) {
	SearchStrategyAttempts.WithLabelValues(strategy, result).Inc()
	if result != "skipped" {
		SearchStrategyDuration.WithLabelValues(strategy).Observe(duration.Seconds())
	}
}

// RecordDropped records candidates removed by client-side verification.
func RecordDropped(strategy, reason string, n int) {
	if n > 0 {
		SearchResultsDropped.WithLabelValues(strategy, reason).Add(float64(n))
	}
}

// RecordGeocode records a coordinate resolution.
func RecordGeocode(source, result string) {
	GeocodeRequests.WithLabelValues(source, result).Inc()
}
