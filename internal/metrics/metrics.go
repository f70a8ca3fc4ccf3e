// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
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
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
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
			Help: "Total number of requests rejected by rate limiting",
		},
		[]string{"endpoint"},
	)

	// Model Metrics
	ModelFitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_model_fits_total",
			Help: "Total number of model fits",
		},
		[]string{"result"}, // "success", "error", "empty"
	)

	ModelFitDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_model_fit_duration_seconds",
			Help:    "Duration of model fits in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		},
	)

	ModelMovies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_model_movies",
			Help: "Number of movies in the last successful fit",
		},
	)

	ModelClusters = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_model_clusters",
			Help: "Configured number of clusters",
		},
	)

	ModelLastFitTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_model_last_fit_timestamp_seconds",
			Help: "Unix time of the last successful fit",
		},
	)

	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation requests by serving mode",
		},
		[]string{"mode"},
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_request_duration_seconds",
			Help:    "Duration of recommendation computation in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"mode"},
	)

	// Refit Scheduling Metrics
	RefitTriggersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_refit_triggers_total",
			Help: "Total number of refit triggers by source",
		},
		[]string{"source"}, // "startup", "event", "ticker", "manual"
	)

	// Event Metrics
	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Total number of catalog events published",
		},
		[]string{"topic", "result"}, // result: "success", "error", "rejected"
	)

	EventsConsumedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_consumed_total",
			Help: "Total number of catalog events consumed",
		},
		[]string{"topic"},
	)

	// Snapshot Metrics
	SnapshotOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_snapshot_operations_total",
			Help: "Total number of model snapshot operations",
		},
		[]string{"operation", "result"}, // operation: "save", "load", "warm_start"
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

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Application Info
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the active request gauge
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit records a request rejected by a rate limiter
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordRefitTrigger records why a refit was requested
func RecordRefitTrigger(source string) {
	RefitTriggersTotal.WithLabelValues(source).Inc()
}

// RecordEventPublished records the outcome of publishing a catalog event
func RecordEventPublished(topic, result string) {
	EventsPublishedTotal.WithLabelValues(topic, result).Inc()
}

// RecordEventConsumed records a catalog event delivered to a subscriber
func RecordEventConsumed(topic string) {
	EventsConsumedTotal.WithLabelValues(topic).Inc()
}

// RecordSnapshot records a snapshot operation
func RecordSnapshot(operation string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	SnapshotOperationsTotal.WithLabelValues(operation, result).Inc()
}

// StatusLabel formats an HTTP status code for the status_code label
func StatusLabel(code int) string {
	return strconv.Itoa(code)
}
