// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
exposed at /metrics by the API router.

# Available Metrics

API Metrics:
  - api_requests_total: Requests by method, endpoint and status_code (counter)
  - api_request_duration_seconds: Request latency by method and endpoint (histogram)
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Requests rejected by httprate (counter)

Model Metrics:
  - recommend_model_fits_total: Fits by result: success, error, empty (counter)
  - recommend_model_fit_duration_seconds: Fit latency (histogram)
  - recommend_model_movies: Movies in the last successful fit (gauge)
  - recommend_model_clusters: Configured cluster count (gauge)
  - recommend_model_last_fit_timestamp_seconds: Unix time of the last fit (gauge)
  - recommend_requests_total: Served requests by mode (counter)
  - recommend_request_duration_seconds: Serving latency by mode (histogram)
  - recommend_refit_triggers_total: Refit requests by source (counter)
  - recommend_snapshot_operations_total: Snapshot save/load outcomes (counter)

Event Metrics:
  - events_published_total: Catalog events by topic and result (counter)
  - events_consumed_total: Catalog events delivered by topic (counter)

Circuit Breaker Metrics:
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open (gauge)
  - circuit_breaker_requests_total: Calls by result (counter)
  - circuit_breaker_state_transitions_total: State changes (counter)

# Usage

	start := time.Now()
	// ... handle request ...
	metrics.RecordAPIRequest(r.Method, r.URL.Path, "200", time.Since(start))

The recommender reports through RecommendObserver:

	rec, err := recommend.NewRecommender(cfg, catalog, logger,
	    recommend.WithObserver(metrics.RecommendObserver{}))

# Example Queries

	# p95 fit latency
	histogram_quantile(0.95, rate(recommend_model_fit_duration_seconds_bucket[1h]))

	# share of requests padded with top-rated movies
	rate(recommend_requests_total{mode="cluster_padded"}[5m])
	  / ignoring(mode) sum(rate(recommend_requests_total[5m]))
*/
package metrics
