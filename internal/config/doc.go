// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package config provides centralized configuration management for Marquee.

Configuration is layered with Koanf v2: struct defaults first, then an optional
YAML file (CONFIG_PATH, ./config.yaml or /etc/marquee/config.yaml), then a fixed
set of environment variables. Unmapped environment variables are ignored.

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT (default: 8000), HTTP_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT

Database:
  - DUCKDB_PATH, DUCKDB_MAX_MEMORY, DUCKDB_THREADS
  - SEED_DATA: insert the sample catalog into an empty store (default: true)

Security:
  - CORS_ORIGINS: comma-separated origins (default: localhost:8001 variants)
  - RATE_LIMIT_REQS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

Logging:
  - LOG_LEVEL (trace, debug, info, warn, error), LOG_FORMAT (json, console), LOG_CALLER

Recommender:
  - RECOMMEND_N_CLUSTERS (default: 5), RECOMMEND_SEED (default: 42)
  - RECOMMEND_NO_SIGNAL_SEED, RECOMMEND_MAX_ITER, RECOMMEND_N_INIT, RECOMMEND_TOL
  - RECOMMEND_DEFAULT_N, RECOMMEND_MAX_N
  - RECOMMEND_LAZY_REFIT, RECOMMEND_FIT_ON_STARTUP
  - RECOMMEND_REFIT_DEBOUNCE, RECOMMEND_MIN_REFIT_INTERVAL, RECOMMEND_REFIT_INTERVAL
  - RECOMMEND_FIT_TIMEOUT

Snapshots:
  - SNAPSHOT_ENABLED, SNAPSHOT_PATH

Events:
  - EVENTS_BUFFER_SIZE, EVENTS_PUBLISH_BREAKER_FAILURES

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
*/
package config
