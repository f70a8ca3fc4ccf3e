// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package main is the entry point for the Marquee server.

Marquee serves movie recommendations by clustering the catalog with k-means
over genre, release year, rating and popularity, then recommending the
top-rated unwatched movies from the cluster that best matches a user's
watch history.

# Application Architecture

The server runs under a Suture v4 supervisor tree:

	RootSupervisor ("marquee")
	├── ModelSupervisor ("model-layer")
	│   └── RefitService (snapshot restore, event-driven and periodic refits)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi router)

Component initialization order:

 1. Configuration: Koanf v2 with defaults, optional config.yaml and environment
 2. Logging: zerolog with JSON or console output
 3. Database: DuckDB, schema and migrations, optional sample catalog
 4. Recommender: k-means model over a circuit-broken catalog provider
 5. Event bus: watermill gochannel carrying catalog change events
 6. Snapshot store: BadgerDB (optional) holding the last fitted model
 7. Supervisor tree and HTTP server

# Configuration

Common environment variables:

	HTTP_PORT                  listen port (default 8000)
	DUCKDB_PATH                database file (default /data/marquee.duckdb)
	SEED_DATA                  insert the sample catalog when empty (default true)
	LOG_LEVEL, LOG_FORMAT      trace|debug|info|warn|error, json|console
	RECOMMEND_N_CLUSTERS       number of clusters (default 5)
	RECOMMEND_SEED             k-means seed (default 42)
	RECOMMEND_LAZY_REFIT       refit on read when the catalog changed (default true)
	RECOMMEND_REFIT_DEBOUNCE   delay before an event-driven refit (default 2s)
	SNAPSHOT_ENABLED           persist fitted models (default false)
	SNAPSHOT_PATH              badger directory (default /data/snapshots)

CONFIG_PATH points at a YAML file with the same keys nested by section.

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains in-flight
requests for up to HTTP_SHUTDOWN_TIMEOUT, the refit service stops, and the
bus, snapshot store and database are closed in that order.

# Example Usage

	export DUCKDB_PATH=./data/marquee.duckdb
	export LOG_FORMAT=console
	./marquee

	curl -s localhost:8000/users/1/recommendations?n_recommendations=3
*/
package main
