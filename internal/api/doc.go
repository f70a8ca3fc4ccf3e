// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package api provides the HTTP interface of the recommendation service.

Routes are served by chi. Every response uses the models.APIResponse envelope
encoded with goccy/go-json:

	{"status": "success", "data": ..., "metadata": {"timestamp": ..., "query_time_ms": 2}}
	{"status": "error", "data": null, "error": {"code": "NOT_FOUND", "message": "user not found"}, ...}

Endpoints:

	POST /movies                             create a movie (201)
	GET  /movies                             list the catalog with popularity
	POST /users                              create a user (201, 409 on duplicate)
	GET  /users/{user_id}                    user with watched movies
	POST /users/{user_id}/watch/{movie_id}   record a watch, body {"rating": 8.5}
	GET  /users/{user_id}/recommendations    ?n_recommendations=5
	GET  /clusters/stats                     per-cluster statistics
	GET  /stats                              catalog counts
	POST /model/refit                        synchronous refit (5/min per IP)
	GET  /model/status                       recommender status
	GET  /health/live, /health/ready         probes
	GET  /metrics                            Prometheus metrics

Catalog writes mark the model dirty and publish a catalog event. The refit
service consumes those events; the dirty flag alone is enough to trigger a
later refit if an event is lost.

Error codes map as follows:

	VALIDATION_ERROR     400  malformed body, path or query parameter
	NOT_FOUND            404  unknown user or movie
	CONFLICT             409  duplicate username or email
	RATE_LIMIT_EXCEEDED  429  per-IP limit hit
	TIMEOUT              504  storage or model call exceeded its deadline
	INTERNAL_ERROR       500  anything else; details are logged, not returned
*/
package api
