// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package middleware provides HTTP middleware shared by the API router.

All middleware here has the func(http.Handler) http.Handler shape and can be
passed straight to chi's r.Use.

Key Components:

  - RequestID: UUID request identifiers, echoed in X-Request-ID and stored in
    the logging context so every log line of a request carries request_id
  - PrometheusMetrics: request count, latency and in-flight gauges labelled
    by the chi route pattern rather than the raw path
  - AccessLog: one structured log line per request

Middleware Stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)

RequestID must run first so later middleware and handlers see the ID.

Access the request ID in a handler:

	func handler(w http.ResponseWriter, r *http.Request) {
	    logging.Ctx(r.Context()).Info().Msg("handling")  // includes request_id
	    id := middleware.GetRequestID(r.Context())
	}

Route labels:

PrometheusMetrics labels requests with the matched route pattern such as
/users/{user_id}/recommendations. Requests that match no route are labelled
"unmatched" so unknown paths cannot grow label cardinality.
*/
package middleware
