// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package logging provides centralized zerolog-based logging for Marquee.
//
// Call Init once from main with the configured level and format, then log
// through the package helpers or a component logger:
//
//	logging.Init(logging.Config{Level: "info", Format: "json", Timestamp: true})
//	logging.Info().Str("addr", addr).Msg("HTTP server listening")
//
//	logger := logging.WithComponent("recommend")
//	logger.Debug().Int("movies", n).Msg("fit complete")
//
// Request-scoped logging picks up the request ID set by the API middleware:
//
//	logging.Ctx(r.Context()).Warn().Err(err).Msg("catalog load failed")
//
// Bridges are provided for libraries with their own logging interfaces:
// NewSlogLogger for suture (via sutureslog) and NewWatermillLogger for
// watermill pub/sub.
package logging
