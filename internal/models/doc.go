// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package models defines the data structures shared by the store, the
recommender and the HTTP API.

Catalog Models:
  - Movie: a catalog entry with its derived popularity (distinct watchers)
  - User: an account with its watch history
  - Watch: one user-movie association with an optional rating
  - UserDetail, WatchedMovie: a user joined with the movies they watched
  - CatalogStats: row counts

Request Models:
  - MovieInput, UserInput, WatchInput: validated request bodies

API Models:
  - APIResponse, Metadata, APIError: the response envelope used by every endpoint
*/
package models
