// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

// MovieInput is the body of POST /movies.
type MovieInput struct {
	Title       string  `json:"title" validate:"required,notblank,max=255"`
	Genre       string  `json:"genre" validate:"required,notblank,max=255"`
	ReleaseYear int     `json:"release_year" validate:"min=1870,max=2100"`
	Rating      float64 `json:"rating" validate:"min=0,max=10"`
}

// UserInput is the body of POST /users.
type UserInput struct {
	Username string `json:"username" validate:"required,notblank,max=64"`
	Email    string `json:"email" validate:"required,email,max=255"`
}

// WatchInput is the body of POST /users/{user_id}/watch/{movie_id}.
type WatchInput struct {
	Rating *float64 `json:"rating" validate:"required,min=0,max=10"`
}

// CatalogStats counts the rows behind the catalog.
type CatalogStats struct {
	Movies  int64 `json:"movies"`
	Users   int64 `json:"users"`
	Watches int64 `json:"watches"`
}
