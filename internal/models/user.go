// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

import (
	"time"
)

// Watch records that a user watched a movie.
// Rating is nil when the user did not rate it.
type Watch struct {
	MovieID   int64     `json:"movie_id"`
	Rating    *float64  `json:"rating,omitempty"`
	WatchedAt time.Time `json:"watched_at"`
}

// User is an account together with its watch history.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	Watched   []Watch   `json:"watched"`
}

// WatchedSet returns the IDs of every movie the user has watched.
func (u *User) WatchedSet() map[int64]struct{} {
	set := make(map[int64]struct{}, len(u.Watched))
	for _, w := range u.Watched {
		set[w.MovieID] = struct{}{}
	}
	return set
}

// HasWatched reports whether the user watched movieID.
func (u *User) HasWatched(movieID int64) bool {
	for _, w := range u.Watched {
		if w.MovieID == movieID {
			return true
		}
	}
	return false
}

// UserDetail expands a user's watch history with full movie records.
type UserDetail struct {
	ID            int64          `json:"id"`
	Username      string         `json:"username"`
	Email         string         `json:"email"`
	WatchedMovies []WatchedMovie `json:"watched_movies"`
}

// WatchedMovie is a movie paired with the user's own rating of it.
type WatchedMovie struct {
	Movie
	UserRating *float64 `json:"user_rating,omitempty"`
}
