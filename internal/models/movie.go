// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

import (
	"strings"
	"time"
)

// Movie is a catalog entry.
//
// Genre holds comma-joined labels exactly as stored, e.g. "Action,Sci-Fi".
// Popularity is derived: the number of distinct users who watched the movie.
type Movie struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Genre       string    `json:"genre"`
	ReleaseYear int       `json:"release_year"`
	Rating      float64   `json:"rating"`
	Popularity  int       `json:"popularity"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// Genres splits the genre field on commas, trimming blanks and dropping empty labels.
func (m *Movie) Genres() []string {
	if m.Genre == "" {
		return nil
	}
	parts := strings.Split(m.Genre, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
