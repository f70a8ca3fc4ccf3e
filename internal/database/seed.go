// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package database

import (
	"context"
	"fmt"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/models"
)

// SeedCatalog is the sample catalog loaded into an empty database.
var SeedCatalog = []models.MovieInput{
	{Title: "Inception", Genre: "Action,Sci-Fi", ReleaseYear: 2010, Rating: 8.8},
	{Title: "The Dark Knight", Genre: "Action,Drama", ReleaseYear: 2008, Rating: 9.0},
	{Title: "Pulp Fiction", Genre: "Drama,Crime", ReleaseYear: 1994, Rating: 8.9},
	{Title: "The Shawshank Redemption", Genre: "Drama", ReleaseYear: 1994, Rating: 9.3},
	{Title: "Forrest Gump", Genre: "Drama,Romance", ReleaseYear: 1994, Rating: 8.8},
	{Title: "The Matrix", Genre: "Action,Sci-Fi", ReleaseYear: 1999, Rating: 8.7},
	{Title: "Goodfellas", Genre: "Drama,Crime", ReleaseYear: 1990, Rating: 8.7},
	{Title: "The Godfather", Genre: "Drama,Crime", ReleaseYear: 1972, Rating: 9.2},
	{Title: "Fight Club", Genre: "Drama", ReleaseYear: 1999, Rating: 8.8},
	{Title: "The Silence of the Lambs", Genre: "Drama,Thriller", ReleaseYear: 1991, Rating: 8.6},
}

// SeedMovies inserts SeedCatalog when the movies table is empty.
// It returns the number of movies inserted.
func (db *DB) SeedMovies(ctx context.Context) (int, error) {
	n, err := db.CountMovies(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logging.Debug().Int64("movies", n).Msg("Catalog not empty, skipping seed data")
		return 0, nil
	}

	for i := range SeedCatalog {
		if _, err := db.CreateMovie(ctx, &SeedCatalog[i]); err != nil {
			return i, fmt.Errorf("failed to seed %q: %w", SeedCatalog[i].Title, err)
		}
	}

	logging.Info().Int("movies", len(SeedCatalog)).Msg("Seeded sample catalog")
	return len(SeedCatalog), nil
}
