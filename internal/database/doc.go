// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package database provides the DuckDB-backed catalog store: movies, users and
the watches that link them.

# Schema

Three tables, created on startup and extended by versioned migrations
recorded in schema_migrations:

  - movies(id, title, genre, release_year, rating, created_at)
  - users(id, username UNIQUE, email UNIQUE, created_at)
  - watched_movies(user_id, movie_id, rating NULL, watched_at), keyed by
    (user_id, movie_id)

Movie popularity is derived, never stored: it is the number of distinct users
who watched the movie, computed by a LEFT JOIN at read time.

# Errors

  - ErrNotFound: unknown user or movie (the same value as recommend.ErrNotFound)
  - ErrConflict: duplicate username or email

All other errors are wrapped with %w and carry the failing operation.

# Recommender Integration

CatalogProvider adapts the store to recommend.Catalog behind a sony/gobreaker
circuit breaker:

	db, err := database.New(&cfg.Database)
	catalog := database.NewCatalogProvider(db)
	rec, err := recommend.NewRecommender(recCfg, catalog, logger)

# Usage Example

	db, err := database.New(&config.DatabaseConfig{Path: "/data/marquee.duckdb"})
	if err != nil {
	    return err
	}
	defer db.Close()

	if _, err := db.SeedMovies(ctx); err != nil {
	    return err
	}
	movie, err := db.CreateMovie(ctx, &models.MovieInput{
	    Title: "Heat", Genre: "Action,Crime", ReleaseYear: 1995, Rating: 8.3,
	})
	err = db.RecordWatch(ctx, userID, movie.ID, nil)

# Thread Safety

DB is safe for concurrent use; database/sql pools the DuckDB connections.
*/
package database
