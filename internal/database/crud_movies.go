// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/marquee/internal/models"
)

// movieColumns selects a movie with its distinct watcher count.
// Callers append WHERE/ORDER clauses; the GROUP BY is part of movieFrom.
const movieColumns = `SELECT m.id, m.title, m.genre, m.release_year, m.rating, m.created_at,
	COUNT(DISTINCT w.user_id) AS popularity`

const movieFrom = `
	FROM movies m
	LEFT JOIN watched_movies w ON w.movie_id = m.id`

const movieGroupBy = `
	GROUP BY m.id, m.title, m.genre, m.release_year, m.rating, m.created_at`

// movieRankOrder matches the ranking used for recommendations.
const movieRankOrder = `
	ORDER BY m.rating DESC, popularity DESC, m.id ASC`

func scanMovie(s interface{ Scan(...any) error }) (models.Movie, error) {
	var m models.Movie
	err := s.Scan(&m.ID, &m.Title, &m.Genre, &m.ReleaseYear, &m.Rating, &m.CreatedAt, &m.Popularity)
	return m, err
}

func scanMovies(rows *sql.Rows) ([]models.Movie, error) {
	movies := make([]models.Movie, 0)
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating movies: %w", err)
	}
	return movies, nil
}

// CreateMovie inserts a movie and returns it with its assigned ID.
func (db *DB) CreateMovie(ctx context.Context, in *models.MovieInput) (*models.Movie, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	m := &models.Movie{
		Title:       strings.TrimSpace(in.Title),
		Genre:       strings.TrimSpace(in.Genre),
		ReleaseYear: in.ReleaseYear,
		Rating:      in.Rating,
	}

	err := db.conn.QueryRowContext(ctx,
		`INSERT INTO movies (title, genre, release_year, rating) VALUES (?, ?, ?, ?) RETURNING id, created_at`,
		m.Title, m.Genre, m.ReleaseYear, m.Rating,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert movie: %w", err)
	}
	return m, nil
}

// GetMovie returns one movie with its popularity, or ErrNotFound.
func (db *DB) GetMovie(ctx context.Context, id int64) (*models.Movie, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	row := db.conn.QueryRowContext(ctx, movieColumns+movieFrom+`
	WHERE m.id = ?`+movieGroupBy, id)
	m, err := scanMovie(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("movie %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get movie %d: %w", id, err)
	}
	return &m, nil
}

// ListMovies returns the whole catalog ordered by ID.
func (db *DB) ListMovies(ctx context.Context) ([]models.Movie, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, movieColumns+movieFrom+movieGroupBy+`
	ORDER BY m.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	defer closeWithLog(rows, "movie rows")

	return scanMovies(rows)
}

// TopRated returns up to limit movies ranked by rating, then popularity.
// When excludeUserID is positive, movies that user watched are skipped.
func (db *DB) TopRated(ctx context.Context, limit int, excludeUserID int64) ([]models.Movie, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if limit <= 0 {
		return []models.Movie{}, nil
	}

	query := movieColumns + movieFrom + `
	WHERE m.id NOT IN (SELECT movie_id FROM watched_movies WHERE user_id = ?)` +
		movieGroupBy + movieRankOrder + `
	LIMIT ?`

	rows, err := db.conn.QueryContext(ctx, query, excludeUserID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top rated movies: %w", err)
	}
	defer closeWithLog(rows, "movie rows")

	return scanMovies(rows)
}

// CountMovies returns the number of movies in the catalog.
func (db *DB) CountMovies(ctx context.Context) (int64, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var n int64
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count movies: %w", err)
	}
	return n, nil
}
