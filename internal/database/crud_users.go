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
	"time"

	"github.com/tomtom215/marquee/internal/models"
)

// CreateUser inserts a user. A taken username or email returns ErrConflict.
func (db *DB) CreateUser(ctx context.Context, in *models.UserInput) (*models.User, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	u := &models.User{
		Username: strings.TrimSpace(in.Username),
		Email:    strings.TrimSpace(in.Email),
		Watched:  []models.Watch{},
	}

	err := db.conn.QueryRowContext(ctx,
		`INSERT INTO users (username, email) VALUES (?, ?) RETURNING id, created_at`,
		u.Username, u.Email,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, fmt.Errorf("user %q: %w", u.Username, ErrConflict)
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return u, nil
}

// GetUser returns a user with their watch history, or ErrNotFound.
func (db *DB) GetUser(ctx context.Context, id int64) (*models.User, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	u := &models.User{}
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, username, email, created_at FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}

	watches, err := db.watchesByUser(ctx, &id)
	if err != nil {
		return nil, err
	}
	u.Watched = watches[id]
	if u.Watched == nil {
		u.Watched = []models.Watch{}
	}
	return u, nil
}

// ListUsers returns every user with their watch history, ordered by ID.
func (db *DB) ListUsers(ctx context.Context) ([]models.User, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, `SELECT id, username, email, created_at FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]models.User, 0)
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt); err != nil {
			closeQuietly(rows)
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		closeQuietly(rows)
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	closeWithLog(rows, "user rows")

	watches, err := db.watchesByUser(ctx, nil)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Watched = watches[users[i].ID]
		if users[i].Watched == nil {
			users[i].Watched = []models.Watch{}
		}
	}
	return users, nil
}

// watchesByUser loads watches grouped by user, for one user when userID is set.
func (db *DB) watchesByUser(ctx context.Context, userID *int64) (map[int64][]models.Watch, error) {
	query := `SELECT user_id, movie_id, rating, watched_at FROM watched_movies`
	var args []any
	if userID != nil {
		query += ` WHERE user_id = ?`
		args = append(args, *userID)
	}
	query += ` ORDER BY user_id, movie_id`

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query watches: %w", err)
	}
	defer closeWithLog(rows, "watch rows")

	out := make(map[int64][]models.Watch)
	for rows.Next() {
		var (
			uid    int64
			w      models.Watch
			rating sql.NullFloat64
		)
		if err := rows.Scan(&uid, &w.MovieID, &rating, &w.WatchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan watch: %w", err)
		}
		if rating.Valid {
			r := rating.Float64
			w.Rating = &r
		}
		out[uid] = append(out[uid], w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating watches: %w", err)
	}
	return out, nil
}

// RecordWatch marks a movie as watched by a user.
//
// Both must exist (ErrNotFound otherwise). Watching the same movie again
// replaces the rating and timestamp, so each pair is counted once.
func (db *DB) RecordWatch(ctx context.Context, userID, movieID int64, rating *float64) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if err := db.exists(ctx, "users", userID); err != nil {
		return fmt.Errorf("user %d: %w", userID, err)
	}
	if err := db.exists(ctx, "movies", movieID); err != nil {
		return fmt.Errorf("movie %d: %w", movieID, err)
	}

	var r sql.NullFloat64
	if rating != nil {
		r = sql.NullFloat64{Float64: *rating, Valid: true}
	}

	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO watched_movies (user_id, movie_id, rating, watched_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, movie_id) DO UPDATE SET
			rating = EXCLUDED.rating,
			watched_at = EXCLUDED.watched_at`,
		userID, movieID, r, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to record watch: %w", err)
	}
	return nil
}

// exists returns ErrNotFound unless table has a row with the given id.
// table is always a package constant, never caller input.
func (db *DB) exists(ctx context.Context, table string, id int64) error {
	var one int
	err := db.conn.QueryRowContext(ctx, `SELECT 1 FROM `+table+` WHERE id = ?`, id).Scan(&one) //nolint:gosec // table is a constant
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to look up %s: %w", table, err)
	}
	return nil
}

// GetUserDetail returns a user joined with the movies they watched, ordered
// by movie ID.
func (db *DB) GetUserDetail(ctx context.Context, id int64) (*models.UserDetail, error) {
	u, err := db.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, movieColumns+`, uw.rating`+movieFrom+`
	JOIN watched_movies uw ON uw.movie_id = m.id AND uw.user_id = ?`+
		movieGroupBy+`, uw.rating
	ORDER BY m.id`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query watched movies: %w", err)
	}
	defer closeWithLog(rows, "watched movie rows")

	detail := &models.UserDetail{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		WatchedMovies: make([]models.WatchedMovie, 0, len(u.Watched)),
	}
	for rows.Next() {
		var (
			wm     models.WatchedMovie
			rating sql.NullFloat64
		)
		if err := rows.Scan(&wm.ID, &wm.Title, &wm.Genre, &wm.ReleaseYear, &wm.Rating, &wm.CreatedAt, &wm.Popularity, &rating); err != nil {
			return nil, fmt.Errorf("failed to scan watched movie: %w", err)
		}
		if rating.Valid {
			r := rating.Float64
			wm.UserRating = &r
		}
		detail.WatchedMovies = append(detail.WatchedMovies, wm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating watched movies: %w", err)
	}
	return detail, nil
}

// Stats counts movies, users and watches.
func (db *DB) Stats(ctx context.Context) (*models.CatalogStats, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	s := &models.CatalogStats{}
	err := db.conn.QueryRowContext(ctx, `SELECT
		(SELECT COUNT(*) FROM movies),
		(SELECT COUNT(*) FROM users),
		(SELECT COUNT(*) FROM watched_movies)`,
	).Scan(&s.Movies, &s.Users, &s.Watches)
	if err != nil {
		return nil, fmt.Errorf("failed to count catalog: %w", err)
	}
	return s, nil
}
