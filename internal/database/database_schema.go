// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
database_schema.go - Database Schema Management

Tables:
  - movies: the catalog (id from movies_id_seq)
  - users: accounts with unique username and email (id from users_id_seq)
  - watched_movies: user/movie associations keyed by (user_id, movie_id),
    so a re-watch updates the row instead of adding one

Popularity is never stored; it is the distinct watcher count computed at
query time.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the core database tables
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range getTableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}
	return nil
}

func getTableCreationQueries() []string {
	return []string{
		`CREATE SEQUENCE IF NOT EXISTS movies_id_seq START 1;`,
		`CREATE SEQUENCE IF NOT EXISTS users_id_seq START 1;`,
		`CREATE TABLE IF NOT EXISTS movies (
			id BIGINT PRIMARY KEY DEFAULT nextval('movies_id_seq'),
			title TEXT NOT NULL,
			genre TEXT NOT NULL,
			release_year INTEGER NOT NULL,
			rating DOUBLE NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT current_timestamp
		);`,
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT PRIMARY KEY DEFAULT nextval('users_id_seq'),
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			created_at TIMESTAMP NOT NULL DEFAULT current_timestamp
		);`,
		`CREATE TABLE IF NOT EXISTS watched_movies (
			user_id BIGINT NOT NULL,
			movie_id BIGINT NOT NULL,
			rating DOUBLE,
			watched_at TIMESTAMP NOT NULL DEFAULT current_timestamp,
			PRIMARY KEY (user_id, movie_id)
		);`,
	}
}
