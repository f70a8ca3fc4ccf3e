// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Command marquee-inspect prints the contents of a Marquee database: users
// and what they watched, movies with watcher counts, catalog totals, and the
// clusters a fresh fit produces.
//
// DuckDB allows one writer per file, so run it against a copy or while the
// server is stopped.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/database"
	"github.com/tomtom215/marquee/internal/logging"
)

var (
	dbPath     string
	jsonOutput bool
	verbose    bool
	timeout    time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "marquee-inspect",
	Short:         "Inspect a Marquee database",
	Long:          `Print users, movies, catalog totals and cluster statistics from a Marquee DuckDB file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := "warn"
		if verbose {
			level = "debug"
		}
		logging.Init(logging.Config{Level: level, Format: "console", Output: os.Stderr})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database file (defaults to DUCKDB_PATH or the server default)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print JSON instead of tables")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall time limit")

	rootCmd.AddCommand(usersCmd, moviesCmd, statsCmd, clustersCmd)
}

// openDB opens the database named by --db, falling back to the server's
// configured path.
func openDB() (*database.DB, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", cfg.Database.Path, err)
	}
	return db, cfg, nil
}

// withDB runs fn against an open database under the --timeout deadline.
func withDB(fn func(ctx context.Context, db *database.DB, cfg *config.Config) error) error {
	db, cfg, err := openDB()
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Warn().Err(err).Msg("Error closing database")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return fn(ctx, db, cfg)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
