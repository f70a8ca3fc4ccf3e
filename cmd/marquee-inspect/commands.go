// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/database"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/recommend"
)

// store is the read side of the database the commands use.
type store interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUserDetail(ctx context.Context, id int64) (*models.UserDetail, error)
	ListMovies(ctx context.Context) ([]models.Movie, error)
	TopRated(ctx context.Context, limit int, excludeUserID int64) ([]models.Movie, error)
	Stats(ctx context.Context) (*models.CatalogStats, error)
}

var (
	topN        int
	unwatchedBy int64
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List users and the movies they watched",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(ctx context.Context, db *database.DB, _ *config.Config) error {
			return printUsers(ctx, cmd.OutOrStdout(), db, jsonOutput)
		})
	},
}

var moviesCmd = &cobra.Command{
	Use:   "movies",
	Short: "List movies with their watcher counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(ctx context.Context, db *database.DB, _ *config.Config) error {
			return printMovies(ctx, cmd.OutOrStdout(), db, topN, unwatchedBy, jsonOutput)
		})
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print catalog totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(ctx context.Context, db *database.DB, _ *config.Config) error {
			return printStats(ctx, cmd.OutOrStdout(), db, jsonOutput)
		})
	},
}

var clustersCmd = &cobra.Command{
	Use:   "clusters",
	Short: "Fit the model and print cluster statistics",
	Long:  `Fit k-means over the current catalog with the configured parameters and summarize each cluster.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(ctx context.Context, db *database.DB, cfg *config.Config) error {
			rcfg := recommend.DefaultConfig()
			rcfg.NClusters = cfg.Recommend.NClusters
			rcfg.Seed = cfg.Recommend.Seed
			rcfg.MaxIter = cfg.Recommend.MaxIter
			rcfg.NInit = cfg.Recommend.NInit
			rcfg.Tol = cfg.Recommend.Tol
			rec, err := recommend.NewRecommender(rcfg, database.NewCatalogProvider(db), zerolog.Nop())
			if err != nil {
				return err
			}
			return printClusters(ctx, cmd.OutOrStdout(), rec, jsonOutput)
		})
	},
}

func init() {
	moviesCmd.Flags().IntVar(&topN, "top", 0, "only the N highest rated movies (0 for all)")
	moviesCmd.Flags().Int64Var(&unwatchedBy, "unwatched-by", 0, "with --top, skip movies this user ID already watched")
}

func printUsers(ctx context.Context, w io.Writer, s store, asJSON bool) error {
	users, err := s.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	details := make([]*models.UserDetail, 0, len(users))
	for i := range users {
		d, err := s.GetUserDetail(ctx, users[i].ID)
		if err != nil {
			return fmt.Errorf("user %d: %w", users[i].ID, err)
		}
		details = append(details, d)
	}
	if asJSON {
		return writeJSON(w, details)
	}

	if len(details) == 0 {
		_, err := fmt.Fprintln(w, "no users")
		return err
	}
	for _, d := range details {
		fmt.Fprintf(w, "%d %s <%s> watched %d\n", d.ID, d.Username, d.Email, len(d.WatchedMovies))
		for _, m := range d.WatchedMovies {
			fmt.Fprintf(w, "    %d %s (%d) rating %s\n", m.ID, m.Title, m.ReleaseYear, formatRating(m.UserRating))
		}
	}
	return nil
}

func printMovies(ctx context.Context, w io.Writer, s store, top int, unwatchedBy int64, asJSON bool) error {
	if unwatchedBy > 0 && top <= 0 {
		return errors.New("--unwatched-by requires --top")
	}

	var (
		movies []models.Movie
		err    error
	)
	if top > 0 {
		movies, err = s.TopRated(ctx, top, unwatchedBy)
	} else {
		movies, err = s.ListMovies(ctx)
	}
	if err != nil {
		return fmt.Errorf("list movies: %w", err)
	}
	if asJSON {
		return writeJSON(w, movies)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tGENRE\tYEAR\tRATING\tWATCHERS")
	for i := range movies {
		m := &movies[i]
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%.1f\t%d\n", m.ID, m.Title, m.Genre, m.ReleaseYear, m.Rating, m.Popularity)
	}
	return tw.Flush()
}

func printStats(ctx context.Context, w io.Writer, s store, asJSON bool) error {
	st, err := s.Stats(ctx)
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}
	if asJSON {
		return writeJSON(w, st)
	}
	_, err = fmt.Fprintf(w, "movies %d\nusers %d\nwatches %d\n", st.Movies, st.Users, st.Watches)
	return err
}

// clusterSource fits and summarizes clusters.
type clusterSource interface {
	Fit(ctx context.Context) error
	ClusterStatistics(ctx context.Context) ([]recommend.ClusterStats, error)
}

func printClusters(ctx context.Context, w io.Writer, rec clusterSource, asJSON bool) error {
	if err := rec.Fit(ctx); err != nil {
		return fmt.Errorf("fit: %w", err)
	}
	stats, err := rec.ClusterStatistics(ctx)
	if err != nil {
		return fmt.Errorf("cluster statistics: %w", err)
	}
	if asJSON {
		if stats == nil {
			stats = []recommend.ClusterStats{}
		}
		return writeJSON(w, stats)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CLUSTER\tMOVIES\tAVG RATING\tAVG YEAR\tTOP GENRES")
	for i := range stats {
		c := &stats[i]
		genres := make([]string, len(c.TopGenres))
		for j, g := range c.TopGenres {
			genres[j] = fmt.Sprintf("%s:%d", g.Genre, g.Count)
		}
		fmt.Fprintf(tw, "%d\t%d\t%.2f\t%.0f\t%s\n", c.ClusterID, c.MovieCount, c.AvgRating, c.AvgYear, strings.Join(genres, ","))
	}
	return tw.Flush()
}

func formatRating(r *float64) string {
	if r == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *r)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
