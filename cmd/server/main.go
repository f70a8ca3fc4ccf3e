// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/tomtom215/marquee/internal/api"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/database"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/supervisor"
	"github.com/tomtom215/marquee/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	logging.Info().
		Str("version", version).
		Str("db_path", cfg.Database.Path).
		Int("n_clusters", cfg.Recommend.NClusters).
		Bool("snapshots", cfg.Snapshot.Enabled).
		Msg("Starting Marquee")

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server stopped with error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

// run wires the components and blocks until a shutdown signal arrives or the
// supervisor tree gives up.
func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	if cfg.Database.SeedData {
		n, err := db.SeedMovies(ctx)
		if err != nil {
			return fmt.Errorf("seed movies: %w", err)
		}
		if n > 0 {
			logging.Info().Int("movies", n).Msg("Seeded sample catalog")
		}
	}

	rc, err := initRecommend(cfg, db, logging.With().Str("component", "recommend").Logger())
	if err != nil {
		return err
	}
	defer rc.Close()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}
	tree.AddModelService(rc.Refit)

	handler := api.NewHandler(db, rc.Recommender, api.HandlerConfig{
		RequestTimeout: cfg.Server.Timeout,
		FitTimeout:     cfg.Recommend.FitTimeout,
	})
	handler.SetEventPublisher(rc.Bus)
	handler.SetRefitter(rc.Refit)

	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security)))
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout + cfg.Recommend.FitTimeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}
	tree.AddAPIService(
		services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout).
			WithLogger(logging.With().Str("component", "api").Logger()),
	)

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	var treeErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Received shutdown signal, waiting for supervisor to finish")
		treeErr = <-errCh
	case treeErr = <-errCh:
	}

	var serveErr error
	if treeErr != nil && !errors.Is(treeErr, context.Canceled) {
		serveErr = fmt.Errorf("supervisor tree: %w", treeErr)
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}
	return serveErr
}
