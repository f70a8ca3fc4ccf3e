// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/database"
	"github.com/tomtom215/marquee/internal/events"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/snapshot"
	"github.com/tomtom215/marquee/internal/supervisor/services"
)

// recommendComponents holds the recommender and the background machinery
// that keeps it current.
type recommendComponents struct {
	Recommender *recommend.Recommender
	Bus         *events.Bus
	Snapshots   *snapshot.Store
	Refit       *services.RefitService
}

// initRecommend builds the recommender over db, the catalog event bus, the
// optional snapshot store, and the refit service that ties them together.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initRecommend(cfg *config.Config, db *database.DB, logger zerolog.Logger) (*recommendComponents, error) {
	rec, err := recommend.NewRecommender(
		buildRecommendConfig(&cfg.Recommend),
		database.NewCatalogProvider(db),
		logger,
		recommend.WithObserver(metrics.RecommendObserver{}),
	)
	if err != nil {
		return nil, fmt.Errorf("create recommender: %w", err)
	}

	busCfg := events.DefaultConfig()
	busCfg.BufferSize = cfg.Events.BufferSize
	busCfg.BreakerFailures = cfg.Events.PublishBreakerFailures
	bus := events.NewBus(busCfg, logging.NewWatermillLogger(logger.With().Str("component", "events").Logger()))

	rc := &recommendComponents{Recommender: rec, Bus: bus}

	// A nil *snapshot.Store must not reach the service as a non-nil interface.
	var store services.SnapshotStore
	if cfg.Snapshot.Enabled {
		snaps, err := snapshot.Open(cfg.Snapshot.Path)
		if err != nil {
			rc.Close()
			return nil, fmt.Errorf("open snapshot store: %w", err)
		}
		rc.Snapshots = snaps
		store = snaps
		logger.Info().Str("path", cfg.Snapshot.Path).Msg("model snapshots enabled")
	}

	rc.Refit = services.NewRefitService(rec, store, bus, services.RefitServiceConfig{
		FitOnStartup: cfg.Recommend.FitOnStartup,
		Debounce:     cfg.Recommend.RefitDebounce,
		MinInterval:  cfg.Recommend.MinRefitInterval,
		Interval:     cfg.Recommend.RefitInterval,
	}, logger)

	logger.Info().
		Int("n_clusters", cfg.Recommend.NClusters).
		Int64("seed", cfg.Recommend.Seed).
		Bool("lazy_refit", cfg.Recommend.LazyRefit).
		Dur("refit_debounce", cfg.Recommend.RefitDebounce).
		Msg("recommendation engine initialized")
	return rc, nil
}

// Close releases the bus and the snapshot store.
func (rc *recommendComponents) Close() {
	if err := rc.Bus.Close(); err != nil {
		logging.Warn().Err(err).Msg("Error closing event bus")
	}
	if rc.Snapshots != nil {
		if err := rc.Snapshots.Close(); err != nil {
			logging.Warn().Err(err).Msg("Error closing snapshot store")
		}
	}
}

// buildRecommendConfig maps the recommend config section onto recommend.Config.
func buildRecommendConfig(c *config.RecommendConfig) *recommend.Config {
	return &recommend.Config{
		NClusters:    c.NClusters,
		Seed:         c.Seed,
		NoSignalSeed: c.NoSignalSeed,
		MaxIter:      c.MaxIter,
		NInit:        c.NInit,
		Tol:          c.Tol,
		DefaultN:     c.DefaultN,
		MaxN:         c.MaxN,
		LazyRefit:    c.LazyRefit,
		FitTimeout:   c.FitTimeout,
	}
}
