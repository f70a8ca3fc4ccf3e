// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/database"
)

func TestBuildRecommendConfig(t *testing.T) {
	in := config.RecommendConfig{
		NClusters:    3,
		Seed:         7,
		NoSignalSeed: 9,
		MaxIter:      50,
		NInit:        2,
		Tol:          1e-3,
		DefaultN:     4,
		MaxN:         20,
		LazyRefit:    true,
		FitTimeout:   time.Minute,
	}
	got := buildRecommendConfig(&in)

	if got.NClusters != 3 || got.Seed != 7 || got.NoSignalSeed != 9 {
		t.Errorf("clustering fields = %+v", got)
	}
	if got.MaxIter != 50 || got.NInit != 2 || got.Tol != 1e-3 {
		t.Errorf("k-means fields = %+v", got)
	}
	if got.DefaultN != 4 || got.MaxN != 20 || !got.LazyRefit || got.FitTimeout != time.Minute {
		t.Errorf("serving fields = %+v", got)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestInitRecommend(t *testing.T) {
	cfg := &config.Config{
		Database: config.DatabaseConfig{Path: ":memory:", MaxMemory: "256MB"},
		Recommend: config.RecommendConfig{
			NClusters:        5,
			Seed:             42,
			NoSignalSeed:     42,
			MaxIter:          300,
			NInit:            10,
			Tol:              1e-4,
			DefaultN:         5,
			MaxN:             100,
			RefitDebounce:    time.Millisecond,
			MinRefitInterval: time.Millisecond,
			FitTimeout:       time.Minute,
		},
		Snapshot: config.SnapshotConfig{Enabled: true, Path: t.TempDir()},
		Events:   config.EventsConfig{BufferSize: 16, PublishBreakerFailures: 5},
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		t.Fatalf("database.New() error = %v", err)
	}
	defer db.Close()
	if _, err := db.SeedMovies(context.Background()); err != nil {
		t.Fatalf("SeedMovies() error = %v", err)
	}

	rc, err := initRecommend(cfg, db, zerolog.Nop())
	if err != nil {
		t.Fatalf("initRecommend() error = %v", err)
	}
	defer rc.Close()

	if rc.Snapshots == nil {
		t.Fatal("snapshot store not opened")
	}
	if err := rc.Refit.Refit(context.Background(), "test"); err != nil {
		t.Fatalf("Refit() error = %v", err)
	}
	if !rc.Recommender.Trained() {
		t.Error("recommender not trained after refit")
	}
	if _, ok, err := rc.Snapshots.Load(); err != nil || !ok {
		t.Errorf("snapshot Load() = ok %v, err %v; want saved model", ok, err)
	}
}
