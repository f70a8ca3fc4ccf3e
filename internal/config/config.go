// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"time"
)

// Config holds all application configuration loaded from defaults, an optional
// YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any mapped setting
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	db, err := database.New(&cfg.Database)
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Recommend RecommendConfig `koanf:"recommend"`
	Snapshot  SnapshotConfig  `koanf:"snapshot"`
	Events    EventsConfig    `koanf:"events"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`          // Read/write timeout for HTTP requests
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"` // Graceful shutdown budget
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"`   // Number of DuckDB threads (0 = use NumCPU)
	SeedData  bool   `koanf:"seed_data"` // Insert the sample catalog when the movies table is empty
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// RecommendConfig holds clustering and refit settings.
type RecommendConfig struct {
	// NClusters is the number of k-means clusters.
	// Default: 5
	NClusters int `koanf:"n_clusters"`

	// Seed drives k-means++ initialization.
	// Default: 42
	Seed int64 `koanf:"seed"`

	// NoSignalSeed seeds the cluster draw for users without history.
	// Default: 42
	NoSignalSeed int64 `koanf:"no_signal_seed"`

	// MaxIter bounds Lloyd iterations per run.
	// Default: 300
	MaxIter int `koanf:"max_iter"`

	// NInit is the number of k-means restarts; the lowest inertia wins.
	// Default: 10
	NInit int `koanf:"n_init"`

	// Tol is the total centroid shift below which a run has converged.
	// Default: 1e-4
	Tol float64 `koanf:"tol"`

	// DefaultN is used when a request does not ask for a count.
	// Default: 5
	DefaultN int `koanf:"default_n"`

	// MaxN caps the number of recommendations per request.
	// Default: 100
	MaxN int `koanf:"max_n"`

	// LazyRefit refits on read when the model is dirty.
	// Default: true
	LazyRefit bool `koanf:"lazy_refit"`

	// FitOnStartup fits once when the refit service starts.
	// Default: true
	FitOnStartup bool `koanf:"fit_on_startup"`

	// RefitDebounce coalesces bursts of catalog events into one refit.
	// Default: 2s
	RefitDebounce time.Duration `koanf:"refit_debounce"`

	// MinRefitInterval is the minimum spacing between event-driven refits.
	// Default: 1s
	MinRefitInterval time.Duration `koanf:"min_refit_interval"`

	// RefitInterval is the safety ticker that refits when the model is dirty.
	// Default: 10m
	RefitInterval time.Duration `koanf:"refit_interval"`

	// FitTimeout bounds a single fit.
	// Default: 2m
	FitTimeout time.Duration `koanf:"fit_timeout"`
}

// SnapshotConfig holds model snapshot persistence settings.
type SnapshotConfig struct {
	// Enabled turns on the badger-backed model snapshot store.
	// Default: false
	Enabled bool `koanf:"enabled"`

	// Path is the badger directory.
	// Default: /data/snapshots
	Path string `koanf:"path"`
}

// EventsConfig holds in-process pub/sub settings.
type EventsConfig struct {
	// BufferSize is the gochannel output buffer per subscriber.
	// Default: 256
	BufferSize int64 `koanf:"buffer_size"`

	// PublishBreakerFailures trips the publish circuit breaker after this
	// many consecutive failures.
	// Default: 5
	PublishBreakerFailures uint32 `koanf:"publish_breaker_failures"`
}

// Load reads the configuration using Koanf v2 and validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
