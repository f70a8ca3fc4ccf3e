// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the recommender.
type Config struct {
	// NClusters is the number of k-means clusters.
	// Default: 5.
	NClusters int `json:"n_clusters"`

	// Seed drives k-means++ initialization.
	// Default: 42.
	Seed int64 `json:"seed"`

	// NoSignalSeed seeds the default no-signal policy.
	// Default: 42.
	NoSignalSeed int64 `json:"no_signal_seed"`

	// MaxIter bounds Lloyd iterations per run.
	// Default: 300.
	MaxIter int `json:"max_iter"`

	// NInit is the number of k-means restarts.
	// Default: 10.
	NInit int `json:"n_init"`

	// Tol is the relative convergence tolerance.
	// Default: 1e-4.
	Tol float64 `json:"tol"`

	// DefaultN is the result size when the caller does not ask for one.
	// Default: 5.
	DefaultN int `json:"default_n"`

	// MaxN caps the result size.
	// Default: 100.
	MaxN int `json:"max_n"`

	// LazyRefit refits before serving when the catalog changed since the last fit.
	// Default: true.
	LazyRefit bool `json:"lazy_refit"`

	// FitTimeout bounds a single fit including catalog loading.
	// Default: 2m.
	FitTimeout time.Duration `json:"fit_timeout"`
}

// DefaultConfig returns the default recommender configuration.
func DefaultConfig() *Config {
	return &Config{
		NClusters:    5,
		Seed:         42,
		NoSignalSeed: 42,
		MaxIter:      300,
		NInit:        10,
		Tol:          1e-4,
		DefaultN:     5,
		MaxN:         100,
		LazyRefit:    true,
		FitTimeout:   2 * time.Minute,
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.NClusters <= 0 {
		return fmt.Errorf("n_clusters must be positive, got %d", c.NClusters)
	}
	if c.MaxIter <= 0 {
		return fmt.Errorf("max_iter must be positive, got %d", c.MaxIter)
	}
	if c.NInit <= 0 {
		return fmt.Errorf("n_init must be positive, got %d", c.NInit)
	}
	if c.Tol < 0 {
		return fmt.Errorf("tol must be non-negative, got %g", c.Tol)
	}
	if c.DefaultN <= 0 {
		return fmt.Errorf("default_n must be positive, got %d", c.DefaultN)
	}
	if c.MaxN < c.DefaultN {
		return fmt.Errorf("max_n (%d) must be >= default_n (%d)", c.MaxN, c.DefaultN)
	}
	if c.FitTimeout <= 0 {
		return fmt.Errorf("fit_timeout must be positive")
	}
	return nil
}

func (c *Config) kmeansConfig() KMeansConfig {
	return KMeansConfig{
		NClusters: c.NClusters,
		Seed:      c.Seed,
		MaxIter:   c.MaxIter,
		NInit:     c.NInit,
		Tol:       c.Tol,
	}
}
