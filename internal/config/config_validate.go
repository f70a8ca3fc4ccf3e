// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"fmt"
	"strings"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	if err := c.validateSnapshot(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

// validateDatabase validates DuckDB configuration
func (c *Config) validateDatabase() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("DUCKDB_PATH is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be non-negative, got %d", c.Database.Threads)
	}
	return nil
}

// validateSecurity validates CORS and rate limiting configuration
func (c *Config) validateSecurity() error {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			continue
		}
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("CORS_ORIGINS entry %q must start with http:// or https://", origin)
		}
	}
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQS must be positive, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

// validateRecommend validates clustering and refit configuration
func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.NClusters < 1 || r.NClusters > 1000 {
		return fmt.Errorf("RECOMMEND_N_CLUSTERS must be between 1 and 1000, got %d", r.NClusters)
	}
	if r.MaxIter <= 0 {
		return fmt.Errorf("RECOMMEND_MAX_ITER must be positive, got %d", r.MaxIter)
	}
	if r.NInit <= 0 {
		return fmt.Errorf("RECOMMEND_N_INIT must be positive, got %d", r.NInit)
	}
	if r.Tol < 0 {
		return fmt.Errorf("RECOMMEND_TOL must be non-negative, got %g", r.Tol)
	}
	if r.DefaultN <= 0 {
		return fmt.Errorf("RECOMMEND_DEFAULT_N must be positive, got %d", r.DefaultN)
	}
	if r.MaxN < r.DefaultN {
		return fmt.Errorf("RECOMMEND_MAX_N (%d) must be >= RECOMMEND_DEFAULT_N (%d)", r.MaxN, r.DefaultN)
	}
	if r.RefitDebounce < 0 || r.MinRefitInterval < 0 || r.RefitInterval < 0 {
		return fmt.Errorf("recommend refit intervals must be non-negative")
	}
	if r.FitTimeout <= 0 {
		return fmt.Errorf("RECOMMEND_FIT_TIMEOUT must be positive")
	}
	return nil
}

// validateSnapshot validates snapshot store configuration
func (c *Config) validateSnapshot() error {
	if c.Snapshot.Enabled && strings.TrimSpace(c.Snapshot.Path) == "" {
		return fmt.Errorf("SNAPSHOT_PATH is required when SNAPSHOT_ENABLED=true")
	}
	return nil
}

// validLogLevels contains all valid log level values
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats contains all valid log format values
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
