// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Recommend.NClusters != 5 {
		t.Errorf("Recommend.NClusters = %d, want 5", cfg.Recommend.NClusters)
	}
	if cfg.Recommend.Seed != 42 {
		t.Errorf("Recommend.Seed = %d, want 42", cfg.Recommend.Seed)
	}
	if cfg.Recommend.DefaultN != 5 {
		t.Errorf("Recommend.DefaultN = %d, want 5", cfg.Recommend.DefaultN)
	}
	if !cfg.Recommend.LazyRefit {
		t.Error("Recommend.LazyRefit should be true by default")
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("Server.Port = %d, want 8000", cfg.Server.Port)
	}
	if len(cfg.Security.CORSOrigins) != 4 {
		t.Errorf("Security.CORSOrigins has %d entries, want 4", len(cfg.Security.CORSOrigins))
	}
	if cfg.Snapshot.Enabled {
		t.Error("Snapshot.Enabled should be false by default")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadWithKoanf_EnvOverrides(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DUCKDB_PATH", "/tmp/test.duckdb")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RECOMMEND_N_CLUSTERS", "7")
	t.Setenv("RECOMMEND_REFIT_DEBOUNCE", "500ms")
	t.Setenv("CORS_ORIGINS", "http://a.example, https://b.example")
	t.Setenv("SEED_DATA", "false")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Database.Path != "/tmp/test.duckdb" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Recommend.NClusters != 7 {
		t.Errorf("Recommend.NClusters = %d, want 7", cfg.Recommend.NClusters)
	}
	if cfg.Recommend.RefitDebounce != 500*time.Millisecond {
		t.Errorf("Recommend.RefitDebounce = %v, want 500ms", cfg.Recommend.RefitDebounce)
	}
	if cfg.Database.SeedData {
		t.Error("Database.SeedData should be false")
	}
	want := []string{"http://a.example", "https://b.example"}
	if strings.Join(cfg.Security.CORSOrigins, "|") != strings.Join(want, "|") {
		t.Errorf("Security.CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
}

func TestLoadWithKoanf_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 7000
recommend:
  n_clusters: 3
  seed: 7
logging:
  format: console
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("Server.Port = %d, want 7000", cfg.Server.Port)
	}
	if cfg.Recommend.NClusters != 3 || cfg.Recommend.Seed != 7 {
		t.Errorf("Recommend = %+v", cfg.Recommend)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Logging.Format = %q, want console", cfg.Logging.Format)
	}
	// Untouched values keep their defaults
	if cfg.Recommend.DefaultN != 5 {
		t.Errorf("Recommend.DefaultN = %d, want 5", cfg.Recommend.DefaultN)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"DUCKDB_PATH", "database.path"},
		{"RECOMMEND_N_CLUSTERS", "recommend.n_clusters"},
		{"SNAPSHOT_ENABLED", "snapshot.enabled"},
		{"PATH", ""},
		{"HOME", ""},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := envTransformFunc(tt.key); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "HTTP_PORT"},
		{"empty db path", func(c *Config) { c.Database.Path = " " }, "DUCKDB_PATH"},
		{"bad origin", func(c *Config) { c.Security.CORSOrigins = []string{"localhost"} }, "CORS_ORIGINS"},
		{"zero clusters", func(c *Config) { c.Recommend.NClusters = 0 }, "RECOMMEND_N_CLUSTERS"},
		{"max below default", func(c *Config) { c.Recommend.MaxN = 1 }, "RECOMMEND_MAX_N"},
		{"snapshot without path", func(c *Config) {
			c.Snapshot.Enabled = true
			c.Snapshot.Path = ""
		}, "SNAPSHOT_PATH"},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "LOG_LEVEL"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
		{"rate limit disabled skips checks", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
