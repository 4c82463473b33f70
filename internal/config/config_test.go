// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolateConfig points CONFIG_PATH at a missing file and runs from an empty
// directory so no stray config.yaml is picked up.
func isolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(ConfigPathEnvVar, filepath.Join(dir, "missing.yaml"))
	return dir
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 3857 {
		t.Errorf("Server.Port = %d, want 3857", cfg.Server.Port)
	}
	if cfg.Search.DefaultRadiusMiles != 50 || cfg.Search.MaxPageSize != 100 {
		t.Errorf("Search = %+v", cfg.Search)
	}
	if cfg.Search.AllowDegraded {
		t.Error("Search.AllowDegraded should default to false")
	}
	if cfg.Geocoding.Timeout != 5*time.Second {
		t.Errorf("Geocoding.Timeout = %v, want 5s", cfg.Geocoding.Timeout)
	}
	if cfg.Geocoding.DebugFallback {
		t.Error("debug fallback must be off by default")
	}
	if cfg.Series.DuplicateSimilarity != 0.8 {
		t.Errorf("Series = %+v", cfg.Series)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadWithKoanfEnvVars(t *testing.T) {
	isolateConfig(t)
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SEARCH_DEFAULT_RADIUS", "25")
	t.Setenv("GEOCODER_TIMEOUT", "3s")
	t.Setenv("SEARCH_ALLOW_DEGRADED", "true")
	t.Setenv("DUCKDB_CHECKPOINT", "30s")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("UNRELATED_VARIABLE", "ignored")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
	if cfg.Search.DefaultRadiusMiles != 25 {
		t.Errorf("Search.DefaultRadiusMiles = %v", cfg.Search.DefaultRadiusMiles)
	}
	if cfg.Geocoding.Timeout != 3*time.Second {
		t.Errorf("Geocoding.Timeout = %v", cfg.Geocoding.Timeout)
	}
	if !cfg.Search.AllowDegraded {
		t.Error("SEARCH_ALLOW_DEGRADED=true not applied")
	}
	if cfg.Database.CheckpointInterval != 30*time.Second {
		t.Errorf("Database.CheckpointInterval = %v, want 30s", cfg.Database.CheckpointInterval)
	}
	want := []string{"https://a.example", "https://b.example"}
	if strings.Join(cfg.Security.CORSOrigins, "|") != strings.Join(want, "|") {
		t.Errorf("CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
}

func TestLoadWithKoanfConfigFile(t *testing.T) {
	dir := isolateConfig(t)
	path := filepath.Join(dir, "showfinder.yaml")
	content := `
server:
  port: 8088
search:
  default_radius_miles: 30
  region:
    name: midwest
    min_lat: 36
    max_lat: 49
    min_lng: -98
    max_lng: -80
geocoding:
  user_agent: "file-agent/2.0"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "8089")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 8089 {
		t.Errorf("env should override file: Port = %d", cfg.Server.Port)
	}
	if cfg.Search.DefaultRadiusMiles != 30 {
		t.Errorf("DefaultRadiusMiles = %v, want 30", cfg.Search.DefaultRadiusMiles)
	}
	if cfg.Search.Region.Name != "midwest" || cfg.Search.Region.MaxLng != -80 {
		t.Errorf("Region = %+v", cfg.Search.Region)
	}
	if cfg.Geocoding.UserAgent != "file-agent/2.0" {
		t.Errorf("UserAgent = %q", cfg.Geocoding.UserAgent)
	}
	if cfg.Search.MaxRadiusMiles != 500 {
		t.Errorf("unset fields should keep defaults, MaxRadiusMiles = %v", cfg.Search.MaxRadiusMiles)
	}
}

func TestLoadWithKoanfInvalid(t *testing.T) {
	isolateConfig(t)
	t.Setenv("LOG_LEVEL", "verbose")

	if _, err := LoadWithKoanf(); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(*Config) {}, ""},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "HTTP_PORT"},
		{"bad environment", func(c *Config) { c.Server.Environment = "qa" }, "ENVIRONMENT"},
		{"empty db path", func(c *Config) { c.Database.Path = "" }, "DUCKDB_PATH"},
		{"negative checkpoint interval", func(c *Config) { c.Database.CheckpointInterval = -time.Second }, "DUCKDB_CHECKPOINT"},
		{"checkpoint disabled", func(c *Config) { c.Database.CheckpointInterval = 0 }, ""},
		{"default radius above max", func(c *Config) { c.Search.DefaultRadiusMiles = 600 }, "SEARCH_DEFAULT_RADIUS"},
		{"max page size too large", func(c *Config) { c.Search.MaxPageSize = 500 }, "SEARCH_MAX_PAGE_SIZE"},
		{"default page size above max", func(c *Config) { c.Search.DefaultPageSize = 101 }, "SEARCH_DEFAULT_PAGE_SIZE"},
		{"geocoder url with path", func(c *Config) { c.Geocoding.BaseURL = "https://geo.example/search" }, "GEOCODER_BASE_URL"},
		{"geocoder bad scheme", func(c *Config) { c.Geocoding.BaseURL = "ftp://geo.example" }, "GEOCODER_BASE_URL"},
		{"missing user agent", func(c *Config) { c.Geocoding.UserAgent = " " }, "GEOCODER_USER_AGENT"},
		{"zero geocoder timeout", func(c *Config) { c.Geocoding.Timeout = 0 }, "GEOCODER_TIMEOUT"},
		{"debug fallback in production", func(c *Config) {
			c.Server.Environment = "production"
			c.Geocoding.DebugFallback = true
		}, "GEOCODER_DEBUG_FALLBACK"},
		{"fallback out of range", func(c *Config) {
			c.Geocoding.DebugFallback = true
			c.Geocoding.FallbackLatitude = 120
		}, "fallback coordinate"},
		{"similarity zero", func(c *Config) { c.Series.DuplicateSimilarity = 0 }, "DUPLICATE_SIMILARITY"},
		{"rate limit window", func(c *Config) { c.Security.RateLimitWindow = time.Millisecond }, "RATE_LIMIT_WINDOW"},
		{"rate limit disabled skips checks", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}, ""},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestShouldWarnAboutCORS(t *testing.T) {
	cfg := defaultConfig()
	if cfg.ShouldWarnAboutCORS() {
		t.Error("development should not warn")
	}
	cfg.Server.Environment = "production"
	if !cfg.ShouldWarnAboutCORS() {
		t.Error("wildcard CORS in production should warn")
	}
	cfg.Security.CORSOrigins = []string{"https://shows.example"}
	if cfg.ShouldWarnAboutCORS() {
		t.Error("explicit origins should not warn")
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := map[string]string{
		"HTTP_PORT":               "server.port",
		"DUCKDB_PATH":             "database.path",
		"GEOCODER_DEBUG_FALLBACK": "geocoding.debug_fallback",
		"DUPLICATE_SIMILARITY":    "series.duplicate_similarity",
		"SERIES_THRESHOLD":        "",
		"SERIES_PROXIMITY_MILES":  "",
		"PATH":                    "",
		"HOME":                    "",
	}
	for in, want := range tests {
		if got := envTransformFunc(in); got != want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", in, got, want)
		}
	}
}
