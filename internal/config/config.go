// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

// Package config loads Showfinder configuration.
//
// Loading Order (Koanf v2):
//  1. Defaults: built-in values from defaultConfig()
//  2. Config File: optional YAML file (CONFIG_PATH, ./config.yaml, /etc/showfinder/config.yaml)
//  3. Environment Variables: an explicit mapping table, see envTransformFunc
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load configuration")
//	}
//	db, err := database.New(&cfg.Database)
//
// Config is immutable after Load() and safe for concurrent reads.
package config

import (
	"time"

	"github.com/tomtom215/showfinder/internal/breaker"
	"github.com/tomtom215/showfinder/internal/geo"
	"github.com/tomtom215/showfinder/internal/models"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Search    SearchConfig    `koanf:"search"`
	Geocoding GeocodingConfig `koanf:"geocoding"`
	Series    SeriesConfig    `koanf:"series"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging, production
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	Path                   string `koanf:"path"`
	MaxMemory              string `koanf:"max_memory"`
	Threads                int    `koanf:"threads"` // 0 = NumCPU
	PreserveInsertionOrder bool   `koanf:"preserve_insertion_order"`
	SeedMockData           bool   `koanf:"seed_mock_data"`

	// EnableSpatial loads the spatial extension when it is installed locally.
	// Distance queries fall back to a SQL Haversine expression without it.
	EnableSpatial bool `koanf:"enable_spatial"`

	// CheckpointInterval flushes the WAL periodically; 0 disables it.
	CheckpointInterval time.Duration `koanf:"checkpoint_interval"`
}

// SearchConfig holds radius search settings.
//
// Environment Variables:
//   - SEARCH_DEFAULT_RADIUS: radius in miles when the request omits one (default: 50)
//   - SEARCH_MAX_RADIUS: largest accepted radius in miles (default: 500)
//   - SEARCH_ALLOW_DEGRADED: serve unfiltered emergency results when every
//     radius strategy fails (default: false)
//   - SEARCH_STRATEGY_TIMEOUT: per-strategy store timeout (default: 10s)
type SearchConfig struct {
	DefaultRadiusMiles float64          `koanf:"default_radius_miles"`
	MaxRadiusMiles     float64          `koanf:"max_radius_miles"`
	DefaultPageSize    int              `koanf:"default_page_size"`
	MaxPageSize        int              `koanf:"max_page_size"`
	AllowDegraded      bool             `koanf:"allow_degraded"`
	StrategyTimeout    time.Duration    `koanf:"strategy_timeout"`
	Region             geo.Region       `koanf:"region"` // suspicious-coordinate bounding box
	Breaker            breaker.Settings `koanf:"breaker"`
}

// GeocodingConfig holds coordinate resolution settings.
//
// Environment Variables:
//   - GEOCODER_BASE_URL: Nominatim base URL (default: public OSM instance)
//   - GEOCODER_USER_AGENT: identifying User-Agent, required by Nominatim policy
//   - GEOCODER_TIMEOUT: upstream call timeout (default: 5s)
//   - GEOCODER_RPS: outbound request rate (default: 1)
//   - GEOCODER_DEBUG_FALLBACK: return a fixed coordinate on failure (development only)
type GeocodingConfig struct {
	BaseURL           string           `koanf:"base_url"`
	UserAgent         string           `koanf:"user_agent"`
	CountryCodes      string           `koanf:"country_codes"`
	Timeout           time.Duration    `koanf:"timeout"`
	RequestsPerSecond float64          `koanf:"requests_per_second"`
	Burst             int              `koanf:"burst"`
	DebugFallback     bool             `koanf:"debug_fallback"`
	FallbackLatitude  float64          `koanf:"fallback_latitude"`
	FallbackLongitude float64          `koanf:"fallback_longitude"`
	FallbackLabel     string           `koanf:"fallback_label"`
	Breaker           breaker.Settings `koanf:"breaker"`
}

// FallbackCoordinate returns the debug fallback point.
func (g *GeocodingConfig) FallbackCoordinate() models.Coordinate {
	return models.Coordinate{Latitude: g.FallbackLatitude, Longitude: g.FallbackLongitude}
}

// SeriesConfig holds duplicate detection settings. The same-series
// threshold and weights are fixed in the series package.
type SeriesConfig struct {
	DuplicateSimilarity float64 `koanf:"duplicate_similarity"`
}

// SecurityConfig holds rate limiting and CORS settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	TrustedProxies    []string      `koanf:"trusted_proxies"`
}

// LoggingConfig holds logging settings for zerolog.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from defaults, an optional config file and the
// environment, then validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
