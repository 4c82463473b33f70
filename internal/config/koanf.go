// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/showfinder/internal/breaker"
	"github.com/tomtom215/showfinder/internal/geo"
	"github.com/tomtom215/showfinder/internal/geocode"
	"github.com/tomtom215/showfinder/internal/series"
)

// DefaultConfigPaths lists the config file locations searched in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/showfinder/config.yaml",
	"/etc/showfinder/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultUserAgent identifies Showfinder to the geocoder.
const DefaultUserAgent = "showfinder/1.0 (+https://github.com/tomtom215/showfinder)"

func defaultConfig() *Config {
	seriesDefaults := series.DefaultConfig()

	return &Config{
		Server: ServerConfig{
			Port:            3857,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			Environment:     "development",
		},
		Database: DatabaseConfig{
			Path:                   "/data/showfinder.duckdb",
			MaxMemory:              "1GB",
			Threads:                0,
			PreserveInsertionOrder: true,
			SeedMockData:           false,
			EnableSpatial:          true,
			CheckpointInterval:     5 * time.Minute,
		},
		Search: SearchConfig{
			DefaultRadiusMiles: 50,
			MaxRadiusMiles:     500,
			DefaultPageSize:    20,
			MaxPageSize:        100,
			AllowDegraded:      false,
			StrategyTimeout:    10 * time.Second,
			Region:             geo.NorthAmerica,
			Breaker:            breaker.DefaultSettings(),
		},
		Geocoding: GeocodingConfig{
			BaseURL:           geocode.DefaultNominatimURL,
			UserAgent:         DefaultUserAgent,
			CountryCodes:      "us",
			Timeout:           geocode.DefaultTimeout,
			RequestsPerSecond: 1,
			Burst:             1,
			DebugFallback:     false,
			FallbackLatitude:  39.7684,
			FallbackLongitude: -86.1581,
			FallbackLabel:     "Indianapolis, IN (debug fallback)",
			Breaker:           breaker.DefaultSettings(),
		},
		Series: SeriesConfig{
			DuplicateSimilarity: seriesDefaults.DuplicateSimilarity,
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
			TrustedProxies:    []string{},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration with the precedence ENV > file > defaults.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are parsed from comma-separated env values.
var sliceConfigPaths = []string{
	"security.cors_origins",
	"security.trusted_proxies",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variables to koanf paths. Unlisted variables
// are ignored.
var envMappings = map[string]string{
	"http_port":        "server.port",
	"http_host":        "server.host",
	"http_timeout":     "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	"duckdb_path":            "database.path",
	"duckdb_max_memory":      "database.max_memory",
	"duckdb_threads":         "database.threads",
	"duckdb_spatial_enabled": "database.enable_spatial",
	"seed_mock_data":         "database.seed_mock_data",
	"duckdb_checkpoint":      "database.checkpoint_interval",

	"search_default_radius":    "search.default_radius_miles",
	"search_max_radius":        "search.max_radius_miles",
	"search_default_page_size": "search.default_page_size",
	"search_max_page_size":     "search.max_page_size",
	"search_allow_degraded":    "search.allow_degraded",
	"search_strategy_timeout":  "search.strategy_timeout",

	"geocoder_base_url":       "geocoding.base_url",
	"geocoder_user_agent":     "geocoding.user_agent",
	"geocoder_country_codes":  "geocoding.country_codes",
	"geocoder_timeout":        "geocoding.timeout",
	"geocoder_rps":            "geocoding.requests_per_second",
	"geocoder_debug_fallback": "geocoding.debug_fallback",

	"duplicate_similarity": "series.duplicate_similarity",

	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",
	"trusted_proxies":     "security.trusted_proxies",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps e.g. HTTP_PORT to server.port.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
