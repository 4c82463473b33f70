// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package config

import (
	"fmt"
	"strings"
	"time"
)

// pageSizeCeiling is the hard upper bound on any page size.
const pageSizeCeiling = 100

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

var validEnvironments = map[string]bool{
	"development": true,
	"staging":     true,
	"production":  true,
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateSearch(); err != nil {
		return err
	}
	if err := c.validateGeocoding(); err != nil {
		return err
	}
	if err := c.validateSeries(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Environment, "production")
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.Environment != "" && !validEnvironments[strings.ToLower(c.Server.Environment)] {
		return fmt.Errorf("ENVIRONMENT must be one of: development, staging, production")
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("DUCKDB_PATH is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be >= 0")
	}
	if c.Database.CheckpointInterval < 0 {
		return fmt.Errorf("DUCKDB_CHECKPOINT must be >= 0")
	}
	return nil
}

func (c *Config) validateSearch() error {
	s := &c.Search
	if s.MaxRadiusMiles <= 0 {
		return fmt.Errorf("SEARCH_MAX_RADIUS must be positive")
	}
	if s.DefaultRadiusMiles <= 0 || s.DefaultRadiusMiles > s.MaxRadiusMiles {
		return fmt.Errorf("SEARCH_DEFAULT_RADIUS must be in (0, %g]", s.MaxRadiusMiles)
	}
	if s.MaxPageSize < 1 || s.MaxPageSize > pageSizeCeiling {
		return fmt.Errorf("SEARCH_MAX_PAGE_SIZE must be between 1 and %d", pageSizeCeiling)
	}
	if s.DefaultPageSize < 1 || s.DefaultPageSize > s.MaxPageSize {
		return fmt.Errorf("SEARCH_DEFAULT_PAGE_SIZE must be between 1 and %d", s.MaxPageSize)
	}
	if s.StrategyTimeout < 0 {
		return fmt.Errorf("SEARCH_STRATEGY_TIMEOUT must be >= 0")
	}
	if s.Breaker.FailureRatio < 0 || s.Breaker.FailureRatio > 1 {
		return fmt.Errorf("search.breaker.failure_ratio must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateGeocoding() error {
	g := &c.Geocoding
	if err := validateHTTPURL(g.BaseURL, "GEOCODER_BASE_URL"); err != nil {
		return err
	}
	if strings.TrimSpace(g.UserAgent) == "" {
		return fmt.Errorf("GEOCODER_USER_AGENT is required by the Nominatim usage policy")
	}
	if g.Timeout <= 0 || g.Timeout > time.Minute {
		return fmt.Errorf("GEOCODER_TIMEOUT must be between 0 and 1m, got %v", g.Timeout)
	}
	if g.RequestsPerSecond <= 0 {
		return fmt.Errorf("GEOCODER_RPS must be positive")
	}
	if g.DebugFallback {
		if c.IsProduction() {
			return fmt.Errorf("GEOCODER_DEBUG_FALLBACK must not be enabled in production")
		}
		if !g.FallbackCoordinate().InRange() {
			return fmt.Errorf("geocoding fallback coordinate %s is out of range", g.FallbackCoordinate())
		}
	}
	return nil
}

func (c *Config) validateSeries() error {
	if c.Series.DuplicateSimilarity <= 0 || c.Series.DuplicateSimilarity > 1 {
		return fmt.Errorf("DUPLICATE_SIMILARITY must be in (0, 1]")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1")
	}
	if c.Security.RateLimitWindow < time.Second {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be at least 1s")
	}
	return nil
}

// ShouldWarnAboutCORS reports a wildcard CORS origin in production.
func (c *Config) ShouldWarnAboutCORS() bool {
	if !c.IsProduction() {
		return false
	}
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
