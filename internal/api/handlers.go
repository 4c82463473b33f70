// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package api

import (
	"context"
	"time"

	"github.com/tomtom215/showfinder/internal/config"
	"github.com/tomtom215/showfinder/internal/geo"
	"github.com/tomtom215/showfinder/internal/parser"
	"github.com/tomtom215/showfinder/internal/search"
	"github.com/tomtom215/showfinder/internal/series"
)

// Version is reported by the readiness endpoint. Overridden at build time.
var Version = "dev"

// Pinger checks backing store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers_health.go: liveness and readiness
//   - handlers_shows.go: geocode, nearby search and listing parse
//   - handlers_series.go: coordinate normalization, series and duplicates
type Handler struct {
	db        Pinger
	search    *search.Service
	parser    *parser.Parser
	detector  *series.Detector
	config    *config.Config
	region    geo.Region
	startTime time.Time
}

// NewHandler creates the API handler. db may be nil, in which case
// readiness reports the store as disconnected.
func NewHandler(db Pinger, svc *search.Service, p *parser.Parser, d *series.Detector, cfg *config.Config) *Handler {
	if p == nil {
		p = parser.New()
	}
	if d == nil {
		d = series.NewDetector(series.DefaultConfig())
	}
	region := geo.NorthAmerica
	if cfg != nil && cfg.Search.Region.Name != "" {
		region = cfg.Search.Region
	}
	return &Handler{
		db:        db,
		search:    svc,
		parser:    p,
		detector:  d,
		config:    cfg,
		region:    region,
		startTime: time.Now(),
	}
}
