// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package geocode

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/tomtom215/showfinder/internal/breaker"
	"github.com/tomtom215/showfinder/internal/logging"
	"github.com/tomtom215/showfinder/internal/metrics"
	"github.com/tomtom215/showfinder/internal/models"
)

// DefaultTimeout bounds the upstream geocoder call.
const DefaultTimeout = 5 * time.Second

var errRateLimited = errors.New("geocoder rate limit")

// Config configures a Resolver.
type Config struct {
	// Timeout for the upstream call (default: 5s).
	Timeout time.Duration

	// DebugFallback returns FallbackCoordinate instead of failing. Never
	// enable in production: it silently places users somewhere else.
	DebugFallback      bool
	FallbackCoordinate models.Coordinate
	FallbackLabel      string
}

// Resolver resolves ZIP codes and addresses to coordinates.
type Resolver struct {
	zips     ZipTable
	provider Provider
	cfg      Config
}

// NewResolver creates a resolver. zips and provider may each be nil.
func NewResolver(zips ZipTable, provider Provider, cfg Config) *Resolver {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.FallbackLabel == "" {
		cfg.FallbackLabel = "debug fallback location"
	}
	return &Resolver{zips: zips, provider: provider, cfg: cfg}
}

// Resolve returns coordinates for a ZIP code or free-form address.
func (r *Resolver) Resolve(ctx context.Context, location string) (*Resolution, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, &ResolutionError{Location: location, Reason: ReasonEmpty}
	}

	if zip, ok := ParseZip(location); ok && r.zips != nil {
		if res := r.lookupZip(ctx, zip); res != nil {
			return res, nil
		}
	}

	res, err := r.callProvider(ctx, location)
	if err == nil {
		metrics.RecordGeocode(res.Source, "hit")
		return res, nil
	}

	if r.cfg.DebugFallback {
		logging.Ctx(ctx).Warn().Err(err).Str("location", location).
			Str("fallback", r.cfg.FallbackCoordinate.String()).
			Msg("Geocoding failed, using debug fallback coordinate")
		metrics.RecordGeocode(SourceDebugFallback, "hit")
		return &Resolution{
			Coordinate:  r.cfg.FallbackCoordinate,
			DisplayName: r.cfg.FallbackLabel,
			Source:      SourceDebugFallback,
			Fallback:    true,
		}, nil
	}

	return nil, err
}

func (r *Resolver) lookupZip(ctx context.Context, zip string) *Resolution {
	entry, err := r.zips.LookupZip(ctx, zip)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("zip", zip).Msg("ZIP table lookup failed, trying geocoder")
		metrics.RecordGeocode(SourceZipTable, "error")
		return nil
	}
	if entry == nil {
		metrics.RecordGeocode(SourceZipTable, "miss")
		return nil
	}

	metrics.RecordGeocode(SourceZipTable, "hit")
	return &Resolution{
		Coordinate:  models.Coordinate{Latitude: entry.Latitude, Longitude: entry.Longitude},
		City:        entry.City,
		State:       entry.State,
		PostalCode:  entry.PostalCode,
		DisplayName: entry.City + ", " + entry.State + " " + entry.PostalCode,
		Source:      SourceZipTable,
	}
}

func (r *Resolver) callProvider(ctx context.Context, location string) (*Resolution, error) {
	if r.provider == nil || !r.provider.IsAvailable() {
		return nil, &ResolutionError{Location: location, Reason: ReasonUnavailable}
	}

	callCtx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	res, err := r.provider.Geocode(callCtx, location)
	if err != nil {
		reason := classify(callCtx, err)
		metrics.RecordGeocode(r.provider.Name(), reason)
		logging.Ctx(ctx).Debug().Err(err).Str("provider", r.provider.Name()).
			Str("reason", reason).Msg("Geocoder failed")
		return nil, &ResolutionError{Location: location, Reason: reason, Err: err}
	}
	if res == nil {
		metrics.RecordGeocode(r.provider.Name(), ReasonNoResults)
		return nil, &ResolutionError{Location: location, Reason: ReasonNoResults, Err: ErrNoResults}
	}
	return res, nil
}

func classify(ctx context.Context, err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return ReasonTimeout
	case breaker.IsRejected(err):
		return ReasonUnavailable
	case errors.Is(err, errRateLimited):
		return ReasonRateLimited
	case errors.Is(err, ErrNoResults):
		return ReasonNoResults
	default:
		return ReasonUpstream
	}
}
