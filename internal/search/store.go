// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package search

import (
	"context"
	"time"

	"github.com/tomtom215/showfinder/internal/models"
)

// EventStore is the persistent store of show records.
//
// Implementations may evaluate the spatial and date predicates server-side
// however they like; the orchestrator re-checks everything it gets back.
type EventStore interface {
	// SearchNearby returns active events within radiusMiles of origin that
	// overlap window.
	SearchNearby(ctx context.Context, origin models.Coordinate, radiusMiles float64, window models.DateWindow) ([]models.StoredEvent, error)

	// SearchFiltered is SearchNearby plus the facet constraints.
	SearchFiltered(ctx context.Context, origin models.Coordinate, radiusMiles float64, window models.DateWindow, facets models.FacetFilter) ([]models.StoredEvent, error)

	// SearchRadiusOnly returns every event within radiusMiles of origin.
	SearchRadiusOnly(ctx context.Context, origin models.Coordinate, radiusMiles float64) ([]models.StoredEvent, error)

	// SearchAllUpcoming returns every event whose last day is on or after asOf.
	SearchAllUpcoming(ctx context.Context, asOf time.Time) ([]models.StoredEvent, error)
}
