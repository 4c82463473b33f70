// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/showfinder/internal/geo"
	"github.com/tomtom215/showfinder/internal/metrics"
	"github.com/tomtom215/showfinder/internal/models"
)

// milesPerDegreeLat bounds the latitude prefilter. One degree of latitude is
// never shorter than 68.7 miles.
const milesPerDegreeLat = 68.7

// The explicit pair is used only when both columns are set, matching scanShow.
const (
	latExpr = "CASE WHEN latitude IS NOT NULL AND longitude IS NOT NULL THEN latitude ELSE location[2] END"
	lngExpr = "CASE WHEN latitude IS NOT NULL AND longitude IS NOT NULL THEN longitude ELSE location[1] END"
)

// distanceExpr returns a SQL expression over lat_value/lng_value for the
// distance in miles from origin, along with its arguments.
func (db *DB) distanceExpr(origin models.Coordinate) (string, []interface{}) {
	if db.spatialAvailable {
		// ST_Distance_Sphere takes points in (lat, lon) order.
		return "ST_Distance_Sphere(ST_Point(lat_value, lng_value), ST_Point(?, ?)) / 1609.344",
			[]interface{}{origin.Latitude, origin.Longitude}
	}
	expr := fmt.Sprintf(`2 * %v * ASIN(LEAST(1.0, SQRT(
		POWER(SIN(RADIANS(lat_value - ?) / 2), 2) +
		COS(RADIANS(?)) * COS(RADIANS(lat_value)) * POWER(SIN(RADIANS(lng_value - ?) / 2), 2))))`,
		geo.EarthRadiusMiles)
	return expr, []interface{}{origin.Latitude, origin.Latitude, origin.Longitude}
}

// radiusQuery builds the base query for shows within radiusMiles of origin.
// Rows without coordinates or at the (0,0) sentinel never match.
func (db *DB) radiusQuery(origin models.Coordinate, radiusMiles float64) *queryBuilder {
	dist, distArgs := db.distanceExpr(origin)
	latSpan := radiusMiles / milesPerDegreeLat

	query := fmt.Sprintf(`SELECT %s FROM (
			SELECT *, %s AS lat_value, %s AS lng_value FROM shows
		) s
		WHERE lat_value IS NOT NULL AND lng_value IS NOT NULL
		AND NOT (abs(lat_value) < ? AND abs(lng_value) < ?)
		AND lat_value BETWEEN ? AND ?`,
		showColumns, latExpr, lngExpr)

	qb := newQueryBuilder(query,
		geo.CoordinateEpsilon, geo.CoordinateEpsilon,
		origin.Latitude-latSpan, origin.Latitude+latSpan)

	qb.addFilter(dist+" <= ?", append(distArgs, radiusMiles)...)
	return qb
}

func addWindowFilter(qb *queryBuilder, window models.DateWindow) {
	if !window.End.IsZero() {
		qb.addFilter("start_date <= CAST(? AS DATE)", window.End.Format(dateLayout))
	}
	if !window.Start.IsZero() {
		qb.addFilter("COALESCE(end_date, start_date) >= CAST(? AS DATE)", window.Start.Format(dateLayout))
	}
}

func addActiveFilter(qb *queryBuilder) {
	qb.addFilter("(status IS NULL OR status = '' OR lower(status) = ?)", models.StatusActive)
}

func addFacetFilter(qb *queryBuilder, facets models.FacetFilter) {
	if facets.MaxEntryFee != nil {
		qb.addFilter("(entry_fee IS NULL OR entry_fee <= ?)", *facets.MaxEntryFee)
	}
	qb.addListFilter("list_has_any", "category_keys", categoryKeys(facets.Categories))
	qb.addListFilter("list_has_all", "features", enabledFeatures(facets.Features))
}

const orderBy = "ORDER BY start_date, id"

// SearchNearby implements search.EventStore.
func (db *DB) SearchNearby(ctx context.Context, origin models.Coordinate, radiusMiles float64, window models.DateWindow) ([]models.StoredEvent, error) {
	qb := db.radiusQuery(origin, radiusMiles)
	addWindowFilter(qb, window)
	addActiveFilter(qb)
	return db.runShowQuery(ctx, "search_nearby", qb)
}

// SearchFiltered implements search.EventStore.
func (db *DB) SearchFiltered(ctx context.Context, origin models.Coordinate, radiusMiles float64, window models.DateWindow, facets models.FacetFilter) ([]models.StoredEvent, error) {
	qb := db.radiusQuery(origin, radiusMiles)
	addWindowFilter(qb, window)
	addActiveFilter(qb)
	addFacetFilter(qb, facets)
	return db.runShowQuery(ctx, "search_filtered", qb)
}

// SearchRadiusOnly implements search.EventStore.
func (db *DB) SearchRadiusOnly(ctx context.Context, origin models.Coordinate, radiusMiles float64) ([]models.StoredEvent, error) {
	return db.runShowQuery(ctx, "search_radius_only", db.radiusQuery(origin, radiusMiles))
}

// SearchAllUpcoming implements search.EventStore. Shows without coordinates
// are included.
func (db *DB) SearchAllUpcoming(ctx context.Context, asOf time.Time) ([]models.StoredEvent, error) {
	qb := newQueryBuilder("SELECT "+showColumns+" FROM shows WHERE COALESCE(end_date, start_date) >= CAST(? AS DATE)",
		asOf.Format(dateLayout))
	addActiveFilter(qb)
	return db.runShowQuery(ctx, "search_all_upcoming", qb)
}

func (db *DB) runShowQuery(ctx context.Context, operation string, qb *queryBuilder) ([]models.StoredEvent, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	query, args := qb.build(orderBy)
	start := time.Now()
	results, err := queryAndScan(ctx, db.conn, query, args, scanShow)
	metrics.RecordDBQuery(operation, "shows", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("%s query failed: %w", strings.ReplaceAll(operation, "_", " "), err)
	}
	return results, nil
}
