// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package geo

import (
	"math"

	"github.com/tomtom215/showfinder/internal/models"
)

// CoordinateEpsilon is the tolerance for treating a coordinate as the (0, 0)
// "unknown location" sentinel. 1e-7 degrees is about 1 cm at the equator.
const CoordinateEpsilon = 1e-7

// IsUnknownLocation reports whether lat/lng is the (0, 0) sentinel that
// importers write when no location was available.
func IsUnknownLocation(lat, lng float64) bool {
	return math.Abs(lat) < CoordinateEpsilon && math.Abs(lng) < CoordinateEpsilon
}

// Normalize resolves a stored location into a Coordinate.
//
// ExplicitCoordinates needs both fields present. NestedPoint needs at least
// two elements and is read as [longitude, latitude]. Missing values,
// non-finite values and the (0, 0) sentinel all yield ok == false. Range is
// not checked here; use Check for that.
func Normalize(src models.CoordinateSource) (c models.Coordinate, ok bool) {
	switch s := src.(type) {
	case models.ExplicitCoordinates:
		if s.Latitude == nil || s.Longitude == nil {
			return models.Coordinate{}, false
		}
		c = models.Coordinate{Latitude: *s.Latitude, Longitude: *s.Longitude}
	case *models.ExplicitCoordinates:
		if s == nil {
			return models.Coordinate{}, false
		}
		return Normalize(*s)
	case models.NestedPoint:
		if len(s.Coordinates) < 2 {
			return models.Coordinate{}, false
		}
		c = models.Coordinate{Latitude: s.Coordinates[1], Longitude: s.Coordinates[0]}
	case *models.NestedPoint:
		if s == nil {
			return models.Coordinate{}, false
		}
		return Normalize(*s)
	default:
		return models.Coordinate{}, false
	}

	if !isFinite(c.Latitude) || !isFinite(c.Longitude) {
		return models.Coordinate{}, false
	}
	if IsUnknownLocation(c.Latitude, c.Longitude) {
		return models.Coordinate{}, false
	}
	return c, true
}

// NormalizeEvent returns the event's coordinate, preferring the raw stored
// location and falling back to EventRecord.Coordinates.
func NormalizeEvent(se *models.StoredEvent) (models.Coordinate, bool) {
	if c, ok := Normalize(se.Location); ok {
		return c, true
	}
	if se.Event.Coordinates != nil {
		return Normalize(models.ExplicitFrom(*se.Event.Coordinates))
	}
	return models.Coordinate{}, false
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
