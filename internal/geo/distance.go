// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package geo

import (
	"math"

	"github.com/tomtom215/showfinder/internal/models"
)

const (
	// EarthRadiusMiles is the mean Earth radius used for all distance math.
	EarthRadiusMiles = 3958.8

	// EarthRadiusKm is the same radius in kilometres.
	EarthRadiusKm = 6371.0

	// ProximityThresholdMiles is the distance under which two venues are
	// treated as the same building (roughly 160 m).
	ProximityThresholdMiles = 0.1
)

// DistanceMiles returns the Haversine distance between a and b in miles.
// The result is symmetric and zero for identical points.
func DistanceMiles(a, b models.Coordinate) float64 {
	return haversine(a, b) * EarthRadiusMiles
}

// DistanceKm returns the Haversine distance between a and b in kilometres.
func DistanceKm(a, b models.Coordinate) float64 {
	return haversine(a, b) * EarthRadiusKm
}

// IsProximate reports whether a and b are closer than ProximityThresholdMiles.
func IsProximate(a, b models.Coordinate) bool {
	return DistanceMiles(a, b) < ProximityThresholdMiles
}

// haversine returns the central angle between a and b in radians.
func haversine(a, b models.Coordinate) float64 {
	lat1 := a.Latitude * math.Pi / 180.0
	lat2 := b.Latitude * math.Pi / 180.0
	dLat := lat2 - lat1
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180.0

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	// Rounding can push h a hair above 1 for antipodal points.
	h = math.Min(1, math.Max(0, h))

	return 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
