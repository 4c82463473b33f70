// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package geo

import "github.com/tomtom215/showfinder/internal/models"

// Region is a latitude/longitude bounding box describing where events are
// expected to be.
type Region struct {
	Name   string  `koanf:"name" json:"name"`
	MinLat float64 `koanf:"min_lat" json:"min_lat"`
	MaxLat float64 `koanf:"max_lat" json:"max_lat"`
	MinLng float64 `koanf:"min_lng" json:"min_lng"`
	MaxLng float64 `koanf:"max_lng" json:"max_lng"`
}

// NorthAmerica covers the continental US, Alaska, Canada and Mexico.
var NorthAmerica = Region{
	Name:   "north-america",
	MinLat: 14.0,
	MaxLat: 72.0,
	MinLng: -170.0,
	MaxLng: -50.0,
}

// Contains reports whether c lies inside the box. A zero Region contains
// every point.
func (r Region) Contains(c models.Coordinate) bool {
	if r == (Region{}) {
		return true
	}
	return c.Latitude >= r.MinLat && c.Latitude <= r.MaxLat &&
		c.Longitude >= r.MinLng && c.Longitude <= r.MaxLng
}

// Reasons reported by Check.
const (
	ReasonOutOfRange    = "out_of_range"
	ReasonOutsideRegion = "outside_region"
)

// CoordinateCheck describes why a coordinate looks wrong.
type CoordinateCheck struct {
	Suspicious    bool   `json:"suspicious"`
	Reason        string `json:"reason,omitempty"`
	LikelySwapped bool   `json:"likely_swapped"`
}

// Check flags coordinates that are out of valid range or fall outside the
// expected region. LikelySwapped is set when exchanging latitude and
// longitude would make the point valid and in-region, the most common data
// entry error (e.g. {-87.6, 41.9} for Chicago).
func Check(c models.Coordinate, region Region) CoordinateCheck {
	swapped := models.Coordinate{Latitude: c.Longitude, Longitude: c.Latitude}
	swapPlausible := swapped.InRange() && region.Contains(swapped)

	if !c.InRange() {
		return CoordinateCheck{Suspicious: true, Reason: ReasonOutOfRange, LikelySwapped: swapPlausible}
	}
	if !region.Contains(c) {
		return CoordinateCheck{Suspicious: true, Reason: ReasonOutsideRegion, LikelySwapped: swapPlausible}
	}
	return CoordinateCheck{}
}
