// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package models

import "fmt"

// Coordinate is a WGS84 point in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

// InRange reports whether latitude is within [-90, 90] and longitude within [-180, 180].
func (c Coordinate) InRange() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%.5f,%.5f", c.Latitude, c.Longitude)
}

// CoordinateSource is the location shape as stored for an event. The store
// holds either explicit latitude/longitude fields or a nested point array;
// geo.Normalize resolves both into a Coordinate.
type CoordinateSource interface {
	coordinateSource()
}

// ExplicitCoordinates holds separate latitude and longitude fields, either of
// which may be missing.
type ExplicitCoordinates struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// NestedPoint holds a point array in [longitude, latitude] order.
type NestedPoint struct {
	Coordinates []float64 `json:"coordinates"`
}

func (ExplicitCoordinates) coordinateSource() {}
func (NestedPoint) coordinateSource()         {}

// ExplicitFrom builds an ExplicitCoordinates source from a Coordinate.
func ExplicitFrom(c Coordinate) ExplicitCoordinates {
	lat, lng := c.Latitude, c.Longitude
	return ExplicitCoordinates{Latitude: &lat, Longitude: &lng}
}
