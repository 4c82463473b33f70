// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package geo

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/tomtom215/showfinder/internal/models"
)

// locationPayload accepts every location shape seen in stored or scraped
// records: explicit fields (with common aliases), a GeoJSON-style
// coordinates array, or either of those under a "location" key.
type locationPayload struct {
	Latitude    *float64         `json:"latitude"`
	Lat         *float64         `json:"lat"`
	Longitude   *float64         `json:"longitude"`
	Lng         *float64         `json:"lng"`
	Lon         *float64         `json:"lon"`
	Coordinates []float64        `json:"coordinates"`
	Location    *locationPayload `json:"location"`
}

// ParseLocationPayload decodes a JSON location into a CoordinateSource.
// It returns (nil, nil) when the document carries no location fields.
func ParseLocationPayload(raw []byte) (models.CoordinateSource, error) {
	var p locationPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode location payload: %w", err)
	}
	return p.source(), nil
}

func (p *locationPayload) source() models.CoordinateSource {
	if p.Coordinates != nil {
		return models.NestedPoint{Coordinates: p.Coordinates}
	}

	lat := firstNonNil(p.Latitude, p.Lat)
	lng := firstNonNil(p.Longitude, p.Lng, p.Lon)
	if lat != nil || lng != nil {
		return models.ExplicitCoordinates{Latitude: lat, Longitude: lng}
	}

	if p.Location != nil {
		return p.Location.source()
	}
	return nil
}

func firstNonNil(values ...*float64) *float64 {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}
