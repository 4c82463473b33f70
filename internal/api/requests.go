// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package api

import (
	"github.com/tomtom215/showfinder/internal/geo"
	"github.com/tomtom215/showfinder/internal/geocode"
	"github.com/tomtom215/showfinder/internal/models"
	"github.com/tomtom215/showfinder/internal/parser"
)

// GeocodeRequest is the /geocode query.
type GeocodeRequest struct {
	Query string `json:"q" validate:"required,max=200"`
}

// NearbyRequest is the /shows/nearby query after parameter decoding.
type NearbyRequest struct {
	Location      string   `json:"location" validate:"omitempty,max=200"`
	Latitude      *float64 `json:"lat" validate:"omitempty,latitude"`
	Longitude     *float64 `json:"lng" validate:"omitempty,longitude"`
	RadiusMiles   float64  `json:"radius" validate:"gt=0"`
	Start         string   `json:"start" validate:"omitempty,date_ymd"`
	End           string   `json:"end" validate:"omitempty,date_ymd"`
	Page          int      `json:"page" validate:"min=1,max=10000"`
	PageSize      int      `json:"page_size" validate:"min=1,max=100"`
	MaxEntryFee   *float64 `json:"max_fee" validate:"omitempty,gte=0"`
	Categories    []string `json:"category" validate:"max=20,dive,max=64"`
	Features      []string `json:"feature" validate:"max=20,dive,max=64"`
	AllowDegraded bool     `json:"allow_degraded"`
}

// NearbyResponse is the /shows/nearby payload.
type NearbyResponse struct {
	Origin *geocode.Resolution `json:"origin"`
	Items  []models.ResultItem `json:"items"`
}

// ParseRequest is the /shows/parse body. The optional window resolves a
// year-less listing date.
type ParseRequest struct {
	Text        string `json:"text" validate:"required,max=2000"`
	WindowStart string `json:"window_start,omitempty" validate:"omitempty,date_ymd"`
	WindowEnd   string `json:"window_end,omitempty" validate:"omitempty,date_ymd"`
}

// ParseResponse is the /shows/parse payload.
type ParseResponse struct {
	Parsed   parser.ParsedEvent `json:"parsed"`
	Record   models.EventRecord `json:"record"`
	Resolved bool               `json:"date_resolved"`
}

// NormalizeResponse is the /coordinates/normalize payload.
type NormalizeResponse struct {
	Present    bool                 `json:"present"`
	Coordinate *models.Coordinate   `json:"coordinate,omitempty"`
	Check      *geo.CoordinateCheck `json:"check,omitempty"`
}

// PairRequest carries the two records compared by the series endpoints.
type PairRequest struct {
	A models.EventRecord `json:"a"`
	B models.EventRecord `json:"b"`
}

// PredictRequest is the /series/predict body.
type PredictRequest struct {
	A models.EventRecord `json:"a"`
	B models.EventRecord `json:"b"`

	// RequireSameSeries rejects pairs scoring below the series threshold.
	RequireSameSeries bool `json:"require_same_series"`
}

// PredictResponse is the /series/predict payload.
type PredictResponse struct {
	Prediction models.RecurrencePrediction `json:"prediction"`
	Comparison models.SeriesCandidatePair  `json:"comparison"`
}
