// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package models

import "time"

// SeriesCandidatePair is the scored comparison of two events.
type SeriesCandidatePair struct {
	A                EventRecord `json:"a"`
	B                EventRecord `json:"b"`
	VenueMatch       bool        `json:"venue_match"`
	AddressMatch     bool        `json:"address_match"`
	ProximityMatch   bool        `json:"proximity_match"`
	DatePatternMatch bool        `json:"date_pattern_match"`
	TimePatternMatch bool        `json:"time_pattern_match"`
	ConfidenceScore  int         `json:"confidence_score"`
	IsSameSeries     bool        `json:"is_same_series"`
}

// RecurrencePrediction is the projected next date of a series.
type RecurrencePrediction struct {
	SeriesID          string    `json:"series_id,omitempty"`
	BaseDate          time.Time `json:"base_date"`
	IntervalDays      int       `json:"interval_days"`
	PredictedNextDate time.Time `json:"predicted_next_date"`
}

// DuplicateCheck is the result of comparing two event names for duplication.
type DuplicateCheck struct {
	Similarity      float64 `json:"similarity"`
	SameDate        bool    `json:"same_date"`
	SameCity        bool    `json:"same_city"`
	LikelyDuplicate bool    `json:"likely_duplicate"`
}
