// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package series

import (
	"strings"
	"time"

	"github.com/tomtom215/showfinder/internal/geo"
	"github.com/tomtom215/showfinder/internal/models"
)

// Signal weights. They sum to 100.
const (
	WeightVenue       = 30
	WeightAddress     = 30
	WeightProximity   = 20
	WeightDatePattern = 10
	WeightTimePattern = 10
)

const (
	// SameSeriesThreshold is the minimum confidence for IsSameSeries.
	SameSeriesThreshold = 60

	// MonthlyIntervalMinDays and MonthlyIntervalMaxDays bound the inclusive
	// day gap treated as a monthly cadence.
	MonthlyIntervalMinDays = 28
	MonthlyIntervalMaxDays = 35

	// DuplicateSimilarityThreshold is the minimum name Jaccard similarity
	// for a likely duplicate.
	DuplicateSimilarityThreshold = 0.8
)

// Config tunes the detector.
type Config struct {
	// Threshold is the minimum score for IsSameSeries (default: 60).
	Threshold int `json:"threshold"`

	// ProximityMiles is the distance under which venues count as the same
	// building (default: 0.1).
	ProximityMiles float64 `json:"proximity_miles"`

	// DuplicateSimilarity is the Jaccard threshold for duplicates (default: 0.8).
	DuplicateSimilarity float64 `json:"duplicate_similarity"`
}

// DefaultConfig returns the standard scoring policy.
func DefaultConfig() Config {
	return Config{
		Threshold:           SameSeriesThreshold,
		ProximityMiles:      geo.ProximityThresholdMiles,
		DuplicateSimilarity: DuplicateSimilarityThreshold,
	}
}

// Detector scores candidate pairs. It holds no mutable state.
type Detector struct {
	config Config
}

// NewDetector creates a detector. Zero config fields fall back to defaults.
func NewDetector(cfg Config) *Detector {
	def := DefaultConfig()
	if cfg.Threshold <= 0 {
		cfg.Threshold = def.Threshold
	}
	if cfg.ProximityMiles <= 0 {
		cfg.ProximityMiles = def.ProximityMiles
	}
	if cfg.DuplicateSimilarity <= 0 {
		cfg.DuplicateSimilarity = def.DuplicateSimilarity
	}
	return &Detector{config: cfg}
}

// Config returns the detector configuration.
func (d *Detector) Config() Config {
	return d.config
}

var defaultDetector = NewDetector(DefaultConfig())

// CompareForSeries scores a pair with the default policy.
func CompareForSeries(a, b models.EventRecord) models.SeriesCandidatePair {
	return defaultDetector.Compare(a, b)
}

// Compare scores a and b.
func (d *Detector) Compare(a, b models.EventRecord) models.SeriesCandidatePair {
	pair := models.SeriesCandidatePair{
		A:                a,
		B:                b,
		VenueMatch:       textMatch(a.VenueName, b.VenueName),
		AddressMatch:     textMatch(a.Address, b.Address),
		ProximityMatch:   d.proximityMatch(a.Coordinates, b.Coordinates),
		DatePatternMatch: datePatternMatch(a.StartDate, b.StartDate),
		TimePatternMatch: textMatch(a.Hours, b.Hours),
	}

	score := 0
	if pair.VenueMatch {
		score += WeightVenue
	}
	if pair.AddressMatch {
		score += WeightAddress
	}
	if pair.ProximityMatch {
		score += WeightProximity
	}
	if pair.DatePatternMatch {
		score += WeightDatePattern
	}
	if pair.TimePatternMatch {
		score += WeightTimePattern
	}

	pair.ConfidenceScore = score
	pair.IsSameSeries = score >= d.config.Threshold
	return pair
}

func (d *Detector) proximityMatch(a, b *models.Coordinate) bool {
	if a == nil || b == nil {
		return false
	}
	ca, okA := geo.Normalize(models.ExplicitFrom(*a))
	cb, okB := geo.Normalize(models.ExplicitFrom(*b))
	if !okA || !okB {
		return false
	}
	return geo.DistanceMiles(ca, cb) < d.config.ProximityMiles
}

// datePatternMatch reports a monthly gap or a shared weekday.
func datePatternMatch(a, b time.Time) bool {
	if a.IsZero() || b.IsZero() {
		return false
	}
	gap := daysBetween(a, b)
	if gap < 0 {
		gap = -gap
	}
	if gap >= MonthlyIntervalMinDays && gap <= MonthlyIntervalMaxDays {
		return true
	}
	return models.CivilDate(a).Weekday() == models.CivilDate(b).Weekday()
}

// daysBetween returns the signed calendar-day difference b - a.
func daysBetween(a, b time.Time) int {
	hours := models.CivilDate(b).Sub(models.CivilDate(a)).Hours()
	if hours < 0 {
		return -int(-hours/24 + 0.5)
	}
	return int(hours/24 + 0.5)
}

func textMatch(a, b string) bool {
	na, nb := normalizeText(a), normalizeText(b)
	return na != "" && na == nb
}

// normalizeText trims, lowercases and collapses internal whitespace.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
