// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package series

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/tomtom215/showfinder/internal/models"
)

var (
	// ErrMissingDate is returned when a record has no start date.
	ErrMissingDate = errors.New("event has no start date")

	// ErrNotSameSeries is returned by PredictSeries when the pair scores
	// below the threshold.
	ErrNotSameSeries = errors.New("events are not the same series")

	// ErrTooFewEvents is returned when fewer than two dated events are given.
	ErrTooFewEvents = errors.New("at least two dated events are required")
)

// seriesNamespace scopes the name-based UUIDs returned by SeriesID.
var seriesNamespace = uuid.MustParse("6f1c2f0e-4a0b-5e43-9d8e-2b7c1f3a9e51")

// SeriesID derives a stable identifier from the normalized venue, address,
// city and state of an event. Occurrences of one series share the ID as
// long as the listing text is consistent.
func SeriesID(e *models.EventRecord) string {
	key := strings.Join([]string{
		normalizeText(e.VenueName),
		normalizeText(e.Address),
		normalizeText(e.City),
		normalizeText(e.State),
	}, "|")
	return uuid.NewSHA1(seriesNamespace, []byte(key)).String()
}

// PredictNext projects the next occurrence from two dated records: the later
// date plus the gap between them.
func PredictNext(a, b models.EventRecord) (models.RecurrencePrediction, error) {
	if a.StartDate.IsZero() || b.StartDate.IsZero() {
		return models.RecurrencePrediction{}, ErrMissingDate
	}

	first, second := models.CivilDate(a.StartDate), models.CivilDate(b.StartDate)
	base := second
	latest := &b
	if first.After(second) || (first.Equal(second) && sameDayFirst(&a, &b)) {
		base = first
		latest = &a
	}

	interval := daysBetween(first, second)
	if interval < 0 {
		interval = -interval
	}

	return models.RecurrencePrediction{
		SeriesID:          SeriesID(latest),
		BaseDate:          base,
		IntervalDays:      interval,
		PredictedNextDate: base.AddDate(0, 0, interval),
	}, nil
}

// sameDayFirst orders two records with equal dates by ID, then by series ID.
func sameDayFirst(a, b *models.EventRecord) bool {
	if a.ID != b.ID {
		return a.ID < b.ID
	}
	return SeriesID(a) <= SeriesID(b)
}

// PredictSeries compares the pair first and only predicts when it is the
// same series.
func (d *Detector) PredictSeries(a, b models.EventRecord) (models.RecurrencePrediction, models.SeriesCandidatePair, error) {
	pair := d.Compare(a, b)
	if !pair.IsSameSeries {
		return models.RecurrencePrediction{}, pair, fmt.Errorf("%w: confidence %d below %d",
			ErrNotSameSeries, pair.ConfidenceScore, d.config.Threshold)
	}
	pred, err := PredictNext(a, b)
	return pred, pair, err
}

// PredictFromHistory predicts from the two most recent dated occurrences.
func PredictFromHistory(events []models.EventRecord) (models.RecurrencePrediction, error) {
	dated := make([]models.EventRecord, 0, len(events))
	for i := range events {
		if !events[i].StartDate.IsZero() {
			dated = append(dated, events[i])
		}
	}
	if len(dated) < 2 {
		return models.RecurrencePrediction{}, ErrTooFewEvents
	}
	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].StartDate.Before(dated[j].StartDate)
	})
	return PredictNext(dated[len(dated)-2], dated[len(dated)-1])
}

// GroupSeries clusters events by single-link same-series matching: an event
// joins the first group containing any member it matches.
func (d *Detector) GroupSeries(events []models.EventRecord) [][]models.EventRecord {
	var groups [][]models.EventRecord
	for _, e := range events {
		placed := false
		for gi := range groups {
			for _, member := range groups[gi] {
				if d.Compare(e, member).IsSameSeries {
					groups[gi] = append(groups[gi], e)
					placed = true
					break
				}
			}
			if placed {
				break
			}
		}
		if !placed {
			groups = append(groups, []models.EventRecord{e})
		}
	}
	return groups
}
