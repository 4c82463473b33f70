// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/showfinder/internal/logging"
	"github.com/tomtom215/showfinder/internal/models"
)

// seedNamespace makes mock show IDs stable so reseeding replaces rows.
var seedNamespace = uuid.MustParse("6f1c8a52-3b7e-4a8e-9d35-1c2f0b7e9a41")

type mockSeries struct {
	name     string
	venue    string
	address  string
	city     string
	state    string
	lat, lng float64
	nested   bool
	hours    string
	fee      float64
	weekday  time.Weekday
	week     int
	category []string
	features map[string]bool
}

var mockSeriesList = []mockSeries{
	{
		name: "Indy Record & CD Show", venue: "LaQuinta Inn", address: "5120 Victory Drive",
		city: "Indianapolis", state: "IN", lat: 39.6783, lng: -86.1296,
		hours: "8am-2pm", fee: 3, weekday: time.Sunday, week: 2,
		category: []string{"Records", "CDs"}, features: map[string]bool{"parking": true},
	},
	{
		name: "Fort Wayne Comic & Toy Expo", venue: "Allen County War Memorial Coliseum",
		address: "4000 Parnell Ave", city: "Fort Wayne", state: "IN", lat: 41.1050, lng: -85.1313,
		hours: "10am-4pm", fee: 5, weekday: time.Saturday, week: 1,
		category: []string{"Comics", "Toys"}, features: map[string]bool{"parking": true, "food": true},
	},
	{
		name: "Bloomington Vinyl Swap", venue: "Monroe County Fairgrounds",
		address: "5700 W Airport Rd", city: "Bloomington", state: "IN", lat: 39.1370, lng: -86.6105,
		nested: true, hours: "9am-3pm", weekday: time.Sunday, week: 3,
		category: []string{"Records"},
	},
	{
		name: "Chicago Record Riot", venue: "Plumbers Hall", address: "1340 W Washington Blvd",
		city: "Chicago", state: "IL", lat: 41.8830, lng: -87.6612,
		hours: "10am-5pm", fee: 7, weekday: time.Saturday, week: 4,
		category: []string{"Records", "Memorabilia"}, features: map[string]bool{"food": true},
	},
}

// SeedMockData inserts six months of monthly shows for each mock series,
// starting from the month of now. Intended for demos and local development.
func (db *DB) SeedMockData(ctx context.Context, now time.Time) error {
	logging.Info().Msg("Seeding database with mock shows...")

	inserted := 0
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for _, s := range mockSeriesList {
		for m := 0; m < 6; m++ {
			day := nthWeekday(first.AddDate(0, m, 0), s.weekday, s.week)
			se := s.occurrence(day)
			if err := db.InsertShow(ctx, &se); err != nil {
				return fmt.Errorf("failed to seed %s: %w", s.name, err)
			}
			inserted++
		}
	}

	logging.Info().Int("shows", inserted).Msg("Mock data seeded")
	return nil
}

func (s *mockSeries) occurrence(day time.Time) models.StoredEvent {
	e := models.EventRecord{
		ID:         uuid.NewSHA1(seedNamespace, []byte(s.name+day.Format(dateLayout))).String(),
		Name:       s.name,
		VenueName:  s.venue,
		Address:    s.address,
		City:       s.city,
		State:      s.state,
		StartDate:  day,
		Hours:      s.hours,
		Categories: s.category,
		Features:   s.features,
		Status:     models.StatusActive,
	}
	if s.fee > 0 {
		fee := s.fee
		e.EntryFee = &fee
	}

	se := models.StoredEvent{Event: e}
	if s.nested {
		se.Location = models.NestedPoint{Coordinates: []float64{s.lng, s.lat}}
	} else {
		se.Location = models.ExplicitFrom(models.Coordinate{Latitude: s.lat, Longitude: s.lng})
	}
	return se
}

// nthWeekday returns the n-th (1-based) weekday of month's month.
func nthWeekday(month time.Time, wd time.Weekday, n int) time.Time {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	offset := (int(wd) - int(first.Weekday()) + 7) % 7
	return first.AddDate(0, 0, offset+7*(n-1))
}
