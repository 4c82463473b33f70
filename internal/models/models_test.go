// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package models

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCoordinateInRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		c    Coordinate
		want bool
	}{
		{"indianapolis", Coordinate{39.7684, -86.1581}, true},
		{"poles", Coordinate{90, 180}, true},
		{"latitude too large", Coordinate{91, 0}, false},
		{"longitude too small", Coordinate{0, -180.5}, false},
	}
	for _, tt := range tests {
		if got := tt.c.InRange(); got != tt.want {
			t.Errorf("%s: InRange() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDateWindowContains(t *testing.T) {
	t.Parallel()

	w := DateWindow{Start: day(2025, 8, 1), End: day(2025, 8, 31)}

	if !w.Contains(time.Date(2025, 8, 31, 23, 0, 0, 0, time.UTC)) {
		t.Error("last day of window should be contained")
	}
	if w.Contains(day(2025, 9, 1)) {
		t.Error("day after window should not be contained")
	}
	if !(DateWindow{}).Contains(day(1999, 1, 1)) {
		t.Error("open window should contain everything")
	}
}

func TestDateWindowOverlaps(t *testing.T) {
	t.Parallel()

	w := DateWindow{Start: day(2025, 8, 10), End: day(2025, 8, 20)}
	if !w.Overlaps(day(2025, 8, 8), day(2025, 8, 10)) {
		t.Error("multi-day event ending on window start should overlap")
	}
	if w.Overlaps(day(2025, 8, 21), time.Time{}) {
		t.Error("single-day event after window should not overlap")
	}
}

func TestEventFilters(t *testing.T) {
	t.Parallel()

	e := EventRecord{
		Categories: []string{"Coins", "Stamps"},
		Features:   map[string]bool{"parking": true},
	}
	if !e.HasAnyCategory([]string{"stamps"}) {
		t.Error("category match should be case-insensitive")
	}
	if e.HasAnyCategory([]string{"toys"}) {
		t.Error("unexpected category match")
	}
	if !e.HasFeatures(map[string]bool{"parking": true}) {
		t.Error("expected parking feature")
	}
	if e.HasFeatures(map[string]bool{"food": true}) {
		t.Error("missing feature should fail")
	}

	end := day(2025, 8, 3)
	e.StartDate = day(2025, 8, 2)
	e.EndDate = &end
	if !e.LastDay().Equal(end) {
		t.Errorf("LastDay() = %v, want %v", e.LastDay(), end)
	}
}

func TestPartialDate(t *testing.T) {
	t.Parallel()

	p := PartialDate{Month: time.February, Day: 29}
	if p.HasYear() {
		t.Error("year should be unknown")
	}
	if _, ok := p.In(2025); ok {
		t.Error("Feb 29 2025 does not exist")
	}
	if got, ok := p.In(2024); !ok || !got.Equal(day(2024, 2, 29)) {
		t.Errorf("In(2024) = %v, %v", got, ok)
	}
	if s := (PartialDate{Year: 2025, Month: time.August, Day: 2}).String(); s != "2025-08-02" {
		t.Errorf("String() = %q", s)
	}
}
