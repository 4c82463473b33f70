// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package search

import (
	"time"

	"github.com/tomtom215/showfinder/internal/models"
)

// ResolvePartialDate pins a date that may lack a year against a search window.
//
// A date with a year is returned as is. Otherwise the first year, counting
// from the window start, in which the date falls on or after the start is
// used; Feb 29 skips forward to the next leap year. ok is false when the
// date is empty or the window has no start to anchor on.
func ResolvePartialDate(p models.PartialDate, window models.DateWindow) (t time.Time, ok bool) {
	if p.IsZero() {
		return time.Time{}, false
	}
	if p.HasYear() {
		return p.In(p.Year)
	}

	anchor := window.Start
	if anchor.IsZero() {
		anchor = window.End
	}
	if anchor.IsZero() {
		return time.Time{}, false
	}
	start := models.CivilDate(anchor)

	// Eight years always contains a leap year.
	for year := start.Year(); year <= start.Year()+8; year++ {
		t, ok = p.In(year)
		if !ok {
			continue
		}
		if window.Start.IsZero() || !t.Before(start) {
			return t, true
		}
	}
	return time.Time{}, false
}
