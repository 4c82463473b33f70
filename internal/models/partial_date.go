// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package models

import (
	"fmt"
	"time"
)

// PartialDate is a calendar date whose year may be unknown (Year == 0).
// Scraped listings such as "Aug 2nd" routinely omit the year.
type PartialDate struct {
	Year  int        `json:"year,omitempty"`
	Month time.Month `json:"month"`
	Day   int        `json:"day"`
}

// HasYear reports whether the year is known.
func (p PartialDate) HasYear() bool {
	return p.Year > 0
}

// IsZero reports whether no date was captured.
func (p PartialDate) IsZero() bool {
	return p.Month == 0 || p.Day == 0
}

// In returns the date in the given year at midnight UTC. ok is false when
// the month/day pair does not exist in that year (Feb 29 outside a leap year).
func (p PartialDate) In(year int) (t time.Time, ok bool) {
	t = time.Date(year, p.Month, p.Day, 0, 0, 0, 0, time.UTC)
	return t, t.Month() == p.Month && t.Day() == p.Day
}

func (p PartialDate) String() string {
	if p.IsZero() {
		return ""
	}
	if p.HasYear() {
		return fmt.Sprintf("%04d-%02d-%02d", p.Year, int(p.Month), p.Day)
	}
	return fmt.Sprintf("--%02d-%02d", int(p.Month), p.Day)
}
