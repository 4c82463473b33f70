// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package models

import "time"

// DateWindow is an inclusive range of civil dates.
type DateWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether the day of t falls inside the window.
// A zero Start or End leaves that side open.
func (w DateWindow) Contains(t time.Time) bool {
	day := CivilDate(t)
	if !w.Start.IsZero() && day.Before(CivilDate(w.Start)) {
		return false
	}
	if !w.End.IsZero() && day.After(CivilDate(w.End)) {
		return false
	}
	return true
}

// Overlaps reports whether [start, end] shares at least one day with the window.
func (w DateWindow) Overlaps(start, end time.Time) bool {
	if end.IsZero() || end.Before(start) {
		end = start
	}
	if !w.End.IsZero() && CivilDate(start).After(CivilDate(w.End)) {
		return false
	}
	if !w.Start.IsZero() && CivilDate(end).Before(CivilDate(w.Start)) {
		return false
	}
	return true
}

// CivilDate truncates t to midnight UTC of its calendar day.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SearchQuery is the input to a radius search.
type SearchQuery struct {
	Origin        Coordinate      `json:"origin"`
	RadiusMiles   float64         `json:"radius_miles" validate:"gt=0"`
	Window        DateWindow      `json:"date_window"`
	MaxEntryFee   *float64        `json:"max_entry_fee,omitempty" validate:"omitempty,gte=0"`
	Categories    []string        `json:"categories,omitempty"`
	Features      map[string]bool `json:"features,omitempty"`
	Page          int             `json:"page" validate:"min=1,max=10000"`
	PageSize      int             `json:"page_size" validate:"min=1,max=100"`
	AllowDegraded bool            `json:"allow_degraded"`
}

// ResultItem is a search hit with its great-circle distance from the query
// origin. DistanceMiles is nil only in degraded results for events with no
// usable coordinates.
type ResultItem struct {
	Event         EventRecord `json:"event"`
	DistanceMiles *float64    `json:"distance_miles,omitempty"`
}

// SearchResultPage is one page of radius search results.
//
// Unless Degraded is set, every item's DistanceMiles is at most the query
// radius.
type SearchResultPage struct {
	Items      []ResultItem `json:"items"`
	TotalCount int          `json:"total_count"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	HasMore    bool         `json:"has_more"`
	Degraded   bool         `json:"degraded"`
	Strategy   string       `json:"strategy"`
}

// FacetFilter holds the optional facet constraints of a query.
type FacetFilter struct {
	MaxEntryFee *float64        `json:"max_entry_fee,omitempty"`
	Categories  []string        `json:"categories,omitempty"`
	Features    map[string]bool `json:"features,omitempty"`
}

// Facets returns the query's facet constraints.
func (q *SearchQuery) Facets() FacetFilter {
	return FacetFilter{MaxEntryFee: q.MaxEntryFee, Categories: q.Categories, Features: q.Features}
}

// IsEmpty reports whether the filter constrains nothing.
func (f FacetFilter) IsEmpty() bool {
	return f.MaxEntryFee == nil && len(f.Categories) == 0 && len(f.Features) == 0
}

// Matches reports whether e satisfies every constraint. An event without a
// listed fee passes a fee ceiling.
func (f FacetFilter) Matches(e *EventRecord) bool {
	if f.MaxEntryFee != nil && e.EntryFee != nil && *e.EntryFee > *f.MaxEntryFee {
		return false
	}
	return e.HasAnyCategory(f.Categories) && e.HasFeatures(f.Features)
}
