// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package models

import (
	"strings"
	"time"
)

// Event status values.
const (
	StatusActive    = "active"
	StatusPending   = "pending"
	StatusCancelled = "cancelled"
)

// EventRecord is a single show occurrence.
type EventRecord struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	VenueName   string          `json:"venue_name,omitempty"`
	Address     string          `json:"address,omitempty"`
	City        string          `json:"city,omitempty"`
	State       string          `json:"state,omitempty"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     *time.Time      `json:"end_date,omitempty"`
	Coordinates *Coordinate     `json:"coordinates,omitempty"`
	Hours       string          `json:"hours,omitempty"`
	EntryFee    *float64        `json:"entry_fee,omitempty"`
	Categories  []string        `json:"categories,omitempty"`
	Features    map[string]bool `json:"features,omitempty"`
	SourceURL   string          `json:"source_url,omitempty"`
	Status      string          `json:"status,omitempty"`
}

// LastDay returns EndDate when set, otherwise StartDate.
func (e *EventRecord) LastDay() time.Time {
	if e.EndDate != nil && !e.EndDate.IsZero() {
		return *e.EndDate
	}
	return e.StartDate
}

// HasAnyCategory reports whether the event carries at least one of the
// given categories (case-insensitive). An empty filter matches everything.
func (e *EventRecord) HasAnyCategory(categories []string) bool {
	if len(categories) == 0 {
		return true
	}
	for _, want := range categories {
		for _, have := range e.Categories {
			if strings.EqualFold(strings.TrimSpace(want), strings.TrimSpace(have)) {
				return true
			}
		}
	}
	return false
}

// HasFeatures reports whether every required feature flag is set on the event.
func (e *EventRecord) HasFeatures(required map[string]bool) bool {
	for name, want := range required {
		if want && !e.Features[name] {
			return false
		}
	}
	return true
}

// StoredEvent is an event as returned by the event store, before its
// location has been normalized.
type StoredEvent struct {
	Event    EventRecord
	Location CoordinateSource
}
