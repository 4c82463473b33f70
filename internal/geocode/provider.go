// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

// Package geocode turns a ZIP code or free-form address into coordinates.
//
// Resolution tries the local ZIP table first and then a single call to the
// upstream geocoder, bounded by a timeout (5 seconds by default). There is
// no retry and no caching. When the upstream call fails the caller gets a
// *ResolutionError, unless the resolver runs in debug mode, in which case a
// clearly labelled fallback coordinate is returned instead.
package geocode

import (
	"context"
	"regexp"

	"github.com/tomtom215/showfinder/internal/models"
)

// Resolution sources.
const (
	SourceZipTable      = "zip-table"
	SourceNominatim     = "nominatim"
	SourceDebugFallback = "debug-fallback"
)

// Resolution is a resolved location.
type Resolution struct {
	Coordinate  models.Coordinate `json:"coordinate"`
	City        string            `json:"city,omitempty"`
	State       string            `json:"state,omitempty"`
	PostalCode  string            `json:"postal_code,omitempty"`
	DisplayName string            `json:"display_name,omitempty"`
	Source      string            `json:"source"`
	Fallback    bool              `json:"fallback"`
}

// Provider is an upstream geocoding service.
type Provider interface {
	// Geocode returns the best candidate for query.
	Geocode(ctx context.Context, query string) (*Resolution, error)

	// Name returns the provider name for logging and metrics.
	Name() string

	// IsAvailable reports whether the provider is configured.
	IsAvailable() bool
}

// ZipEntry is one row of the ZIP code table.
type ZipEntry struct {
	PostalCode string  `json:"postal_code"`
	City       string  `json:"city"`
	State      string  `json:"state"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

// ZipTable looks up ZIP code centroids. A miss returns (nil, nil).
type ZipTable interface {
	LookupZip(ctx context.Context, postalCode string) (*ZipEntry, error)
}

var zipRe = regexp.MustCompile(`^(\d{5})(?:-\d{4})?$`)

// ParseZip returns the five-digit ZIP when input is a US ZIP or ZIP+4.
func ParseZip(input string) (string, bool) {
	m := zipRe.FindStringSubmatch(input)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// StaticZipTable is an in-memory ZipTable.
type StaticZipTable map[string]ZipEntry

// LookupZip implements ZipTable.
func (t StaticZipTable) LookupZip(_ context.Context, postalCode string) (*ZipEntry, error) {
	if e, ok := t[postalCode]; ok {
		return &e, nil
	}
	return nil, nil
}

// NewStaticZipTable indexes entries by postal code.
func NewStaticZipTable(entries []ZipEntry) StaticZipTable {
	t := make(StaticZipTable, len(entries))
	for _, e := range entries {
		t[e.PostalCode] = e
	}
	return t
}

// SeedZipCodes are the ZIP centroids loaded into a fresh database.
var SeedZipCodes = []ZipEntry{
	{PostalCode: "46201", City: "Indianapolis", State: "IN", Latitude: 39.7745, Longitude: -86.1091},
	{PostalCode: "46204", City: "Indianapolis", State: "IN", Latitude: 39.7716, Longitude: -86.1573},
	{PostalCode: "46227", City: "Indianapolis", State: "IN", Latitude: 39.6783, Longitude: -86.1296},
	{PostalCode: "46237", City: "Indianapolis", State: "IN", Latitude: 39.6731, Longitude: -86.0866},
	{PostalCode: "46032", City: "Carmel", State: "IN", Latitude: 39.9784, Longitude: -86.1180},
	{PostalCode: "46038", City: "Fishers", State: "IN", Latitude: 39.9675, Longitude: -86.0145},
	{PostalCode: "46802", City: "Fort Wayne", State: "IN", Latitude: 41.0707, Longitude: -85.1546},
	{PostalCode: "47708", City: "Evansville", State: "IN", Latitude: 37.9747, Longitude: -87.5748},
	{PostalCode: "47401", City: "Bloomington", State: "IN", Latitude: 39.1404, Longitude: -86.5081},
	{PostalCode: "60601", City: "Chicago", State: "IL", Latitude: 41.8858, Longitude: -87.6181},
	{PostalCode: "40202", City: "Louisville", State: "KY", Latitude: 38.2527, Longitude: -85.7515},
	{PostalCode: "45202", City: "Cincinnati", State: "OH", Latitude: 39.1073, Longitude: -84.5020},
	{PostalCode: "43215", City: "Columbus", State: "OH", Latitude: 39.9650, Longitude: -83.0080},
}
