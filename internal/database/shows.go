// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/showfinder/internal/metrics"
	"github.com/tomtom215/showfinder/internal/models"
)

// ErrShowNotFound is returned by GetShow for an unknown ID.
var ErrShowNotFound = errors.New("show not found")

const dateLayout = "2006-01-02"

// showColumns is the projection shared by every show query.
const showColumns = `id, name, venue_name, address, city, state, start_date, end_date,
	latitude, longitude, location, hours, entry_fee, categories, features, source_url, status`

// InsertShow inserts or replaces a show. An empty ID is filled with a new UUID
// and written back to the record.
//
// A models.NestedPoint location is stored in the location column; any other
// source is stored in latitude/longitude.
func (db *DB) InsertShow(ctx context.Context, se *models.StoredEvent) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	if se == nil {
		return fmt.Errorf("show is nil")
	}
	e := &se.Event
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("show %s: name is required", e.ID)
	}
	if e.StartDate.IsZero() {
		return fmt.Errorf("show %s: start date is required", e.ID)
	}

	args := []interface{}{
		e.ID, e.Name, nullString(e.VenueName), nullString(e.Address), nullString(e.City), nullString(e.State),
		e.StartDate.Format(dateLayout), nullDate(e.EndDate),
	}

	var lat, lng interface{}
	locationExpr := "NULL"
	switch loc := se.Location.(type) {
	case models.NestedPoint:
		expr, locArgs := listLiteral("DOUBLE", floatsToAny(loc.Coordinates))
		locationExpr = expr
		args = append(args, nil, nil)
		args = append(args, locArgs...)
	case models.ExplicitCoordinates:
		lat, lng = derefFloat(loc.Latitude), derefFloat(loc.Longitude)
		args = append(args, lat, lng)
	default:
		if e.Coordinates != nil {
			lat, lng = e.Coordinates.Latitude, e.Coordinates.Longitude
		}
		args = append(args, lat, lng)
	}

	args = append(args, nullString(e.Hours), derefFloat(e.EntryFee))

	categoriesExpr, categoryArgs := listLiteral("VARCHAR", stringsToAny(e.Categories))
	args = append(args, categoryArgs...)
	keysExpr, keyArgs := listLiteral("VARCHAR", stringsToAny(categoryKeys(e.Categories)))
	args = append(args, keyArgs...)
	featuresExpr, featureArgs := listLiteral("VARCHAR", stringsToAny(enabledFeatures(e.Features)))
	args = append(args, featureArgs...)

	status := e.Status
	if status == "" {
		status = models.StatusActive
	}
	args = append(args, nullString(e.SourceURL), status)

	query := fmt.Sprintf(`INSERT OR REPLACE INTO shows (
			id, name, venue_name, address, city, state, start_date, end_date,
			latitude, longitude, location, hours, entry_fee,
			categories, category_keys, features, source_url, status
		) VALUES (?, ?, ?, ?, ?, ?, CAST(? AS DATE), CAST(? AS DATE), ?, ?, %s, ?, ?, %s, %s, %s, ?, ?)`,
		locationExpr, categoriesExpr, keysExpr, featuresExpr)

	start := time.Now()
	_, err := db.conn.ExecContext(ctx, query, args...)
	metrics.RecordDBQuery("insert", "shows", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to insert show %s: %w", e.ID, err)
	}
	return nil
}

// GetShow returns a show by ID.
func (db *DB) GetShow(ctx context.Context, id string) (*models.StoredEvent, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := queryAndScan(ctx, db.conn, "SELECT "+showColumns+" FROM shows WHERE id = ?", []interface{}{id}, scanShow)
	metrics.RecordDBQuery("select", "shows", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to get show %s: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, ErrShowNotFound
	}
	return &rows[0], nil
}

// CountShows returns the number of stored shows.
func (db *DB) CountShows(ctx context.Context) (int, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	var n int
	if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM shows").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count shows: %w", err)
	}
	return n, nil
}

func scanShow(rows *sql.Rows) (models.StoredEvent, error) {
	var (
		se                                      models.StoredEvent
		venue, address, city, state, hours, src sql.NullString
		status                                  sql.NullString
		endDate                                 sql.NullTime
		lat, lng, fee                           sql.NullFloat64
		location, categories, features          interface{}
	)
	e := &se.Event
	err := rows.Scan(&e.ID, &e.Name, &venue, &address, &city, &state, &e.StartDate, &endDate,
		&lat, &lng, &location, &hours, &fee, &categories, &features, &src, &status)
	if err != nil {
		return se, fmt.Errorf("failed to scan show: %w", err)
	}

	e.VenueName = venue.String
	e.Address = address.String
	e.City = city.String
	e.State = state.String
	e.Hours = hours.String
	e.SourceURL = src.String
	e.Status = status.String
	e.StartDate = models.CivilDate(e.StartDate)
	if endDate.Valid {
		d := models.CivilDate(endDate.Time)
		e.EndDate = &d
	}
	if fee.Valid {
		f := fee.Float64
		e.EntryFee = &f
	}
	e.Categories = toStrings(categories)
	if names := toStrings(features); len(names) > 0 {
		e.Features = make(map[string]bool, len(names))
		for _, name := range names {
			e.Features[name] = true
		}
	}

	// A half-filled explicit pair yields to the nested location.
	switch {
	case lat.Valid && lng.Valid:
		se.Location = models.ExplicitFrom(models.Coordinate{Latitude: lat.Float64, Longitude: lng.Float64})
	case location != nil:
		se.Location = models.NestedPoint{Coordinates: toFloats(location)}
	default:
		var explicit models.ExplicitCoordinates
		if lat.Valid {
			v := lat.Float64
			explicit.Latitude = &v
		}
		if lng.Valid {
			v := lng.Float64
			explicit.Longitude = &v
		}
		se.Location = explicit
	}
	return se, nil
}

// listLiteral renders a DuckDB list literal with one placeholder per value.
func listLiteral(elemType string, values []interface{}) (string, []interface{}) {
	if len(values) == 0 {
		return "[]::" + elemType + "[]", nil
	}
	placeholders := make([]string, len(values))
	for i := range values {
		placeholders[i] = "?"
	}
	return "[" + strings.Join(placeholders, ", ") + "]::" + elemType + "[]", values
}

// categoryKeys are the case-folded categories used for facet matching.
func categoryKeys(categories []string) []string {
	keys := make([]string, 0, len(categories))
	for _, c := range categories {
		if k := strings.ToLower(strings.TrimSpace(c)); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

func enabledFeatures(features map[string]bool) []string {
	names := make([]string, 0, len(features))
	for name, on := range features {
		if on {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullDate(t *time.Time) interface{} {
	if t == nil || t.IsZero() {
		return nil
	}
	return t.Format(dateLayout)
}

func derefFloat(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}

func stringsToAny(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func floatsToAny(values []float64) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// toStrings converts a scanned LIST value.
func toStrings(v interface{}) []string {
	list, ok := v.([]interface{})
	if !ok || len(list) == 0 {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// toFloats converts a scanned DOUBLE[]. NULL elements become NaN so the
// normalizer rejects them instead of reading a zero.
func toFloats(v interface{}) []float64 {
	list, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]float64, len(list))
	for i, item := range list {
		switch f := item.(type) {
		case float64:
			out[i] = f
		case float32:
			out[i] = float64(f)
		default:
			out[i] = math.NaN()
		}
	}
	return out
}
