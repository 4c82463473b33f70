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
	"time"

	"github.com/tomtom215/showfinder/internal/geocode"
	"github.com/tomtom215/showfinder/internal/metrics"
)

// LookupZip implements geocode.ZipTable. A miss returns (nil, nil).
func (db *DB) LookupZip(ctx context.Context, postalCode string) (*geocode.ZipEntry, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	var (
		e           geocode.ZipEntry
		city, state sql.NullString
	)
	start := time.Now()
	err := db.conn.QueryRowContext(ctx,
		`SELECT postal_code, city, state, latitude, longitude FROM zip_codes WHERE postal_code = ?`,
		postalCode).Scan(&e.PostalCode, &city, &state, &e.Latitude, &e.Longitude)
	if errors.Is(err, sql.ErrNoRows) {
		metrics.RecordDBQuery("lookup", "zip_codes", time.Since(start), nil)
		return nil, nil
	}
	metrics.RecordDBQuery("lookup", "zip_codes", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to look up zip %s: %w", postalCode, err)
	}
	e.City = city.String
	e.State = state.String
	return &e, nil
}

// UpsertZipCode inserts or replaces a ZIP centroid.
func (db *DB) UpsertZipCode(ctx context.Context, e geocode.ZipEntry) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	if _, ok := geocode.ParseZip(e.PostalCode); !ok || len(e.PostalCode) != 5 {
		return fmt.Errorf("invalid postal code %q", e.PostalCode)
	}

	_, err := db.conn.ExecContext(ctx,
		`INSERT OR REPLACE INTO zip_codes (postal_code, city, state, latitude, longitude) VALUES (?, ?, ?, ?, ?)`,
		e.PostalCode, nullString(e.City), nullString(e.State), e.Latitude, e.Longitude)
	if err != nil {
		return fmt.Errorf("failed to upsert zip %s: %w", e.PostalCode, err)
	}
	return nil
}

// SeedZipCodes loads entries without overwriting existing rows. A nil slice
// loads geocode.SeedZipCodes.
func (db *DB) SeedZipCodes(ctx context.Context, entries []geocode.ZipEntry) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	if entries == nil {
		entries = geocode.SeedZipCodes
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO zip_codes (postal_code, city, state, latitude, longitude) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare zip insert: %w", err)
	}
	defer closeWithLog(stmt, "statement")

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.PostalCode, nullString(e.City), nullString(e.State), e.Latitude, e.Longitude); err != nil {
			return fmt.Errorf("failed to seed zip %s: %w", e.PostalCode, err)
		}
	}
	return tx.Commit()
}
