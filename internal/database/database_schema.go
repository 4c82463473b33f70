// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package database

import (
	"context"
	"fmt"
	"time"
)

// createTables creates the schema. Only core DuckDB types are used so the
// database opens without any extension.
func (db *DB) createTables() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	queries := []string{
		`CREATE TABLE IF NOT EXISTS shows (
			id VARCHAR PRIMARY KEY,
			name VARCHAR NOT NULL,
			venue_name VARCHAR,
			address VARCHAR,
			city VARCHAR,
			state VARCHAR,
			start_date DATE NOT NULL,
			end_date DATE,
			latitude DOUBLE,
			longitude DOUBLE,
			location DOUBLE[],
			hours VARCHAR,
			entry_fee DOUBLE,
			categories VARCHAR[],
			category_keys VARCHAR[],
			features VARCHAR[],
			source_url VARCHAR,
			status VARCHAR DEFAULT 'active'
		)`,
		`CREATE TABLE IF NOT EXISTS zip_codes (
			postal_code VARCHAR PRIMARY KEY,
			city VARCHAR,
			state VARCHAR,
			latitude DOUBLE NOT NULL,
			longitude DOUBLE NOT NULL
		)`,
	}

	for _, query := range queries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

func (db *DB) createIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_shows_start_date ON shows(start_date)`,
		`CREATE INDEX IF NOT EXISTS idx_shows_lat_lng ON shows(latitude, longitude)`,
		`CREATE INDEX IF NOT EXISTS idx_shows_city_state ON shows(city, state)`,
	}

	for _, query := range indexes {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}
