// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/tomtom215/showfinder/internal/logging"
)

// duckdbVersion must match the duckdb-go-bindings version in go.mod.
const duckdbVersion = "v1.4.3"

// extensionTimeout can be overridden with DUCKDB_EXTENSION_TIMEOUT.
var extensionTimeout = getExtensionTimeout()

func getExtensionTimeout() time.Duration {
	if s := os.Getenv("DUCKDB_EXTENSION_TIMEOUT"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 {
			return d
		}
	}
	return 30 * time.Second
}

// isExtensionInstalledLocally checks
// ~/.duckdb/extensions/{version}/{platform}/{name}.duckdb_extension.
func isExtensionInstalledLocally(name string) bool {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return false
	}
	platform := runtime.GOOS + "_" + runtime.GOARCH
	extPath := filepath.Join(homeDir, ".duckdb", "extensions", duckdbVersion, platform, name+".duckdb_extension")
	_, err = os.Stat(extPath)
	return err == nil
}

// loadSpatial enables ST_Distance_Sphere when the extension is on disk.
// Failure is never fatal: the Haversine SQL path covers the same queries.
func (db *DB) loadSpatial() {
	if !isExtensionInstalledLocally("spatial") {
		logging.Debug().Msg("Spatial extension not installed locally, using SQL Haversine")
		return
	}
	if err := db.execWithHardTimeout("LOAD spatial;"); err != nil {
		logging.Warn().Err(err).Msg("Failed to load spatial extension, using SQL Haversine")
		return
	}
	if _, err := db.queryRowWithHardTimeout("SELECT ST_Distance_Sphere(ST_Point(0, 0), ST_Point(0, 1))"); err != nil {
		logging.Warn().Err(err).Msg("Spatial extension loaded but functions unavailable")
		return
	}
	db.spatialAvailable = true
}

type execResult struct {
	err error
}

type queryResult struct {
	value interface{}
	err   error
}

// execWithHardTimeout runs query with a goroutine-enforced deadline because
// CGO calls ignore context cancellation.
func (db *DB) execWithHardTimeout(query string) error {
	resultCh := make(chan execResult, 1)
	ctx, cancel := context.WithTimeout(context.Background(), extensionTimeout)
	defer cancel()

	go func() {
		_, err := db.conn.ExecContext(ctx, query)
		resultCh <- execResult{err: err}
	}()

	select {
	case result := <-resultCh:
		return result.err
	case <-time.After(extensionTimeout):
		return fmt.Errorf("operation timed out after %v", extensionTimeout)
	}
}

func (db *DB) queryRowWithHardTimeout(query string) (interface{}, error) {
	resultCh := make(chan queryResult, 1)
	ctx, cancel := context.WithTimeout(context.Background(), extensionTimeout)
	defer cancel()

	go func() {
		var result interface{}
		err := db.conn.QueryRowContext(ctx, query).Scan(&result)
		resultCh <- queryResult{value: result, err: err}
	}()

	select {
	case result := <-resultCh:
		return result.value, result.err
	case <-time.After(extensionTimeout):
		return nil, fmt.Errorf("query timed out after %v", extensionTimeout)
	}
}
