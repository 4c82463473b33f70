// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/showfinder/internal/logging"
)

// Checkpointer flushes a database write-ahead log. *database.DB satisfies it.
type Checkpointer interface {
	Checkpoint(ctx context.Context) error
}

// maxConsecutiveFailures returns control to the supervisor, which restarts
// the service with backoff.
const maxConsecutiveFailures = 3

// CheckpointService runs a DuckDB CHECKPOINT on a fixed interval.
type CheckpointService struct {
	db       Checkpointer
	interval time.Duration
	name     string
}

// NewCheckpointService creates the service. A non-positive interval means
// five minutes.
func NewCheckpointService(db Checkpointer, interval time.Duration) *CheckpointService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &CheckpointService{db: db, interval: interval, name: "duckdb-checkpoint"}
}

// Serve implements suture.Service.
func (c *CheckpointService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	failures := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := c.db.Checkpoint(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				failures++
				logging.Warn().Err(err).Int("failures", failures).Msg("Periodic checkpoint failed")
				if failures >= maxConsecutiveFailures {
					return fmt.Errorf("checkpoint failed %d times in a row: %w", failures, err)
				}
				continue
			}
			failures = 0
			logging.Debug().Msg("Periodic checkpoint complete")
		}
	}
}

// String names the service in supervisor logs.
func (c *CheckpointService) String() string {
	return c.name
}
