// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package search

import (
	"errors"
	"fmt"
)

var (
	// ErrSearchUnavailable is returned when no strategy produced an answer.
	ErrSearchUnavailable = errors.New("search unavailable")

	// ErrInvalidQuery is returned for queries rejected before any store call.
	ErrInvalidQuery = errors.New("invalid search query")
)

// StrategyError records a transport-level failure of one strategy.
type StrategyError struct {
	Strategy string
	Err      error
}

func (e *StrategyError) Error() string {
	return fmt.Sprintf("strategy %s: %v", e.Strategy, e.Err)
}

func (e *StrategyError) Unwrap() error {
	return e.Err
}
