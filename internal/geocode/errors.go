// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package geocode

import (
	"errors"
	"fmt"
)

var (
	// ErrResolutionFailure matches every *ResolutionError via errors.Is.
	ErrResolutionFailure = errors.New("location could not be resolved")

	// ErrNoResults is returned by a provider that answered with no candidates.
	ErrNoResults = errors.New("geocoder returned no results")

	// ErrMalformedResponse is returned when the provider body cannot be used.
	ErrMalformedResponse = errors.New("malformed geocoder response")
)

// Failure reasons carried by ResolutionError.
const (
	ReasonEmpty       = "empty_location"
	ReasonTimeout     = "timeout"
	ReasonUnavailable = "provider_unavailable"
	ReasonRateLimited = "rate_limited"
	ReasonNoResults   = "no_results"
	ReasonUpstream    = "upstream_error"
)

// ResolutionError reports why a location could not be turned into
// coordinates.
type ResolutionError struct {
	Location string
	Reason   string
	Err      error
}

func (e *ResolutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("resolve %q: %s: %v", e.Location, e.Reason, e.Err)
	}
	return fmt.Sprintf("resolve %q: %s", e.Location, e.Reason)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrResolutionFailure) true for every ResolutionError.
func (e *ResolutionError) Is(target error) bool {
	return target == ErrResolutionFailure
}
