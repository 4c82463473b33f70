// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

/*
Package geo holds the pure coordinate helpers used by search and series
matching.

  - Normalize resolves a stored location (explicit fields or a nested
    [longitude, latitude] array) into a models.Coordinate.
  - DistanceMiles computes the Haversine great-circle distance using a mean
    Earth radius of 3,958.8 miles.
  - Check flags coordinates that are out of range or implausible for the
    expected region. Flagged coordinates are reported, never corrected.

Everything in this package is deterministic and safe for concurrent use.
*/
package geo
