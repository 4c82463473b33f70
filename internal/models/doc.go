// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

/*
Package models defines the data structures shared across Showfinder.

Key types:

  - Coordinate: a validated latitude/longitude pair
  - CoordinateSource: the raw stored location shape (ExplicitCoordinates or NestedPoint)
  - EventRecord: a show as read from the event store or produced by the field parser
  - StoredEvent: an EventRecord plus its raw, not yet normalized, location
  - SearchQuery / SearchResultPage: radius search input and paginated output
  - SeriesCandidatePair / RecurrencePrediction: series matching results

EventRecord values are read-only to the search and series packages. A record
may have no Coordinates until it has been geocoded.
*/
package models
