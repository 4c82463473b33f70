// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

/*
Package search answers "which shows are within R miles of here during this
date window" against an EventStore.

The Orchestrator walks an ordered chain of strategies, from the most
selective store query to an unfiltered emergency listing:

	primary      radius + date window + status, evaluated by the store
	filtered     primary plus fee/category/feature facets
	radius-only  centre + radius; window and status are applied here
	emergency    every event that has not ended (degraded)

A strategy fails only when it returns an error; an empty result is a valid
answer and ends the walk. Degraded strategies run only when the query sets
AllowDegraded, and their pages carry Degraded=true.

Results from non-degraded strategies are verified client-side regardless of
what the store claims: every stored location is normalized, distances are
recomputed with the Haversine formula and anything outside the radius,
window, status or facets is dropped. The radius guarantee therefore holds
even against a store whose spatial predicate is wrong.

When every strategy fails, Search returns an error matching
ErrSearchUnavailable that also wraps each *StrategyError.
*/
package search
