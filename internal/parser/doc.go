// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

/*
Package parser turns one-line show listings into structured records.

Listings scraped from club newsletters and flyers look like:

	Aug 2nd – Indianapolis, LaQuinta Inn – 5120 Victory Drive (8-2)

Extraction is ordered and heuristic: the parenthesized hour range, the
month/day token, the street address, the city and state, and a known venue
are removed from the text in that order. The first leftover segment becomes
the show name. Anything that cannot be matched is left empty and listed in
ParsedEvent.Missing; the parser never guesses a value, and in particular it
never invents a year for a date that has none. Year resolution belongs to
the search date window (see search.ResolvePartialDate).
*/
package parser
