// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

/*
Package series decides whether two show records are occurrences of the same
recurring show, flags likely duplicate listings, and projects the next date
of a series.

# Scoring

Each pair is scored out of 100 from five independent signals:

	venue name matches                 30
	street address matches             30
	venues within 0.1 miles            20
	28-35 days apart or same weekday   10
	identical hours                    10

A pair is the same series at 60 points or more. Text signals compare
trimmed, case-folded, whitespace-collapsed values and never match on empty
text. Proximity only counts when both records have coordinates. Every
signal is symmetric, so Compare(a, b) and Compare(b, a) agree.

# Duplicates

CheckDuplicate computes the Jaccard similarity of the lowercased name
tokens. A pair is a likely duplicate when similarity is at least 0.8 and
the two records share a start date or a city.

# Recurrence

PredictNext takes the later of the two dates as the base and adds the
day interval between them. Two records on the same day predict the base
date itself, attributed to the record with the smaller ID.
*/
package series
