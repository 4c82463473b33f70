// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package series

import (
	"strings"

	"github.com/tomtom215/showfinder/internal/models"
)

// CheckDuplicate compares two listings with the default threshold.
func CheckDuplicate(a, b models.EventRecord) models.DuplicateCheck {
	return defaultDetector.CheckDuplicate(a, b)
}

// CheckDuplicate reports whether a and b look like the same listing entered
// twice.
func (d *Detector) CheckDuplicate(a, b models.EventRecord) models.DuplicateCheck {
	check := models.DuplicateCheck{
		Similarity: JaccardSimilarity(a.Name, b.Name),
		SameDate: !a.StartDate.IsZero() && !b.StartDate.IsZero() &&
			models.CivilDate(a.StartDate).Equal(models.CivilDate(b.StartDate)),
		SameCity: textMatch(a.City, b.City),
	}
	check.LikelyDuplicate = check.Similarity >= d.config.DuplicateSimilarity &&
		(check.SameDate || check.SameCity)
	return check
}

// JaccardSimilarity is |A∩B| / |A∪B| over the lowercased whitespace tokens
// of a and b. Two empty strings score 0.
func JaccardSimilarity(a, b string) float64 {
	ta, tb := tokenSet(a), tokenSet(b)
	if len(ta) == 0 && len(tb) == 0 {
		return 0
	}

	intersection := 0
	for tok := range ta {
		if _, ok := tb[tok]; ok {
			intersection++
		}
	}
	union := len(ta) + len(tb) - intersection
	return float64(intersection) / float64(union)
}

func tokenSet(s string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(s))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
