// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package search

import (
	"github.com/tomtom215/showfinder/internal/models"
)

// Page slices items for the 1-based page. A page past the end is empty, not
// an error.
func Page(items []models.ResultItem, page, pageSize int) *models.SearchResultPage {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	total := len(items)
	out := &models.SearchResultPage{
		Items:      []models.ResultItem{},
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
	}
	// Compare page indexes before multiplying so huge page numbers cannot
	// overflow the offset.
	if total == 0 || page-1 > (total-1)/pageSize {
		return out
	}
	offset := (page - 1) * pageSize
	end := total
	if total-offset > pageSize {
		end = offset + pageSize
		out.HasMore = true
	}
	out.Items = items[offset:end]
	return out
}
