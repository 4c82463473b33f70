// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package search

import (
	"context"
	"fmt"

	"github.com/tomtom215/showfinder/internal/geocode"
	"github.com/tomtom215/showfinder/internal/logging"
	"github.com/tomtom215/showfinder/internal/models"
)

// Resolver turns a ZIP code or address into coordinates.
type Resolver interface {
	Resolve(ctx context.Context, location string) (*geocode.Resolution, error)
}

// NearbyResult is a search page together with the resolved origin.
type NearbyResult struct {
	Origin *geocode.Resolution      `json:"origin"`
	Page   *models.SearchResultPage `json:"page"`
}

// Service combines coordinate resolution with the radius search.
type Service struct {
	resolver     Resolver
	orchestrator *Orchestrator
}

// NewService creates a search service.
func NewService(resolver Resolver, orchestrator *Orchestrator) *Service {
	return &Service{resolver: resolver, orchestrator: orchestrator}
}

// SearchNear resolves location and searches around it. q.Origin is
// overwritten. A resolution failure aborts before any store call.
func (s *Service) SearchNear(ctx context.Context, location string, q models.SearchQuery) (*NearbyResult, error) {
	origin, err := s.resolver.Resolve(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve search origin: %w", err)
	}
	if origin.Fallback {
		logging.Ctx(ctx).Warn().Str("location", location).Str("origin", origin.Coordinate.String()).
			Msg("Searching around debug fallback coordinate")
	}

	q.Origin = origin.Coordinate
	page, err := s.orchestrator.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	return &NearbyResult{Origin: origin, Page: page}, nil
}

// Search runs q around its own origin.
func (s *Service) Search(ctx context.Context, q models.SearchQuery) (*models.SearchResultPage, error) {
	return s.orchestrator.Search(ctx, q)
}

// Resolve exposes the underlying resolver.
func (s *Service) Resolve(ctx context.Context, location string) (*geocode.Resolution, error) {
	return s.resolver.Resolve(ctx, location)
}
