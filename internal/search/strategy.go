// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package search

import (
	"context"
	"time"

	"github.com/tomtom215/showfinder/internal/breaker"
	"github.com/tomtom215/showfinder/internal/models"
)

// Strategy names.
const (
	StrategyPrimary    = "primary"
	StrategyFiltered   = "filtered"
	StrategyRadiusOnly = "radius-only"
	StrategyEmergency  = "emergency"
)

// Strategy is one way of asking the store for candidates.
type Strategy interface {
	Name() string

	// Degraded strategies ignore the radius and are only used when the
	// query explicitly allows it.
	Degraded() bool

	Execute(ctx context.Context, q models.SearchQuery) ([]models.StoredEvent, error)
}

type primaryStrategy struct{ store EventStore }

// Primary queries by radius, date window and status.
func Primary(store EventStore) Strategy { return primaryStrategy{store: store} }

func (primaryStrategy) Name() string   { return StrategyPrimary }
func (primaryStrategy) Degraded() bool { return false }

func (s primaryStrategy) Execute(ctx context.Context, q models.SearchQuery) ([]models.StoredEvent, error) {
	return s.store.SearchNearby(ctx, q.Origin, q.RadiusMiles, q.Window)
}

type filteredStrategy struct{ store EventStore }

// Filtered queries by radius, date window, status and facets.
func Filtered(store EventStore) Strategy { return filteredStrategy{store: store} }

func (filteredStrategy) Name() string   { return StrategyFiltered }
func (filteredStrategy) Degraded() bool { return false }

func (s filteredStrategy) Execute(ctx context.Context, q models.SearchQuery) ([]models.StoredEvent, error) {
	return s.store.SearchFiltered(ctx, q.Origin, q.RadiusMiles, q.Window, q.Facets())
}

type radiusOnlyStrategy struct{ store EventStore }

// RadiusOnly queries by centre and radius only.
func RadiusOnly(store EventStore) Strategy { return radiusOnlyStrategy{store: store} }

func (radiusOnlyStrategy) Name() string   { return StrategyRadiusOnly }
func (radiusOnlyStrategy) Degraded() bool { return false }

func (s radiusOnlyStrategy) Execute(ctx context.Context, q models.SearchQuery) ([]models.StoredEvent, error) {
	return s.store.SearchRadiusOnly(ctx, q.Origin, q.RadiusMiles)
}

type emergencyStrategy struct {
	store EventStore
	now   func() time.Time
}

// Emergency lists every event that has not yet ended, ignoring location.
func Emergency(store EventStore, now func() time.Time) Strategy {
	if now == nil {
		now = time.Now
	}
	return emergencyStrategy{store: store, now: now}
}

func (emergencyStrategy) Name() string   { return StrategyEmergency }
func (emergencyStrategy) Degraded() bool { return true }

func (s emergencyStrategy) Execute(ctx context.Context, _ models.SearchQuery) ([]models.StoredEvent, error) {
	return s.store.SearchAllUpcoming(ctx, models.CivilDate(s.now()))
}

// DefaultChain returns the four built-in strategies in fallback order.
func DefaultChain(store EventStore) []Strategy {
	return []Strategy{
		Primary(store),
		Filtered(store),
		RadiusOnly(store),
		Emergency(store, time.Now),
	}
}

type breakerStrategy struct {
	Strategy
	cb *breaker.Breaker[[]models.StoredEvent]
}

// WithCircuitBreaker wraps s so that repeated failures open a breaker and
// later calls fail fast, moving the orchestrator straight to the next
// strategy.
func WithCircuitBreaker(s Strategy, settings breaker.Settings) Strategy {
	return &breakerStrategy{
		Strategy: s,
		cb:       breaker.New[[]models.StoredEvent]("search-"+s.Name(), settings),
	}
}

func (b *breakerStrategy) Execute(ctx context.Context, q models.SearchQuery) ([]models.StoredEvent, error) {
	return b.cb.Execute(func() ([]models.StoredEvent, error) {
		return b.Strategy.Execute(ctx, q)
	})
}
