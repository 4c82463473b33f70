// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package search

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/tomtom215/showfinder/internal/geo"
	"github.com/tomtom215/showfinder/internal/logging"
	"github.com/tomtom215/showfinder/internal/metrics"
	"github.com/tomtom215/showfinder/internal/models"
	"github.com/tomtom215/showfinder/internal/validation"
)

// Pagination defaults.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	MaxPage         = 10000
)

// Drop reasons reported to metrics.
const (
	dropNoCoordinates = "no_coordinates"
	dropOutOfRadius   = "out_of_radius"
	dropDate          = "date"
	dropStatus        = "status"
	dropFacet         = "facet"
)

// Orchestrator runs radius searches over an ordered strategy chain.
// It holds no per-request state and is safe for concurrent use.
type Orchestrator struct {
	strategies      []Strategy
	region          geo.Region
	strategyTimeout time.Duration
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithRegion sets the bounding box used to flag suspicious coordinates.
func WithRegion(r geo.Region) Option {
	return func(o *Orchestrator) { o.region = r }
}

// WithStrategyTimeout bounds each strategy's store call. Zero disables it.
func WithStrategyTimeout(d time.Duration) Option {
	return func(o *Orchestrator) { o.strategyTimeout = d }
}

// NewOrchestrator creates an orchestrator that tries strategies in order.
func NewOrchestrator(strategies []Strategy, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		strategies: strategies,
		region:     geo.NorthAmerica,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Strategies returns the names of the configured strategies in order.
func (o *Orchestrator) Strategies() []string {
	names := make([]string, len(o.strategies))
	for i, s := range o.strategies {
		names[i] = s.Name()
	}
	return names
}

// Search runs q through the strategy chain and returns the requested page.
func (o *Orchestrator) Search(ctx context.Context, q models.SearchQuery) (*models.SearchResultPage, error) {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.PageSize == 0 {
		q.PageSize = DefaultPageSize
	}
	if err := validateQuery(&q); err != nil {
		return nil, err
	}

	log := logging.Ctx(ctx)
	var failures []error

	for _, s := range o.strategies {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("search cancelled after %d failed strategies: %w",
				len(failures), errors.Join(append([]error{err}, failures...)...))
		}

		if s.Degraded() && !q.AllowDegraded {
			metrics.RecordStrategyAttempt(s.Name(), "skipped", 0)
			continue
		}

		start := time.Now()
		events, err := o.execute(ctx, s, q)
		elapsed := time.Since(start)
		if err != nil {
			metrics.RecordStrategyAttempt(s.Name(), "failure", elapsed)
			log.Warn().Err(err).Str("strategy", s.Name()).Dur("elapsed", elapsed).
				Msg("Search strategy failed, falling back")
			failures = append(failures, &StrategyError{Strategy: s.Name(), Err: err})
			continue
		}
		metrics.RecordStrategyAttempt(s.Name(), "success", elapsed)

		var items []models.ResultItem
		if s.Degraded() {
			items = o.annotate(events, q)
			metrics.SearchDegradedResponses.Inc()
			log.Warn().Str("strategy", s.Name()).Int("results", len(items)).
				Msg("Serving degraded search results without radius filtering")
		} else {
			items = o.verify(ctx, s.Name(), events, q)
		}
		sortItems(items)

		page := Page(items, q.Page, q.PageSize)
		page.Degraded = s.Degraded()
		page.Strategy = s.Name()

		log.Debug().Str("strategy", s.Name()).Int("candidates", len(events)).
			Int("results", page.TotalCount).Int("failed_strategies", len(failures)).
			Msg("Search completed")
		return page, nil
	}

	metrics.SearchUnavailable.Inc()
	if len(failures) == 0 {
		return nil, fmt.Errorf("%w: no eligible strategy (allow_degraded=%t)", ErrSearchUnavailable, q.AllowDegraded)
	}
	log.Error().Int("failed_strategies", len(failures)).Msg("Every search strategy failed")
	return nil, errors.Join(append([]error{ErrSearchUnavailable}, failures...)...)
}

func (o *Orchestrator) execute(ctx context.Context, s Strategy, q models.SearchQuery) ([]models.StoredEvent, error) {
	if o.strategyTimeout <= 0 {
		return s.Execute(ctx, q)
	}
	sctx, cancel := context.WithTimeout(ctx, o.strategyTimeout)
	defer cancel()
	return s.Execute(sctx, q)
}

// verify re-applies every query predicate to store output.
func (o *Orchestrator) verify(ctx context.Context, strategy string, events []models.StoredEvent, q models.SearchQuery) []models.ResultItem {
	facets := q.Facets()
	dropped := map[string]int{}
	items := make([]models.ResultItem, 0, len(events))

	for i := range events {
		ev := &events[i]
		c, ok := geo.NormalizeEvent(ev)
		if !ok {
			dropped[dropNoCoordinates]++
			continue
		}
		o.flagSuspicious(ctx, ev.Event.ID, c)

		d := geo.DistanceMiles(q.Origin, c)
		switch {
		case d > q.RadiusMiles:
			dropped[dropOutOfRadius]++
			continue
		case !q.Window.Overlaps(ev.Event.StartDate, ev.Event.LastDay()):
			dropped[dropDate]++
			continue
		case !isActive(ev.Event.Status):
			dropped[dropStatus]++
			continue
		case !facets.Matches(&ev.Event):
			dropped[dropFacet]++
			continue
		}

		rec := ev.Event
		rec.Coordinates = &c
		items = append(items, models.ResultItem{Event: rec, DistanceMiles: &d})
	}

	for reason, n := range dropped {
		metrics.RecordDropped(strategy, reason, n)
	}
	if n := dropped[dropOutOfRadius]; n > 0 {
		logging.Ctx(ctx).Debug().Str("strategy", strategy).Int("dropped", n).
			Float64("radius_miles", q.RadiusMiles).Msg("Dropped store results outside radius")
	}
	return items
}

// annotate attaches distances where a location is known and drops nothing.
func (o *Orchestrator) annotate(events []models.StoredEvent, q models.SearchQuery) []models.ResultItem {
	items := make([]models.ResultItem, 0, len(events))
	for i := range events {
		rec := events[i].Event
		item := models.ResultItem{Event: rec}
		if c, ok := geo.NormalizeEvent(&events[i]); ok {
			d := geo.DistanceMiles(q.Origin, c)
			item.Event.Coordinates = &c
			item.DistanceMiles = &d
		}
		items = append(items, item)
	}
	return items
}

func (o *Orchestrator) flagSuspicious(ctx context.Context, id string, c models.Coordinate) {
	check := geo.Check(c, o.region)
	if !check.Suspicious {
		return
	}
	metrics.SearchSuspiciousCoordinates.WithLabelValues(check.Reason).Inc()
	logging.Ctx(ctx).Warn().Str("event_id", id).Str("coordinate", c.String()).
		Str("reason", check.Reason).Bool("likely_swapped", check.LikelySwapped).
		Msg("Suspicious stored coordinate")
}

// isActive treats a missing status as active.
func isActive(status string) bool {
	return status == "" || strings.EqualFold(status, models.StatusActive)
}

// sortItems orders by distance (unknown last), then start date, then ID.
func sortItems(items []models.ResultItem) {
	slices.SortStableFunc(items, func(a, b models.ResultItem) int {
		switch {
		case a.DistanceMiles == nil && b.DistanceMiles != nil:
			return 1
		case a.DistanceMiles != nil && b.DistanceMiles == nil:
			return -1
		case a.DistanceMiles != nil && b.DistanceMiles != nil:
			if c := cmp.Compare(*a.DistanceMiles, *b.DistanceMiles); c != 0 {
				return c
			}
		}
		if c := a.Event.StartDate.Compare(b.Event.StartDate); c != 0 {
			return c
		}
		return cmp.Compare(a.Event.ID, b.Event.ID)
	})
}

func validateQuery(q *models.SearchQuery) error {
	if verr := validation.ValidateStruct(q); verr != nil {
		return fmt.Errorf("%w: %w", ErrInvalidQuery, verr)
	}
	if !q.Window.Start.IsZero() && !q.Window.End.IsZero() && q.Window.End.Before(q.Window.Start) {
		return fmt.Errorf("%w: date window ends before it starts", ErrInvalidQuery)
	}
	return nil
}
