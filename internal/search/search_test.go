// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package search

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/showfinder/internal/breaker"
	"github.com/tomtom215/showfinder/internal/geocode"
	"github.com/tomtom215/showfinder/internal/metrics"
	"github.com/tomtom215/showfinder/internal/models"
)

var (
	indianapolis = models.Coordinate{Latitude: 39.7684, Longitude: -86.1581}
	greenwood    = models.Coordinate{Latitude: 39.6137, Longitude: -86.1067}
	carmel       = models.Coordinate{Latitude: 39.9784, Longitude: -86.1180}
	bloomington  = models.Coordinate{Latitude: 39.1653, Longitude: -86.5264}
	chicago      = models.Coordinate{Latitude: 41.8781, Longitude: -87.6298}

	august = models.DateWindow{
		Start: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC),
	}
	errStoreDown = errors.New("connection refused")
)

func day(m time.Month, d int) time.Time {
	return time.Date(2025, m, d, 0, 0, 0, 0, time.UTC)
}

func show(id string, c models.Coordinate, start time.Time) models.StoredEvent {
	return models.StoredEvent{
		Event:    models.EventRecord{ID: id, Name: "Show " + id, StartDate: start, Status: models.StatusActive},
		Location: models.ExplicitFrom(c),
	}
}

// fakeStore returns canned results per method and counts calls.
type fakeStore struct {
	mu     sync.Mutex
	events []models.StoredEvent
	errs   map[string]error
	calls  map[string]int
}

func newFakeStore(events ...models.StoredEvent) *fakeStore {
	return &fakeStore{events: events, errs: map[string]error{}, calls: map[string]int{}}
}

func (f *fakeStore) record(method string) ([]models.StoredEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[method]++
	if err := f.errs[method]; err != nil {
		return nil, err
	}
	out := make([]models.StoredEvent, len(f.events))
	copy(out, f.events)
	return out, nil
}

func (f *fakeStore) callCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *fakeStore) SearchNearby(_ context.Context, _ models.Coordinate, _ float64, _ models.DateWindow) ([]models.StoredEvent, error) {
	return f.record(StrategyPrimary)
}

func (f *fakeStore) SearchFiltered(_ context.Context, _ models.Coordinate, _ float64, _ models.DateWindow, _ models.FacetFilter) ([]models.StoredEvent, error) {
	return f.record(StrategyFiltered)
}

func (f *fakeStore) SearchRadiusOnly(_ context.Context, _ models.Coordinate, _ float64) ([]models.StoredEvent, error) {
	return f.record(StrategyRadiusOnly)
}

func (f *fakeStore) SearchAllUpcoming(_ context.Context, _ time.Time) ([]models.StoredEvent, error) {
	return f.record(StrategyEmergency)
}

func baseQuery() models.SearchQuery {
	return models.SearchQuery{
		Origin:      indianapolis,
		RadiusMiles: 50,
		Window:      august,
		Page:        1,
		PageSize:    20,
	}
}

func ids(page *models.SearchResultPage) []string {
	out := make([]string, len(page.Items))
	for i, it := range page.Items {
		out[i] = it.Event.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSearch_PrimaryVerifiesRadius(t *testing.T) {
	store := newFakeStore(
		show("chi", chicago, day(8, 2)),
		show("carmel", carmel, day(8, 2)),
		show("greenwood", greenwood, day(8, 9)),
		show("btown", bloomington, day(8, 16)),
	)
	o := NewOrchestrator(DefaultChain(store))

	before := testutil.ToFloat64(metrics.SearchResultsDropped.WithLabelValues(StrategyPrimary, "out_of_radius"))
	page, err := o.Search(context.Background(), baseQuery())
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if page.Strategy != StrategyPrimary || page.Degraded {
		t.Errorf("Strategy = %q, Degraded = %v", page.Strategy, page.Degraded)
	}
	want := []string{"greenwood", "carmel", "btown"}
	if got := ids(page); !equalIDs(got, want) {
		t.Errorf("ids = %v, want %v", got, want)
	}
	for _, it := range page.Items {
		if it.DistanceMiles == nil || *it.DistanceMiles > 50 {
			t.Errorf("%s distance = %v, want <= 50", it.Event.ID, it.DistanceMiles)
		}
		if it.Event.Coordinates == nil {
			t.Errorf("%s missing normalized coordinates", it.Event.ID)
		}
	}
	after := testutil.ToFloat64(metrics.SearchResultsDropped.WithLabelValues(StrategyPrimary, "out_of_radius"))
	if after-before != 1 {
		t.Errorf("out_of_radius drops = %v, want 1", after-before)
	}
	if store.callCount(StrategyFiltered) != 0 {
		t.Error("fallback ran after primary succeeded")
	}
}

func TestSearch_EmptyResultIsTerminal(t *testing.T) {
	store := newFakeStore()
	o := NewOrchestrator(DefaultChain(store))

	q := baseQuery()
	q.AllowDegraded = true
	page, err := o.Search(context.Background(), q)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if page.TotalCount != 0 || page.Strategy != StrategyPrimary {
		t.Errorf("TotalCount = %d, Strategy = %q", page.TotalCount, page.Strategy)
	}
	if page.Items == nil {
		t.Error("Items should be an empty slice, not nil")
	}
	for _, m := range []string{StrategyFiltered, StrategyRadiusOnly, StrategyEmergency} {
		if store.callCount(m) != 0 {
			t.Errorf("%s called after empty primary result", m)
		}
	}
}

func TestSearch_FallsBackOnError(t *testing.T) {
	store := newFakeStore(show("carmel", carmel, day(8, 2)))
	store.errs[StrategyPrimary] = errStoreDown
	o := NewOrchestrator(DefaultChain(store))

	page, err := o.Search(context.Background(), baseQuery())
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if page.Strategy != StrategyFiltered {
		t.Errorf("Strategy = %q, want %q", page.Strategy, StrategyFiltered)
	}
	if page.TotalCount != 1 {
		t.Errorf("TotalCount = %d, want 1", page.TotalCount)
	}
}

func TestSearch_RadiusOnlyAppliesWindowAndStatus(t *testing.T) {
	cancelled := show("cancelled", carmel, day(8, 2))
	cancelled.Event.Status = models.StatusCancelled
	noStatus := show("nostatus", greenwood, day(8, 3))
	noStatus.Event.Status = ""
	endsInWindow := show("multiday", carmel, day(7, 30))
	end := day(8, 1)
	endsInWindow.Event.EndDate = &end

	store := newFakeStore(
		show("july", carmel, day(7, 5)),
		show("sept", carmel, day(9, 6)),
		cancelled,
		noStatus,
		endsInWindow,
	)
	store.errs[StrategyPrimary] = errStoreDown
	store.errs[StrategyFiltered] = errStoreDown
	o := NewOrchestrator(DefaultChain(store))

	page, err := o.Search(context.Background(), baseQuery())
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if page.Strategy != StrategyRadiusOnly {
		t.Errorf("Strategy = %q", page.Strategy)
	}
	want := []string{"nostatus", "multiday"}
	if got := ids(page); !equalIDs(got, want) {
		t.Errorf("ids = %v, want %v", got, want)
	}
}

func TestSearch_FacetsAppliedClientSide(t *testing.T) {
	cheap := show("cheap", carmel, day(8, 2))
	fee := 5.0
	cheap.Event.EntryFee = &fee
	cheap.Event.Categories = []string{"Sports Cards"}

	pricey := show("pricey", greenwood, day(8, 2))
	high := 20.0
	pricey.Event.EntryFee = &high
	pricey.Event.Categories = []string{"sports cards"}

	free := show("unlisted", bloomington, day(8, 2))
	free.Event.Categories = []string{"comics"}

	store := newFakeStore(cheap, pricey, free)
	o := NewOrchestrator(DefaultChain(store))

	q := baseQuery()
	maxFee := 10.0
	q.MaxEntryFee = &maxFee
	q.Categories = []string{"sports cards"}

	page, err := o.Search(context.Background(), q)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if got := ids(page); !equalIDs(got, []string{"cheap"}) {
		t.Errorf("ids = %v, want [cheap]", got)
	}
}

func TestSearch_NormalizesStoredShapes(t *testing.T) {
	nested := models.StoredEvent{
		Event:    models.EventRecord{ID: "nested", StartDate: day(8, 2)},
		Location: models.NestedPoint{Coordinates: []float64{carmel.Longitude, carmel.Latitude}},
	}
	sentinel := models.StoredEvent{
		Event:    models.EventRecord{ID: "zero", StartDate: day(8, 2)},
		Location: models.ExplicitFrom(models.Coordinate{}),
	}
	malformed := models.StoredEvent{
		Event:    models.EventRecord{ID: "short", StartDate: day(8, 2)},
		Location: models.NestedPoint{Coordinates: []float64{-86.1}},
	}
	recordOnly := models.StoredEvent{
		Event: models.EventRecord{ID: "record", StartDate: day(8, 3), Coordinates: &greenwood},
	}

	store := newFakeStore(nested, sentinel, malformed, recordOnly)
	o := NewOrchestrator(DefaultChain(store))

	page, err := o.Search(context.Background(), baseQuery())
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if got := ids(page); !equalIDs(got, []string{"record", "nested"}) {
		t.Errorf("ids = %v, want [record nested]", got)
	}
	if c := page.Items[1].Event.Coordinates; c == nil || *c != carmel {
		t.Errorf("nested point normalized to %v, want %v", c, carmel)
	}
}

func TestSearch_AllFailWithoutDegraded(t *testing.T) {
	store := newFakeStore(show("carmel", carmel, day(8, 2)))
	for _, m := range []string{StrategyPrimary, StrategyFiltered, StrategyRadiusOnly} {
		store.errs[m] = fmt.Errorf("%s: %w", m, errStoreDown)
	}
	o := NewOrchestrator(DefaultChain(store))

	_, err := o.Search(context.Background(), baseQuery())
	if !errors.Is(err, ErrSearchUnavailable) {
		t.Fatalf("error = %v, want ErrSearchUnavailable", err)
	}
	if !errors.Is(err, errStoreDown) {
		t.Error("strategy errors should be wrapped")
	}
	var serr *StrategyError
	if !errors.As(err, &serr) || serr.Strategy != StrategyPrimary {
		t.Errorf("first StrategyError = %v", serr)
	}
	if store.callCount(StrategyEmergency) != 0 {
		t.Error("emergency strategy ran without AllowDegraded")
	}
}

func TestSearch_DegradedEmergency(t *testing.T) {
	unknown := models.StoredEvent{
		Event: models.EventRecord{ID: "unknown", StartDate: day(8, 2)},
	}
	store := newFakeStore(
		show("chi", chicago, day(8, 2)),
		unknown,
		show("carmel", carmel, day(8, 2)),
	)
	for _, m := range []string{StrategyPrimary, StrategyFiltered, StrategyRadiusOnly} {
		store.errs[m] = errStoreDown
	}
	o := NewOrchestrator(DefaultChain(store))

	q := baseQuery()
	q.AllowDegraded = true
	before := testutil.ToFloat64(metrics.SearchDegradedResponses)
	page, err := o.Search(context.Background(), q)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if !page.Degraded || page.Strategy != StrategyEmergency {
		t.Errorf("Degraded = %v, Strategy = %q", page.Degraded, page.Strategy)
	}
	want := []string{"carmel", "chi", "unknown"}
	if got := ids(page); !equalIDs(got, want) {
		t.Errorf("ids = %v, want %v", got, want)
	}
	if page.Items[2].DistanceMiles != nil {
		t.Error("event without coordinates should have no distance")
	}
	if testutil.ToFloat64(metrics.SearchDegradedResponses)-before != 1 {
		t.Error("degraded response not counted")
	}
}

func TestSearch_NoEligibleStrategy(t *testing.T) {
	store := newFakeStore()
	o := NewOrchestrator([]Strategy{Emergency(store, nil)})

	_, err := o.Search(context.Background(), baseQuery())
	if !errors.Is(err, ErrSearchUnavailable) {
		t.Fatalf("error = %v, want ErrSearchUnavailable", err)
	}
}

func TestSearch_InvalidQuery(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.SearchQuery)
	}{
		{"zero radius", func(q *models.SearchQuery) { q.RadiusMiles = 0 }},
		{"negative radius", func(q *models.SearchQuery) { q.RadiusMiles = -5 }},
		{"latitude out of range", func(q *models.SearchQuery) { q.Origin.Latitude = 95 }},
		{"page size too large", func(q *models.SearchQuery) { q.PageSize = MaxPageSize + 1 }},
		{"page number too large", func(q *models.SearchQuery) { q.Page = MaxPage + 1 }},
		{"negative fee", func(q *models.SearchQuery) { fee := -1.0; q.MaxEntryFee = &fee }},
		{"inverted window", func(q *models.SearchQuery) { q.Window.Start, q.Window.End = q.Window.End, q.Window.Start }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			o := NewOrchestrator(DefaultChain(store))
			q := baseQuery()
			tt.mutate(&q)

			_, err := o.Search(context.Background(), q)
			if !errors.Is(err, ErrInvalidQuery) {
				t.Fatalf("error = %v, want ErrInvalidQuery", err)
			}
			if store.callCount(StrategyPrimary) != 0 {
				t.Error("store called for invalid query")
			}
		})
	}
}

func TestSearch_DefaultsPagination(t *testing.T) {
	o := NewOrchestrator(DefaultChain(newFakeStore()))
	q := baseQuery()
	q.Page, q.PageSize = 0, 0

	page, err := o.Search(context.Background(), q)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if page.Page != 1 || page.PageSize != DefaultPageSize {
		t.Errorf("Page = %d, PageSize = %d", page.Page, page.PageSize)
	}
}

func TestSearch_CancelledContextStopsChain(t *testing.T) {
	store := newFakeStore()
	o := NewOrchestrator(DefaultChain(store))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := o.Search(ctx, baseQuery())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if store.callCount(StrategyPrimary) != 0 {
		t.Error("store called with cancelled context")
	}
}

// slowStrategy blocks until its context ends.
type slowStrategy struct{}

func (slowStrategy) Name() string   { return "slow" }
func (slowStrategy) Degraded() bool { return false }
func (slowStrategy) Execute(ctx context.Context, _ models.SearchQuery) ([]models.StoredEvent, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestSearch_StrategyTimeout(t *testing.T) {
	store := newFakeStore(show("carmel", carmel, day(8, 2)))
	o := NewOrchestrator([]Strategy{slowStrategy{}, Primary(store)}, WithStrategyTimeout(20*time.Millisecond))

	page, err := o.Search(context.Background(), baseQuery())
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if page.Strategy != StrategyPrimary {
		t.Errorf("Strategy = %q, want %q", page.Strategy, StrategyPrimary)
	}
	if got := o.Strategies(); !equalIDs(got, []string{"slow", StrategyPrimary}) {
		t.Errorf("Strategies() = %v", got)
	}
}

func TestWithCircuitBreaker(t *testing.T) {
	store := newFakeStore(show("carmel", carmel, day(8, 2)))
	store.errs[StrategyPrimary] = errStoreDown

	settings := breaker.Settings{MinRequests: 1, FailureRatio: 0.5, Timeout: time.Hour}
	chain := []Strategy{
		WithCircuitBreaker(Primary(store), settings),
		Filtered(store),
	}
	if chain[0].Name() != StrategyPrimary || chain[0].Degraded() {
		t.Error("breaker decorator should keep the wrapped strategy's identity")
	}
	o := NewOrchestrator(chain)

	for i := 0; i < 3; i++ {
		page, err := o.Search(context.Background(), baseQuery())
		if err != nil {
			t.Fatalf("Search() #%d error = %v", i, err)
		}
		if page.Strategy != StrategyFiltered {
			t.Errorf("Search() #%d strategy = %q", i, page.Strategy)
		}
	}
	if n := store.callCount(StrategyPrimary); n != 1 {
		t.Errorf("primary store calls = %d, want 1 (breaker open after first failure)", n)
	}
}

func TestPage(t *testing.T) {
	items := make([]models.ResultItem, 25)
	for i := range items {
		items[i] = models.ResultItem{Event: models.EventRecord{ID: fmt.Sprintf("e%02d", i)}}
	}

	tests := []struct {
		page, size int
		wantLen    int
		wantMore   bool
	}{
		{1, 10, 10, true},
		{2, 10, 10, true},
		{3, 10, 5, false},
		{4, 10, 0, false},
		{1, 25, 25, false},
		{1, 100, 25, false},
		{0, 0, 20, true},
		{math.MaxInt/20 + 2, 20, 0, false},
		{math.MaxInt, 10, 0, false},
		{2, math.MaxInt, 0, false},
		{1, math.MaxInt, 25, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("page%d_size%d", tt.page, tt.size), func(t *testing.T) {
			p := Page(items, tt.page, tt.size)
			if len(p.Items) != tt.wantLen || p.HasMore != tt.wantMore || p.TotalCount != 25 {
				t.Errorf("len = %d, HasMore = %v, Total = %d; want %d, %v, 25",
					len(p.Items), p.HasMore, p.TotalCount, tt.wantLen, tt.wantMore)
			}
		})
	}

	// Concatenating every page reproduces the full result set.
	var all []string
	for n := 1; ; n++ {
		p := Page(items, n, 7)
		for _, it := range p.Items {
			all = append(all, it.Event.ID)
		}
		if !p.HasMore {
			break
		}
	}
	if len(all) != 25 || all[0] != "e00" || all[24] != "e24" {
		t.Errorf("concatenated pages = %v", all)
	}
}

func TestResolvePartialDate(t *testing.T) {
	tests := []struct {
		name   string
		date   models.PartialDate
		window models.DateWindow
		want   time.Time
		ok     bool
	}{
		{
			name:   "explicit year kept",
			date:   models.PartialDate{Year: 2024, Month: time.August, Day: 2},
			window: august,
			want:   time.Date(2024, 8, 2, 0, 0, 0, 0, time.UTC),
			ok:     true,
		},
		{
			name:   "inside window",
			date:   models.PartialDate{Month: time.August, Day: 2},
			window: august,
			want:   day(8, 2),
			ok:     true,
		},
		{
			name:   "before window start rolls forward",
			date:   models.PartialDate{Month: time.July, Day: 4},
			window: august,
			want:   time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC),
			ok:     true,
		},
		{
			name:   "leap day finds leap year",
			date:   models.PartialDate{Month: time.February, Day: 29},
			window: august,
			want:   time.Date(2028, 2, 29, 0, 0, 0, 0, time.UTC),
			ok:     true,
		},
		{
			name:   "end-only window anchors on end year",
			date:   models.PartialDate{Month: time.March, Day: 1},
			window: models.DateWindow{End: day(12, 31)},
			want:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			ok:     true,
		},
		{name: "no anchor", date: models.PartialDate{Month: time.March, Day: 1}},
		{name: "empty date", window: august},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolvePartialDate(tt.date, tt.window)
			if ok != tt.ok || !got.Equal(tt.want) {
				t.Errorf("ResolvePartialDate() = %v, %v; want %v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

type fakeResolver struct {
	res *geocode.Resolution
	err error
}

func (f fakeResolver) Resolve(context.Context, string) (*geocode.Resolution, error) {
	return f.res, f.err
}

func TestService_SearchNear(t *testing.T) {
	store := newFakeStore(show("carmel", carmel, day(8, 2)))
	orch := NewOrchestrator(DefaultChain(store))

	t.Run("resolves then searches", func(t *testing.T) {
		svc := NewService(fakeResolver{res: &geocode.Resolution{Coordinate: indianapolis, Source: geocode.SourceZipTable}}, orch)
		q := baseQuery()
		q.Origin = models.Coordinate{}
		res, err := svc.SearchNear(context.Background(), "46204", q)
		if err != nil {
			t.Fatalf("SearchNear() error = %v", err)
		}
		if res.Origin.Coordinate != indianapolis || res.Page.TotalCount != 1 {
			t.Errorf("origin = %v, total = %d", res.Origin.Coordinate, res.Page.TotalCount)
		}
	})

	t.Run("resolution failure aborts", func(t *testing.T) {
		calls := store.callCount(StrategyPrimary)
		rerr := &geocode.ResolutionError{Location: "nowhere", Reason: geocode.ReasonNoResults}
		svc := NewService(fakeResolver{err: rerr}, orch)
		_, err := svc.SearchNear(context.Background(), "nowhere", baseQuery())
		if !errors.Is(err, geocode.ErrResolutionFailure) {
			t.Fatalf("error = %v, want ErrResolutionFailure", err)
		}
		if store.callCount(StrategyPrimary) != calls {
			t.Error("store called after resolution failure")
		}
	})
}
