// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package geocode

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/showfinder/internal/models"
)

const sampleResponse = `[{
	"lat": "39.7683331",
	"lon": "-86.1583502",
	"display_name": "Indianapolis, Marion County, Indiana, United States",
	"address": {
		"city": "Indianapolis",
		"state": "Indiana",
		"ISO3166-2-lvl4": "US-IN",
		"postcode": "46204",
		"country_code": "us"
	}
}]`

func newTestProvider(t *testing.T, handler http.HandlerFunc) *NominatimProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewNominatimProvider(NominatimConfig{
		BaseURL:           srv.URL,
		UserAgent:         "showfinder-test/1.0",
		RequestsPerSecond: 1000,
		Burst:             100,
	})
}

func TestParseZip(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"46227", "46227", true},
		{"46227-1234", "46227", true},
		{"4622", "", false},
		{"462271", "", false},
		{"Indianapolis, IN", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseZip(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseZip(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNominatimProvider_Success(t *testing.T) {
	var gotUA, gotQuery, gotFormat string
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotQuery = r.URL.Query().Get("q")
		gotFormat = r.URL.Query().Get("format")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleResponse))
	})

	res, err := p.Geocode(context.Background(), "Indianapolis, IN")
	if err != nil {
		t.Fatalf("Geocode() error = %v", err)
	}
	if gotUA != "showfinder-test/1.0" {
		t.Errorf("User-Agent = %q", gotUA)
	}
	if gotQuery != "Indianapolis, IN" {
		t.Errorf("q = %q", gotQuery)
	}
	if gotFormat != "jsonv2" {
		t.Errorf("format = %q", gotFormat)
	}
	if math.Abs(res.Coordinate.Latitude-39.7683331) > 1e-9 || math.Abs(res.Coordinate.Longitude+86.1583502) > 1e-9 {
		t.Errorf("Coordinate = %v", res.Coordinate)
	}
	if res.City != "Indianapolis" || res.State != "IN" || res.PostalCode != "46204" {
		t.Errorf("address = %q %q %q", res.City, res.State, res.PostalCode)
	}
	if res.Source != SourceNominatim || res.Fallback {
		t.Errorf("Source = %q, Fallback = %v", res.Source, res.Fallback)
	}
}

func TestNominatimProvider_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "boom"},
		{name: "empty array", status: http.StatusOK, body: "[]", wantErr: ErrNoResults},
		{name: "malformed body", status: http.StatusOK, body: "{not json", wantErr: ErrMalformedResponse},
		{name: "bad coordinates", status: http.StatusOK, body: `[{"lat":"north","lon":"-86"}]`, wantErr: ErrMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := p.Geocode(context.Background(), "nowhere")
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNominatimProvider_IsAvailable(t *testing.T) {
	if NewNominatimProvider(NominatimConfig{}).IsAvailable() {
		t.Error("provider without User-Agent should be unavailable")
	}
	if !NewNominatimProvider(NominatimConfig{UserAgent: "x"}).IsAvailable() {
		t.Error("provider with User-Agent should be available")
	}
}

func TestResolver_ZipHitSkipsProvider(t *testing.T) {
	var calls atomic.Int32
	p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(sampleResponse))
	})
	r := NewResolver(NewStaticZipTable(SeedZipCodes), p, Config{})

	res, err := r.Resolve(context.Background(), "46227")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if res.Source != SourceZipTable {
		t.Errorf("Source = %q, want %q", res.Source, SourceZipTable)
	}
	if res.City != "Indianapolis" || res.State != "IN" {
		t.Errorf("City/State = %q/%q", res.City, res.State)
	}
	if calls.Load() != 0 {
		t.Errorf("provider called %d times", calls.Load())
	}
}

func TestResolver_ZipMissUsesProvider(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(sampleResponse))
	})
	r := NewResolver(NewStaticZipTable(nil), p, Config{})

	res, err := r.Resolve(context.Background(), "46204-0001")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if res.Source != SourceNominatim {
		t.Errorf("Source = %q", res.Source)
	}
}

func TestResolver_EmptyLocation(t *testing.T) {
	r := NewResolver(nil, nil, Config{})
	_, err := r.Resolve(context.Background(), "   ")
	var rerr *ResolutionError
	if !errors.As(err, &rerr) || rerr.Reason != ReasonEmpty {
		t.Fatalf("error = %v, want %s", err, ReasonEmpty)
	}
	if !errors.Is(err, ErrResolutionFailure) {
		t.Error("expected errors.Is(err, ErrResolutionFailure)")
	}
}

func TestResolver_NoProvider(t *testing.T) {
	r := NewResolver(nil, nil, Config{})
	_, err := r.Resolve(context.Background(), "Springfield")
	var rerr *ResolutionError
	if !errors.As(err, &rerr) || rerr.Reason != ReasonUnavailable {
		t.Fatalf("error = %v, want %s", err, ReasonUnavailable)
	}
}

func TestResolver_Timeout(t *testing.T) {
	release := make(chan struct{})
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	t.Cleanup(func() { close(release) })

	r := NewResolver(nil, p, Config{Timeout: 50 * time.Millisecond})
	start := time.Now()
	_, err := r.Resolve(context.Background(), "Slow Town, IN")
	if err == nil {
		t.Fatal("expected timeout error")
	}
	var rerr *ResolutionError
	if !errors.As(err, &rerr) || rerr.Reason != ReasonTimeout {
		t.Fatalf("error = %v, want reason %s", err, ReasonTimeout)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Resolve took %v, timeout not enforced", elapsed)
	}
}

func TestResolver_NoResults(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("[]"))
	})
	r := NewResolver(nil, p, Config{})
	_, err := r.Resolve(context.Background(), "Atlantis")
	var rerr *ResolutionError
	if !errors.As(err, &rerr) || rerr.Reason != ReasonNoResults {
		t.Fatalf("error = %v, want reason %s", err, ReasonNoResults)
	}
	if !errors.Is(err, ErrNoResults) {
		t.Error("expected wrapped ErrNoResults")
	}
}

func TestResolver_DebugFallback(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	fallback := models.Coordinate{Latitude: 39.7684, Longitude: -86.1581}
	r := NewResolver(nil, p, Config{DebugFallback: true, FallbackCoordinate: fallback})

	res, err := r.Resolve(context.Background(), "Anywhere")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !res.Fallback || res.Source != SourceDebugFallback {
		t.Errorf("Fallback = %v, Source = %q", res.Fallback, res.Source)
	}
	if res.Coordinate != fallback {
		t.Errorf("Coordinate = %v, want %v", res.Coordinate, fallback)
	}
	if res.DisplayName == "" {
		t.Error("fallback resolution should carry a label")
	}
}
