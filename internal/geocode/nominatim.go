// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package geocode

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/showfinder/internal/breaker"
	"github.com/tomtom215/showfinder/internal/metrics"
	"github.com/tomtom215/showfinder/internal/models"
)

// DefaultNominatimURL is the public OpenStreetMap Nominatim endpoint.
const DefaultNominatimURL = "https://nominatim.openstreetmap.org"

// NominatimConfig configures the Nominatim provider.
type NominatimConfig struct {
	BaseURL      string
	UserAgent    string
	CountryCodes string

	// RequestsPerSecond caps outbound traffic; the public instance allows 1.
	RequestsPerSecond float64
	Burst             int

	Breaker breaker.Settings
}

// NominatimProvider geocodes through the Nominatim search API.
//
// The public usage policy requires an identifying User-Agent and at most one
// request per second, both enforced here.
type NominatimProvider struct {
	client    *http.Client
	baseURL   string
	userAgent string
	countries string
	limiter   *rate.Limiter
	cb        *breaker.Breaker[*Resolution]
}

// nominatimResult is one element of the search response array. Nominatim
// encodes lat/lon as strings.
type nominatimResult struct {
	Lat         string           `json:"lat"`
	Lon         string           `json:"lon"`
	DisplayName string           `json:"display_name"`
	Address     nominatimAddress `json:"address"`
}

type nominatimAddress struct {
	Postcode   string `json:"postcode"`
	City       string `json:"city"`
	Town       string `json:"town"`
	Village    string `json:"village"`
	Hamlet     string `json:"hamlet"`
	State      string `json:"state"`
	StateCode  string `json:"ISO3166-2-lvl4"`
	CountryISO string `json:"country_code"`
}

// NewNominatimProvider creates the provider. The HTTP client carries no
// timeout of its own; callers bound each call through the context.
func NewNominatimProvider(cfg NominatimConfig) *NominatimProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultNominatimURL
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 1
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}

	return &NominatimProvider{
		client:    &http.Client{},
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		countries: cfg.CountryCodes,
		limiter:   rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		cb:        breaker.New[*Resolution]("geocoder-nominatim", cfg.Breaker),
	}
}

// Name returns the provider name.
func (p *NominatimProvider) Name() string {
	return SourceNominatim
}

// IsAvailable requires a User-Agent, which the Nominatim policy mandates.
func (p *NominatimProvider) IsAvailable() bool {
	return p.userAgent != ""
}

// Geocode looks up query and returns the first candidate.
func (p *NominatimProvider) Geocode(ctx context.Context, query string) (*Resolution, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", ReasonRateLimited, errRateLimited, err)
	}

	start := time.Now()
	res, err := p.cb.Execute(func() (*Resolution, error) {
		return p.search(ctx, query)
	})
	metrics.GeocodeDuration.WithLabelValues(p.Name()).Observe(time.Since(start).Seconds())
	return res, err
}

func (p *NominatimProvider) search(ctx context.Context, query string) (*Resolution, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "jsonv2")
	params.Set("addressdetails", "1")
	params.Set("limit", "1")
	if p.countries != "" {
		params.Set("countrycodes", p.countries)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/search?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query nominatim: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if len(results) == 0 {
		return nil, ErrNoResults
	}

	return convertNominatimResult(&results[0])
}

func convertNominatimResult(r *nominatimResult) (*Resolution, error) {
	lat, errLat := strconv.ParseFloat(strings.TrimSpace(r.Lat), 64)
	lon, errLon := strconv.ParseFloat(strings.TrimSpace(r.Lon), 64)
	if errLat != nil || errLon != nil {
		return nil, fmt.Errorf("%w: lat=%q lon=%q", ErrMalformedResponse, r.Lat, r.Lon)
	}
	coord := models.Coordinate{Latitude: lat, Longitude: lon}
	if !coord.InRange() {
		return nil, fmt.Errorf("%w: coordinate %s out of range", ErrMalformedResponse, coord)
	}

	return &Resolution{
		Coordinate:  coord,
		City:        firstNonEmpty(r.Address.City, r.Address.Town, r.Address.Village, r.Address.Hamlet),
		State:       stateCode(&r.Address),
		PostalCode:  r.Address.Postcode,
		DisplayName: r.DisplayName,
		Source:      SourceNominatim,
	}, nil
}

// stateCode prefers the "US-IN" style subdivision code over the state name.
func stateCode(a *nominatimAddress) string {
	if _, code, ok := strings.Cut(a.StateCode, "-"); ok && code != "" {
		return code
	}
	return a.State
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
