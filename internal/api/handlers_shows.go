// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package api

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tomtom215/showfinder/internal/geocode"
	"github.com/tomtom215/showfinder/internal/logging"
	"github.com/tomtom215/showfinder/internal/models"
	"github.com/tomtom215/showfinder/internal/search"
)

// Geocode resolves ?q= to coordinates.
func (h *Handler) Geocode(w http.ResponseWriter, r *http.Request) {
	req := GeocodeRequest{Query: r.URL.Query().Get("q")}
	if !validateRequest(w, r, &req) {
		return
	}

	res, err := h.search.Resolve(r.Context(), req.Query)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(res)
}

// ShowsNearby searches for shows around a location or coordinate.
func (h *Handler) ShowsNearby(w http.ResponseWriter, r *http.Request) {
	req, fieldErr := h.nearbyRequestFromQuery(r.URL.Query())
	if fieldErr != nil {
		NewResponseWriter(w, r).ValidationError(fieldErr.Error(), map[string]string{"field": fieldErr.field})
		return
	}
	if !validateRequest(w, r, req) {
		return
	}
	if fieldErr := h.checkNearbyRequest(req); fieldErr != nil {
		NewResponseWriter(w, r).ValidationError(fieldErr.Error(), map[string]string{"field": fieldErr.field})
		return
	}

	q := models.SearchQuery{
		RadiusMiles:   req.RadiusMiles,
		MaxEntryFee:   req.MaxEntryFee,
		Categories:    req.Categories,
		Page:          req.Page,
		PageSize:      req.PageSize,
		AllowDegraded: req.AllowDegraded,
	}
	q.Window.Start, _ = time.Parse(dateLayout, req.Start)
	q.Window.End, _ = time.Parse(dateLayout, req.End)
	if len(req.Features) > 0 {
		q.Features = make(map[string]bool, len(req.Features))
		for _, f := range req.Features {
			q.Features[f] = true
		}
	}

	var (
		origin *geocode.Resolution
		page   *models.SearchResultPage
		err    error
	)
	if req.Location != "" {
		var res *search.NearbyResult
		res, err = h.search.SearchNear(r.Context(), req.Location, q)
		if res != nil {
			origin, page = res.Origin, res.Page
		}
	} else {
		q.Origin = models.Coordinate{Latitude: *req.Latitude, Longitude: *req.Longitude}
		origin = &geocode.Resolution{Coordinate: q.Origin, Source: "request"}
		page, err = h.search.Search(r.Context(), q)
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if page.Degraded {
		logging.Ctx(r.Context()).Info().Str("strategy", page.Strategy).
			Int("total", page.TotalCount).Msg("Serving degraded search results")
	}

	NewResponseWriter(w, r).SuccessWithMeta(NearbyResponse{Origin: origin, Items: page.Items}, &APIMeta{
		Pagination: &PaginationMeta{
			Total:    page.TotalCount,
			Count:    len(page.Items),
			Page:     page.Page,
			PageSize: page.PageSize,
			HasMore:  page.HasMore,
		},
		Degraded: page.Degraded,
		Strategy: page.Strategy,
	})
}

type fieldError struct {
	field   string
	message string
}

func (e *fieldError) Error() string { return e.message }

// nearbyRequestFromQuery decodes query parameters, applying config defaults.
func (h *Handler) nearbyRequestFromQuery(values url.Values) (*NearbyRequest, *fieldError) {
	req := &NearbyRequest{
		Location:   values.Get("location"),
		Start:      values.Get("start"),
		End:        values.Get("end"),
		Categories: parseCommaSeparated(values["category"]),
		Features:   parseCommaSeparated(values["feature"]),
	}

	var err error
	if req.Latitude, err = parseFloatParam(values.Get("lat")); err != nil {
		return nil, &fieldError{"lat", "lat must be a number"}
	}
	if req.Longitude, err = parseFloatParam(values.Get("lng")); err != nil {
		return nil, &fieldError{"lng", "lng must be a number"}
	}
	if req.MaxEntryFee, err = parseFloatParam(values.Get("max_fee")); err != nil {
		return nil, &fieldError{"max_fee", "max_fee must be a number"}
	}

	radius, err := parseFloatParam(values.Get("radius"))
	if err != nil {
		return nil, &fieldError{"radius", "radius must be a number"}
	}
	req.RadiusMiles = h.defaultRadius()
	if radius != nil {
		req.RadiusMiles = *radius
	}

	if req.Page, err = parseIntParam(values.Get("page"), 1); err != nil {
		return nil, &fieldError{"page", "page must be an integer"}
	}
	if req.PageSize, err = parseIntParam(values.Get("page_size"), h.defaultPageSize()); err != nil {
		return nil, &fieldError{"page_size", "page_size must be an integer"}
	}

	req.AllowDegraded = h.config != nil && h.config.Search.AllowDegraded
	if v := values.Get("allow_degraded"); v != "" {
		if req.AllowDegraded, err = strconv.ParseBool(v); err != nil {
			return nil, &fieldError{"allow_degraded", "allow_degraded must be true or false"}
		}
	}
	return req, nil
}

// checkNearbyRequest enforces the cross-field rules the struct tags cannot.
func (h *Handler) checkNearbyRequest(req *NearbyRequest) *fieldError {
	hasCoords := req.Latitude != nil || req.Longitude != nil
	switch {
	case req.Location == "" && !hasCoords:
		return &fieldError{"location", "location or lat/lng is required"}
	case req.Location != "" && hasCoords:
		return &fieldError{"location", "use either location or lat/lng, not both"}
	case hasCoords && (req.Latitude == nil || req.Longitude == nil):
		return &fieldError{"lat", "lat and lng must be given together"}
	}

	if limit := h.maxRadius(); limit > 0 && req.RadiusMiles > limit {
		return &fieldError{"radius", "radius must be at most " + strconv.FormatFloat(limit, 'f', -1, 64) + " miles"}
	}
	if h.config != nil && h.config.Search.MaxPageSize > 0 && req.PageSize > h.config.Search.MaxPageSize {
		return &fieldError{"page_size", "page_size must be at most " + strconv.Itoa(h.config.Search.MaxPageSize)}
	}
	if req.Start != "" && req.End != "" && req.End < req.Start {
		return &fieldError{"end", "end must not be before start"}
	}
	return nil
}

func (h *Handler) defaultRadius() float64 {
	if h.config != nil && h.config.Search.DefaultRadiusMiles > 0 {
		return h.config.Search.DefaultRadiusMiles
	}
	return 50
}

func (h *Handler) maxRadius() float64 {
	if h.config != nil {
		return h.config.Search.MaxRadiusMiles
	}
	return 500
}

func (h *Handler) defaultPageSize() int {
	if h.config != nil && h.config.Search.DefaultPageSize > 0 {
		return h.config.Search.DefaultPageSize
	}
	return search.DefaultPageSize
}

// ParseShow extracts fields from free-form listing text.
func (h *Handler) ParseShow(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	parsed := h.parser.Parse(req.Text)
	resp := ParseResponse{Parsed: parsed, Record: parsed.Record()}

	if resp.Record.StartDate.IsZero() && !parsed.Date.IsZero() {
		var window models.DateWindow
		window.Start, _ = time.Parse(dateLayout, req.WindowStart)
		window.End, _ = time.Parse(dateLayout, req.WindowEnd)
		if window.Start.IsZero() && window.End.IsZero() {
			window.Start = models.CivilDate(time.Now())
		}
		if t, ok := search.ResolvePartialDate(parsed.Date, window); ok {
			resp.Record.StartDate = t
			resp.Resolved = true
		}
	} else if !resp.Record.StartDate.IsZero() {
		resp.Resolved = true
	}

	NewResponseWriter(w, r).Success(resp)
}
