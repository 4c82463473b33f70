// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/tomtom215/showfinder/internal/geo"
	"github.com/tomtom215/showfinder/internal/models"
	"github.com/tomtom215/showfinder/internal/series"
)

// NormalizeCoordinates accepts any supported location payload and returns
// the canonical coordinate with a plausibility check.
func (h *Handler) NormalizeCoordinates(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		NewResponseWriter(w, r).BadRequest("Request body too large or unreadable")
		return
	}

	src, err := geo.ParseLocationPayload(body)
	if err != nil {
		NewResponseWriter(w, r).BadRequest("Invalid JSON body")
		return
	}

	var resp NormalizeResponse
	if src != nil {
		if c, ok := geo.Normalize(src); ok {
			check := geo.Check(c, h.region)
			resp = NormalizeResponse{Present: true, Coordinate: &c, Check: &check}
		}
	}
	NewResponseWriter(w, r).Success(resp)
}

// CompareSeries scores whether two shows belong to the same series.
func (h *Handler) CompareSeries(w http.ResponseWriter, r *http.Request) {
	var req PairRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	NewResponseWriter(w, r).Success(h.detector.Compare(req.A, req.B))
}

// PredictSeries predicts the next occurrence from two dated shows.
func (h *Handler) PredictSeries(w http.ResponseWriter, r *http.Request) {
	var req PredictRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var (
		pred models.RecurrencePrediction
		pair models.SeriesCandidatePair
		err  error
	)
	if req.RequireSameSeries {
		pred, pair, err = h.detector.PredictSeries(req.A, req.B)
	} else {
		pair = h.detector.Compare(req.A, req.B)
		pred, err = series.PredictNext(req.A, req.B)
	}

	switch {
	case errors.Is(err, series.ErrMissingDate):
		NewResponseWriter(w, r).ValidationError("Both shows need a start_date", nil)
		return
	case errors.Is(err, series.ErrNotSameSeries):
		NewResponseWriter(w, r).ErrorWithDetails(http.StatusUnprocessableEntity, ErrCodeValidationFailed,
			"Shows are not the same series", pair)
		return
	case err != nil:
		writeServiceError(w, r, err)
		return
	}

	NewResponseWriter(w, r).Success(PredictResponse{Prediction: pred, Comparison: pair})
}

// CheckDuplicate reports whether two listings describe the same show.
func (h *Handler) CheckDuplicate(w http.ResponseWriter, r *http.Request) {
	var req PairRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	NewResponseWriter(w, r).Success(h.detector.CheckDuplicate(req.A, req.B))
}
