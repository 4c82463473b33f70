// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/showfinder/internal/geocode"
	"github.com/tomtom215/showfinder/internal/logging"
	"github.com/tomtom215/showfinder/internal/search"
	"github.com/tomtom215/showfinder/internal/validation"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 64 << 10

const dateLayout = "2006-01-02"

// sanitizeLogValue escapes control characters to prevent log injection.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&result, "\\x%02x", r)
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// decodeJSON reads a bounded JSON body into v and validates it. It writes
// the error response itself and returns false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		NewResponseWriter(w, r).BadRequest("Request body too large or unreadable")
		return false
	}
	if err := json.Unmarshal(body, v); err != nil {
		NewResponseWriter(w, r).BadRequest("Invalid JSON body")
		return false
	}
	return validateRequest(w, r, v)
}

// validateRequest runs the struct validator and writes a 400 on failure.
func validateRequest(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if verr := validation.ValidateStruct(v); verr != nil {
		apiErr := verr.ToAPIError()
		NewResponseWriter(w, r).ValidationError(apiErr.Message, apiErr.Details)
		return false
	}
	return true
}

func parseFloatParam(value string) (*float64, error) {
	if value == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func parseIntParam(value string, defaultValue int) (int, error) {
	if value == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(value)
}

func parseDateParam(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, value)
}

// parseCommaSeparated splits every occurrence of a repeatable query
// parameter on commas, dropping blanks.
func parseCommaSeparated(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// writeServiceError maps domain errors onto the API error envelope.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	rw := NewResponseWriter(w, r)
	log := logging.Ctx(r.Context())

	var verr *validation.RequestValidationError
	var rerr *geocode.ResolutionError

	switch {
	case errors.As(err, &verr):
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)

	case errors.Is(err, search.ErrInvalidQuery):
		rw.ValidationError(err.Error(), nil)

	case errors.As(err, &rerr):
		details := map[string]string{"reason": rerr.Reason, "location": rerr.Location}
		switch rerr.Reason {
		case geocode.ReasonEmpty:
			rw.ValidationError("Location is required", details)
		case geocode.ReasonNoResults:
			rw.ErrorWithDetails(http.StatusUnprocessableEntity, ErrCodeResolutionFailed,
				"Location could not be resolved", details)
		default:
			rw.ExternalServiceError("geocoder", err, details)
		}

	case errors.Is(err, search.ErrSearchUnavailable):
		log.Error().Err(err).Msg("All search strategies failed")
		rw.ServiceUnavailable("Search is temporarily unavailable")

	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		log.Warn().Err(err).Msg("Request cancelled")
		rw.ServiceUnavailable("Request cancelled or timed out")

	default:
		log.Error().Str("error", sanitizeLogValue(err.Error())).Msg("Unhandled API error")
		rw.InternalError("An unexpected error occurred")
	}
}
