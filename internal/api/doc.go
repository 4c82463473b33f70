// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

/*
Package api exposes show search, parsing and series matching over HTTP.

Routes (all JSON, standard APIResponse envelope):

	GET  /api/v1/health/live
	GET  /api/v1/health/ready
	GET  /api/v1/geocode?q=
	GET  /api/v1/shows/nearby
	POST /api/v1/shows/parse
	POST /api/v1/coordinates/normalize
	POST /api/v1/series/compare
	POST /api/v1/series/predict
	POST /api/v1/duplicates/check
	GET  /metrics

/shows/nearby accepts either location (ZIP or address) or lat and lng, plus
radius, start, end (YYYY-MM-DD), page, page_size, max_fee, category
(comma-separated, repeatable), feature and allow_degraded.

Error mapping:

	400 VALIDATION_FAILED        malformed or out-of-range input
	422 RESOLUTION_FAILED        the location matched nothing
	502 EXTERNAL_SERVICE_FAILED  the geocoder failed or timed out
	503 SERVICE_UNAVAILABLE      every search strategy failed

Routing uses chi with go-chi/cors and go-chi/httprate.
*/
package api
