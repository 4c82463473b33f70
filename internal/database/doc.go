// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

/*
Package database is the DuckDB-backed show store.

It implements search.EventStore and geocode.ZipTable over two tables:

	shows      one row per show occurrence
	zip_codes  ZIP centroids used before falling back to the geocoder

Locations are stored either as explicit latitude/longitude columns or as a
location DOUBLE[] in [longitude, latitude] order, matching the two shapes
importers produce. Queries read both through COALESCE so either shape is
searchable; callers still normalize the returned shape with geo.Normalize.

Distance is computed in SQL. When the spatial extension is installed locally
and enabled, ST_Distance_Sphere is used; otherwise a Haversine expression
over the core math functions gives the same answer. Extensions are never
downloaded at runtime.
*/
package database
