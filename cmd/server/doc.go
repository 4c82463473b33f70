// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

/*
Package main is the entry point for the Showfinder server.

Showfinder finds recurring shows (flea markets, craft fairs, antique shows)
near a ZIP code, address or coordinate pair, and tells whether two event
records belong to the same recurring series.

# Application Architecture

	RootSupervisor ("showfinder")
	├── DataSupervisor ("data-layer")
	│   └── DuckDB checkpoint service
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 with defaults, optional YAML file and environment
 2. Logging: zerolog with JSON/console output modes
 3. Database: DuckDB with the optional spatial extension and seeded ZIP table
 4. Geocoding: ZIP table first, then Nominatim behind a rate limiter and breaker
 5. Search: four-strategy fallback chain, each strategy behind a circuit breaker
 6. Supervisor Tree: Suture v4 process supervision
 7. HTTP Server: Chi router with middleware stack

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains in-flight
requests for SHUTDOWN_TIMEOUT, then the database is checkpointed and closed.

# Port 3857

The default port 3857 references EPSG:3857 (Web Mercator projection).
*/
package main
