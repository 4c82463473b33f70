// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/showfinder/internal/api"
	"github.com/tomtom215/showfinder/internal/config"
	"github.com/tomtom215/showfinder/internal/database"
	"github.com/tomtom215/showfinder/internal/geocode"
	"github.com/tomtom215/showfinder/internal/logging"
	"github.com/tomtom215/showfinder/internal/parser"
	"github.com/tomtom215/showfinder/internal/search"
	"github.com/tomtom215/showfinder/internal/series"
	"github.com/tomtom215/showfinder/internal/supervisor"
	"github.com/tomtom215/showfinder/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("environment", cfg.Server.Environment).
		Float64("max_radius_miles", cfg.Search.MaxRadiusMiles).
		Bool("allow_degraded", cfg.Search.AllowDegraded).
		Msg("Starting Showfinder with supervisor tree")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Bool("spatial", db.IsSpatialAvailable()).Msg("Database initialized successfully")

	if cfg.Geocoding.DebugFallback {
		logging.Warn().Msg("GEOCODER_DEBUG_FALLBACK is enabled: failed lookups resolve to a fixed coordinate")
	}

	provider := geocode.NewNominatimProvider(geocode.NominatimConfig{
		BaseURL:           cfg.Geocoding.BaseURL,
		UserAgent:         cfg.Geocoding.UserAgent,
		CountryCodes:      cfg.Geocoding.CountryCodes,
		RequestsPerSecond: cfg.Geocoding.RequestsPerSecond,
		Burst:             cfg.Geocoding.Burst,
		Breaker:           cfg.Geocoding.Breaker,
	})
	resolver := geocode.NewResolver(db, provider, geocode.Config{
		Timeout:            cfg.Geocoding.Timeout,
		DebugFallback:      cfg.Geocoding.DebugFallback,
		FallbackCoordinate: cfg.Geocoding.FallbackCoordinate(),
		FallbackLabel:      cfg.Geocoding.FallbackLabel,
	})

	chain := search.DefaultChain(db)
	for i, s := range chain {
		chain[i] = search.WithCircuitBreaker(s, cfg.Search.Breaker)
	}
	orchestrator := search.NewOrchestrator(chain,
		search.WithRegion(cfg.Search.Region),
		search.WithStrategyTimeout(cfg.Search.StrategyTimeout),
	)
	searchService := search.NewService(resolver, orchestrator)

	seriesConfig := series.DefaultConfig()
	seriesConfig.DuplicateSimilarity = cfg.Series.DuplicateSimilarity
	detector := series.NewDetector(seriesConfig)

	handler := api.NewHandler(db, searchService, parser.New(), detector, cfg)
	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(&cfg.Security))

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// sutureslog expects slog; the adapter forwards to zerolog.
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	if cfg.Database.CheckpointInterval > 0 {
		tree.AddDataService(services.NewCheckpointService(db, cfg.Database.CheckpointInterval))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
		err = <-errCh
	case err = <-errCh:
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}
