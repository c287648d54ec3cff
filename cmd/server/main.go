// Moodscape - Mood-Aware Music Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodscape

// Command server runs the Moodscape HTTP service: mood inference, category
// ranking, and playlist recommendations over a REST API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/moodscape/internal/api"
	"github.com/tomtom215/moodscape/internal/behavior"
	"github.com/tomtom215/moodscape/internal/catalog"
	"github.com/tomtom215/moodscape/internal/config"
	"github.com/tomtom215/moodscape/internal/logging"
	"github.com/tomtom215/moodscape/internal/mood"
	"github.com/tomtom215/moodscape/internal/recommend"
	"github.com/tomtom215/moodscape/internal/supervisor"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("server exited with error")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logger := logging.Logger()

	logger.Info().
		Str("version", version).
		Str("store", cfg.Behavior.Store).
		Int("port", cfg.Server.Port).
		Msg("starting moodscape")

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	logger.Info().Int("categories", cat.Len()).Str("path", cfg.Catalog.Path).Msg("catalog loaded")

	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open behavior store: %w", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Error().Err(cerr).Msg("failed to close behavior store")
		}
	}()

	predictor := mood.NewPredictor(store, logger)
	engine := recommend.NewEngine(predictor, cat, store, recommend.Options{
		PlaylistMinutes: cfg.Engine.DefaultPlaylistMinutes,
		MaxCategories:   cfg.Engine.MaxCategories,
		Seed:            cfg.Engine.Seed,
	}, logger)

	handler := api.NewHandler(engine, store, nil)
	router := api.NewRouter(handler, api.RouterConfig{
		RateLimitRequests: cfg.API.RateLimitReqs,
		RateLimitWindow:   cfg.API.RateLimitWindow,
		CORSOrigins:       cfg.API.CORSOrigins,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.Add(supervisor.NewHTTPService(server, cfg.Server.ShutdownTimeout))
	if gc, ok := store.(supervisor.GarbageCollector); ok {
		tree.Add(supervisor.NewGCService(gc, 0, logger))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info().Str("addr", server.Addr).Msg("listening")

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor: %w", err)
	}

	logger.Info().Msg("shutdown complete")
	return nil
}

// openStore builds the configured behavior store.
func openStore(cfg *config.Config) (behavior.Store, error) {
	switch cfg.Behavior.Store {
	case "badger":
		return behavior.NewBadgerStore(cfg.Behavior.Path, cfg.Behavior.MaxSamples, cfg.Behavior.HourWindow, logging.Logger())
	default:
		return behavior.NewMemoryStore(cfg.Behavior.MaxSamples, cfg.Behavior.HourWindow), nil
	}
}
