// Groupscope - Chat Group Member Profiling Dashboard
// Copyright 2026 X. Fang (xlfang)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xlfang/groupscope

// Command server runs the Groupscope dashboard: it loads the profiling
// dataset once at startup, builds the view controller, and serves the
// HTTP API under a supervision tree until interrupted.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/xlfang/groupscope/internal/api"
	"github.com/xlfang/groupscope/internal/config"
	"github.com/xlfang/groupscope/internal/dataset"
	"github.com/xlfang/groupscope/internal/logging"
	"github.com/xlfang/groupscope/internal/metrics"
	"github.com/xlfang/groupscope/internal/stats"
	"github.com/xlfang/groupscope/internal/supervisor"
	"github.com/xlfang/groupscope/internal/supervisor/services"
	"github.com/xlfang/groupscope/internal/view"
)

// version is injected at build time via -ldflags.
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	controller := view.NewController(stats.NewEngine(), cfg.Dataset.AsOfTime())

	// A load failure is not fatal: the server starts degraded and every
	// data endpoint reports the cause until restart.
	var loadErr error
	if col, err := dataset.Load(ctx, cfg.Dataset.Source, cfg.Dataset.Timeout); err != nil {
		loadErr = err
		metrics.DatasetLoadFailed.Set(1)
		logging.Error().Err(err).Msg("dataset load failed, serving degraded")
	} else {
		controller.SetData(col)
	}

	handler := api.NewHandler(controller, loadErr, version)
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      api.NewRouter(cfg.Server, handler),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree := supervisor.NewTree(logging.NewSlogLogger(), treeCfg)
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("version", version).
		Bool("degraded", loadErr != nil).
		Msg("starting groupscope server")

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Fatal().Err(err).Msg("supervisor tree exited")
	}
	logging.Info().Msg("shutdown complete")
}
