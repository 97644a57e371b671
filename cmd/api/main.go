package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"halal_scanner_backend/internal/aggregator"
	apphttp "halal_scanner_backend/internal/http"
	"halal_scanner_backend/internal/http/router"
	"halal_scanner_backend/internal/lookup"
	"halal_scanner_backend/platform/config"
	"halal_scanner_backend/platform/logger"
	"halal_scanner_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Domain Modules
	// ========================================================================

	val := validator.New()

	aggregatorModule := aggregator.NewModule(log, nil)

	lookupModule, err := lookup.NewModule(aggregatorModule.Aggregator(), val, cfg, log)
	if err != nil {
		log.Error("failed to initialize lookup module", "error", err)
		panic("failed to initialize lookup module: " + err.Error())
	}
	defer func() {
		_ = lookupModule.Close()
	}()

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Modules: []apphttp.Module{
			lookupModule,
		},
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.LookupTimeout + 10*time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}
