// Package main implements the entry point for the ADF API server, which
// runs augmented Dickey-Fuller stationarity tests over submitted series
// and uploaded log files.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/statforge/adf-api/internal/config"
	"github.com/statforge/adf-api/internal/dataload"
	"github.com/statforge/adf-api/internal/platform/logger"
	"github.com/statforge/adf-api/internal/service"
	"github.com/statforge/adf-api/internal/stattest"
	"github.com/statforge/adf-api/internal/task"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func run() error {
	// A .env file is optional; real environments set variables directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"max_concurrent", cfg.Analysis.MaxConcurrent)

	registry := task.NewRegistry(appLogger)
	limiter := task.NewLimiter(cfg.Analysis.MaxConcurrent)
	runner := task.NewRunner(registry, limiter, appLogger)

	analysisService, err := service.NewAnalysisService(
		registry,
		runner,
		dataload.NewLoader(),
		stattest.NewTester(),
		appLogger,
	)
	if err != nil {
		return fmt.Errorf("failed to create analysis service: %w", err)
	}

	router := newRouter(analysisService, appLogger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	appLogger.Info("shutdown signal received")

	shutdownTimeout := time.Duration(cfg.Server.ShutdownTimeoutSeconds) * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("server shutdown failed", "error", err)
	}

	// Let in-flight analyses finish within the same grace window.
	if err := runner.Drain(shutdownCtx); err != nil {
		appLogger.Warn("analyses still running at shutdown", "error", err)
	}

	appLogger.Info("server stopped")
	return nil
}
