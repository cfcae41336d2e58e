// Package main is the entry point of solverd, the minimum-cost flow solver
// service.
//
// solverd wraps the network simplex engine in a small JSON-over-HTTP API.
//
// # Service Overview
//
// The service exposes the following endpoints:
//   - POST /api/v1/solve       - solve a minimum-cost flow problem
//   - GET  /api/v1/pivot-rules - list the supported entering-arc rules
//   - GET  /healthz            - liveness probe
//   - GET  /metrics            - Prometheus metrics (separate port)
//
// # Architecture
//
// The layering follows a clean separation of concerns:
//
//	┌──────────────────────────────────────────────────────────────┐
//	│                    HTTP Transport Layer                      │
//	│  (internal/service/handler.go - request ids, logging,       │
//	│   metrics, body limits)                                      │
//	├──────────────────────────────────────────────────────────────┤
//	│                      Service Layer                           │
//	│  (internal/service/solver.go - SolverService)                │
//	│  - Request validation                                        │
//	│  - Result caching                                            │
//	│  - Tracing and metrics                                       │
//	├──────────────────────────────────────────────────────────────┤
//	│                      Solver Layer                            │
//	│  (internal/simplex/*.go)                                     │
//	│  - Network simplex engine over the augmented graph           │
//	│  - Five pluggable pivot rules                                │
//	├──────────────────────────────────────────────────────────────┤
//	│                       Graph Layer                            │
//	│  (internal/graph/*.go)                                       │
//	│  - ListDigraph, FullDigraph, FullGraph                       │
//	│  - Attribute maps                                            │
//	├──────────────────────────────────────────────────────────────┤
//	│                      Converter Layer                         │
//	│  (internal/converter/*.go)                                   │
//	│  - DTO ↔ graph/map conversion, result formatting             │
//	└──────────────────────────────────────────────────────────────┘
//
// # Configuration
//
// Configuration is loaded with the following priority (highest to lowest):
//  1. Environment variables (prefix: MCFLOW_)
//  2. Config files (config.yaml, config/config.yaml, /etc/mcflow/config.yaml)
//  3. Default values
//
// Key configuration options (environment variable format):
//
//	# Application
//	MCFLOW_APP_NAME           - Service name (default: mcflow-solver)
//	MCFLOW_APP_ENVIRONMENT    - Environment: development, staging, production
//
//	# HTTP Server
//	MCFLOW_HTTP_PORT           - API port (default: 8080)
//	MCFLOW_HTTP_MAX_BODY_BYTES - Request size limit (default: 16MB)
//
//	# Logging
//	MCFLOW_LOG_LEVEL  - Log level: debug, info, warn, error (default: info)
//	MCFLOW_LOG_FORMAT - Log format: json, text (default: json)
//	MCFLOW_LOG_OUTPUT - Output: stdout, stderr, file (default: stdout)
//
//	# Caching
//	MCFLOW_CACHE_ENABLED     - Enable result caching (default: false)
//	MCFLOW_CACHE_DRIVER      - Cache backend: memory, redis (default: memory)
//	MCFLOW_CACHE_DEFAULT_TTL - Cache TTL duration (default: 5m)
//
//	# Tracing (OpenTelemetry)
//	MCFLOW_TRACING_ENABLED  - Enable distributed tracing (default: false)
//	MCFLOW_TRACING_ENDPOINT - OTLP endpoint (default: localhost:4317)
//
//	# Metrics (Prometheus)
//	MCFLOW_METRICS_ENABLED - Enable Prometheus metrics (default: true)
//	MCFLOW_METRICS_PORT    - Metrics HTTP port (default: 9090)
//
//	# Solver
//	MCFLOW_SOLVER_DEFAULT_PIVOT_RULE - Default entering-arc rule
//	                                   (default: block_search)
//	MCFLOW_SOLVER_MAX_NODES          - Node count limit, 0 = unlimited
//	MCFLOW_SOLVER_MAX_ARCS           - Arc count limit, 0 = unlimited
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

	"mcflow/internal/service"
	"mcflow/pkg/cache"
	"mcflow/pkg/config"
	"mcflow/pkg/logger"
	"mcflow/pkg/metrics"
	"mcflow/pkg/telemetry"
)

func main() {
	// =========================================================================
	// Configuration
	// =========================================================================
	cfg, err := config.NewLoader().Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// =========================================================================
	// Logging
	// =========================================================================
	logger.InitWithConfig(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		FilePath:   cfg.Log.FilePath,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	})

	ctx := context.Background()

	// =========================================================================
	// Telemetry (OpenTelemetry)
	// =========================================================================
	if cfg.Tracing.Enabled {
		tp, err := telemetry.Init(ctx, telemetry.FromConfig(&cfg.Tracing, &cfg.App))
		if err != nil {
			logger.Warn("Failed to init telemetry", "error", err)
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := tp.Shutdown(shutdownCtx); err != nil {
					logger.Warn("Failed to shutdown telemetry", "error", err)
				}
			}()
			logger.Info("Telemetry initialized", "endpoint", cfg.Tracing.Endpoint)
		}
	}

	// =========================================================================
	// Metrics (Prometheus)
	// =========================================================================
	m := metrics.InitMetrics(cfg.Metrics.Namespace, cfg.Metrics.Subsystem)
	m.SetServiceInfo(cfg.App.Version, cfg.App.Environment)
	if cfg.Metrics.Enabled {
		go func() {
			if err := metrics.StartMetricsServer(cfg.Metrics.Port); err != nil &&
				!errors.Is(err, http.ErrServerClosed) {
				logger.Warn("Metrics server stopped", "error", err)
			}
		}()
	}

	// =========================================================================
	// Result cache
	// =========================================================================
	//
	// Cache keys combine the digest of the canonical problem form with the
	// pivot rule. Entries expire after DefaultTTL. The cache is optional
	// and the service keeps working when its initialization fails.
	var solverCache *cache.SolverCache
	if cfg.Cache.Enabled {
		baseCache, err := cache.New(cache.FromConfig(&cfg.Cache))
		if err != nil {
			logger.Warn("Failed to create cache, continuing without cache", "error", err)
		} else {
			solverCache = cache.NewSolverCache(baseCache, cfg.Cache.DefaultTTL)
			defer func() {
				if err := solverCache.Close(); err != nil {
					logger.Warn("Failed to close cache", "error", err)
				}
			}()
			logger.Info("Solver cache initialized",
				"driver", cfg.Cache.Driver,
				"ttl", cfg.Cache.DefaultTTL,
			)
		}
	}

	// =========================================================================
	// HTTP server
	// =========================================================================
	solverService := service.NewSolverService(cfg, m, solverCache)
	handler := service.NewHandler(solverService, m, cfg.HTTP.MaxBodyBytes)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	logger.Info("Starting solver service",
		"port", cfg.HTTP.Port,
		"environment", cfg.App.Environment,
		"version", cfg.App.Version,
		"default_pivot_rule", cfg.Solver.DefaultPivotRule,
		"cache_enabled", solverCache != nil,
	)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// =========================================================================
	// Graceful shutdown on SIGINT/SIGTERM
	// =========================================================================
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logger.Fatal("server failed", "error", err)
	case sig := <-stop:
		logger.Info("Shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Forced shutdown", "error", err)
	}
}
