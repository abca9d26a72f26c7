package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/inkling"
	"github.com/aretw0/inkling/internal/config"
	httpAdapter "github.com/aretw0/inkling/pkg/adapters/http"
	"github.com/aretw0/inkling/pkg/adapters/file"
	"github.com/aretw0/inkling/pkg/adapters/mcp"
	"github.com/aretw0/inkling/pkg/adapters/redis"
	"github.com/aretw0/inkling/pkg/observability"
	"github.com/aretw0/inkling/pkg/ports"
)

// counterFactory returns per-story counter stores backed by redis when an
// address is configured. The returned close func releases the connection.
func counterFactory(cfg config.Config, logger *slog.Logger) (func(string) ports.CounterStore, func() error) {
	if cfg.RedisAddr == "" {
		return nil, func() error { return nil }
	}

	client := backend.NewClient(&backend.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	logger.Info("Using redis counter store", "addr", cfg.RedisAddr, "prefix", cfg.RedisPrefix)

	return func(storyID string) ports.CounterStore {
		return redis.NewFromClient(client,
			redis.WithPrefix(cfg.RedisPrefix+storyID+":"),
			redis.WithTTL(cfg.CounterTTL),
		)
	}, client.Close
}

// Serve runs the HTTP API until ctx is cancelled.
func Serve(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	counters, closeCounters := counterFactory(cfg, logger)
	defer closeCounters()

	handler := httpAdapter.NewHandler(httpAdapter.Config{
		Loader:           file.New(cfg.StoriesDir),
		Counters:         counters,
		Hooks:            inkling.Combine(metrics.Hooks(), createDebugHooks(logger)),
		Gatherer:         reg,
		ValidateRequests: true,
		Logger:           logger,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Starting inkling server", "addr", srv.Addr, "stories", cfg.StoriesDir)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		logger.Info("Start shutdown")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Graceful shutdown did not complete", "error", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		logger.Info("Server stopped gracefully")
		return nil
	}
}

// ServeMCP runs the MCP server over stdio or SSE.
func ServeMCP(ctx context.Context, cfg config.Config, transport string, port int, logger *slog.Logger) error {
	srv := mcp.NewServer(file.New(cfg.StoriesDir), logger, inkling.WithHooks(createDebugHooks(logger)))

	switch transport {
	case "stdio":
		logger.Info("Starting inkling MCP Server (Stdio)")
		return srv.ServeStdio()
	case "sse":
		logger.Info("Starting inkling MCP Server (SSE)", "port", port)
		if err := srv.ServeSSE(ctx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	default:
		return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
	}
}
