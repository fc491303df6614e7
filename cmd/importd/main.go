// Command importd consumes location import jobs from Kafka, applies each CSV
// to the inventory store, and publishes results. It also exposes health,
// readiness, metrics, and a synchronous /import endpoint over HTTP.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/jmpettit/location-import-service/internal/adapter/http"
	"github.com/jmpettit/location-import-service/internal/adapter/httpinv"
	kafkaadapter "github.com/jmpettit/location-import-service/internal/adapter/kafka"
	"github.com/jmpettit/location-import-service/internal/adapter/postgres"
	"github.com/jmpettit/location-import-service/internal/config"
	"github.com/jmpettit/location-import-service/internal/importer"
	"github.com/jmpettit/location-import-service/internal/observability"
	"github.com/jmpettit/location-import-service/internal/runner"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	store, cleanup, err := buildInventory(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize inventory backend", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	imp := importer.New(store, logger, metrics)

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)

	r := runner.New(reader, imp, writer, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, r, imp, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		if err := r.Run(ctx); err != nil {
			logger.Error("runner error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}

// buildInventory constructs the configured store backend. The returned cleanup
// closes any held connections.
func buildInventory(cfg *config.Config, logger *slog.Logger) (importer.Inventory, func(), error) {
	switch cfg.InventoryBackend {
	case config.BackendPostgres:
		db, err := postgres.Open(cfg.DatabaseURL, logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("postgres inventory backend initialized")
		return db, func() {
			if err := db.Close(); err != nil {
				logger.Error("postgres close error", "error", err)
			}
		}, nil
	case config.BackendHTTP:
		client := httpinv.NewClient(cfg.InventoryURL, cfg.InventoryToken, cfg.InventoryTimeout, logger)
		cached := httpinv.NewCachedInventory(client, cfg.RefCacheSize)
		logger.Info("http inventory backend initialized",
			"url", cfg.InventoryURL, "cache_size", cfg.RefCacheSize)
		return cached, func() {}, nil
	default:
		// Unreachable: config.Load validates the backend name.
		return nil, nil, errors.New("unknown inventory backend " + cfg.InventoryBackend)
	}
}
