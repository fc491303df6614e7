// Command importfile runs a single location import from a local CSV file
// against the configured inventory backend, bypassing the job queue.
//
// Usage:
//
//	DATABASE_URL=postgres://... go run ./cmd/importfile -file locations.csv
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmpettit/location-import-service/internal/adapter/httpinv"
	"github.com/jmpettit/location-import-service/internal/adapter/postgres"
	"github.com/jmpettit/location-import-service/internal/config"
	"github.com/jmpettit/location-import-service/internal/importer"
	"github.com/jmpettit/location-import-service/internal/observability"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "importfile: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	file := flag.String("file", "", "path to the CSV file to import")
	flag.Parse()

	if *file == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -file")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	csvData, err := os.ReadFile(*file)
	if err != nil {
		return fmt.Errorf("read csv file: %w", err)
	}

	store, cleanup, err := buildInventory(cfg, logger)
	if err != nil {
		return fmt.Errorf("initialize inventory backend: %w", err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	imp := importer.New(store, logger, metrics)
	summary, err := imp.Run(ctx, string(csvData))
	if err != nil {
		return err
	}

	fmt.Println(summary.Message())
	for _, loc := range summary.Locations {
		city := "?"
		state := "?"
		if loc.Parent != nil {
			city = loc.Parent.Name
			if loc.Parent.Parent != nil {
				state = loc.Parent.Parent.Name
			}
		}
		fmt.Printf("  %s (%s) in %s, %s\n", loc.Name, loc.Type.Name, city, state)
	}
	return nil
}

// buildInventory constructs the configured store backend, mirroring importd.
func buildInventory(cfg *config.Config, logger *slog.Logger) (importer.Inventory, func(), error) {
	switch cfg.InventoryBackend {
	case config.BackendPostgres:
		db, err := postgres.Open(cfg.DatabaseURL, logger)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { _ = db.Close() }, nil
	case config.BackendHTTP:
		client := httpinv.NewClient(cfg.InventoryURL, cfg.InventoryToken, cfg.InventoryTimeout, logger)
		return httpinv.NewCachedInventory(client, cfg.RefCacheSize), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown inventory backend %q", cfg.InventoryBackend)
	}
}
