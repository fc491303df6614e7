package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Inventory backend selectors.
const (
	BackendPostgres = "postgres"
	BackendHTTP     = "http"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers      []string `env:"KAFKA_BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	KafkaJobsTopic    string   `env:"KAFKA_JOBS_TOPIC" envDefault:"location-import-jobs"`
	KafkaResultsTopic string   `env:"KAFKA_RESULTS_TOPIC" envDefault:"location-import-results"`
	KafkaGroupID      string   `env:"KAFKA_GROUP_ID" envDefault:"location-importer"`

	HTTPAddr  string `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Inventory backend selection and settings.
	InventoryBackend string        `env:"INVENTORY_BACKEND" envDefault:"postgres"`
	DatabaseURL      string        `env:"DATABASE_URL"`
	InventoryURL     string        `env:"INVENTORY_URL"`
	InventoryToken   string        `env:"INVENTORY_TOKEN"`
	InventoryTimeout time.Duration `env:"INVENTORY_TIMEOUT" envDefault:"10s"`
	RefCacheSize     int           `env:"REF_CACHE_SIZE" envDefault:"256"`
}

// Load reads configuration from environment variables, applying defaults
// where unset, and validates the result.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.KafkaBrokers) == 0 {
		return errors.New("KAFKA_BROKERS is required")
	}
	if c.KafkaJobsTopic == "" {
		return errors.New("KAFKA_JOBS_TOPIC is required")
	}
	if c.KafkaResultsTopic == "" {
		return errors.New("KAFKA_RESULTS_TOPIC is required")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be positive")
	}

	switch c.InventoryBackend {
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres backend")
		}
	case BackendHTTP:
		if c.InventoryURL == "" {
			return errors.New("INVENTORY_URL is required for the http backend")
		}
		if c.InventoryTimeout <= 0 {
			return errors.New("INVENTORY_TIMEOUT must be positive")
		}
		if c.RefCacheSize <= 0 {
			return errors.New("REF_CACHE_SIZE must be positive")
		}
	default:
		return fmt.Errorf("INVENTORY_BACKEND must be %q or %q, got %q", BackendPostgres, BackendHTTP, c.InventoryBackend)
	}
	return nil
}
