// Package config loads server configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config controls the ledger server.
type Config struct {
	// Port is the HTTP listen port.
	Port int `env:"IOU_PORT" envDefault:"8080"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"IOU_LOG_LEVEL" envDefault:"info"`

	// LogFormat selects "text" (colored) or "json" log output.
	LogFormat string `env:"IOU_LOG_FORMAT" envDefault:"text"`

	// JournalPath is the SQLite file for the audit journal.
	// Empty disables the journal; ":memory:" keeps it in memory.
	JournalPath string `env:"IOU_JOURNAL_PATH"`

	// SeedPath is an optional {"users": [...]} document loaded at startup.
	SeedPath string `env:"IOU_SEED_PATH"`

	// Metrics exposes Prometheus metrics on /metrics.
	Metrics bool `env:"IOU_METRICS" envDefault:"true"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid IOU_PORT %d", cfg.Port)
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return Config{}, fmt.Errorf("invalid IOU_LOG_FORMAT %q: want text or json", cfg.LogFormat)
	}
	return cfg, nil
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
