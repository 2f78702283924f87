// Package config loads storeflow settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime settings shared by the storeflow commands.
type Config struct {
	StoreName string `env:"STORE_NAME" envDefault:"Nadie se salva solo"`
	DataFile  string `env:"STORE_DATA_FILE" envDefault:"store_data.json"`

	// Ephemeral keeps the document in memory and never touches DataFile.
	Ephemeral bool `env:"STORE_EPHEMERAL" envDefault:"false"`

	RecentViewCapacity int `env:"STORE_RECENT_VIEW_CAPACITY" envDefault:"5"`

	LogLevel string `env:"STORE_LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"STORE_LOG_FILE"`

	TraceFile        string  `env:"STORE_TRACE_FILE"`
	TraceProbability float64 `env:"STORE_TRACE_PROBABILITY" envDefault:"1.0"`

	Locale string `env:"STORE_LOCALE" envDefault:"en"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.RecentViewCapacity < 1 {
		return Config{}, fmt.Errorf("STORE_RECENT_VIEW_CAPACITY must be positive, got %d", cfg.RecentViewCapacity)
	}
	if cfg.TraceProbability < 0 || cfg.TraceProbability > 1 {
		return Config{}, fmt.Errorf("STORE_TRACE_PROBABILITY must be within [0,1], got %v", cfg.TraceProbability)
	}
	return cfg, nil
}
