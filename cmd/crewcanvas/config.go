package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the yaml configuration for the serve command.
type Config struct {
	Addr string `yaml:"addr"`

	// CanvasID is the store key the canvas saves under.
	CanvasID string `yaml:"canvas_id"`

	Database struct {
		// Driver is one of "memory", "sqlite", "postgres".
		Driver string `yaml:"driver"`
		// DSN is the sqlite path or postgres URL; unused for memory.
		DSN string `yaml:"dsn"`
	} `yaml:"database"`

	HistorySize    int  `yaml:"history_size"`
	EnforceAcyclic bool `yaml:"enforce_acyclic"`

	Deploy struct {
		// Delay bounds for the deployment simulation. Zero values keep
		// the built-in defaults.
		InitialDelayMin time.Duration `yaml:"initial_delay_min"`
		InitialDelayMax time.Duration `yaml:"initial_delay_max"`
		StepDelayMin    time.Duration `yaml:"step_delay_min"`
		StepDelayMax    time.Duration `yaml:"step_delay_max"`
	} `yaml:"deploy"`
}

func defaultConfig() Config {
	var cfg Config
	cfg.Addr = ":3000"
	cfg.CanvasID = "default"
	cfg.Database.Driver = "memory"
	return cfg
}

// loadConfig reads a yaml config file. A missing path returns defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	switch cfg.Database.Driver {
	case "", "memory", "sqlite", "postgres":
	default:
		return cfg, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
	return cfg, nil
}
