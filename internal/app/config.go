package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/specialistvlad/psmgen/internal/firmware"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ModelPath string
	OutputDir string

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
	MetricsFile     string
	Debounce        time.Duration

	Firmware firmware.Settings
}

// DefaultConfig returns the configuration used when nothing overrides it.
// ModelPath is left empty.
func DefaultConfig() Config {
	return Config{
		OutputDir: "output",
		LogFormat: "text",
		LogLevel:  "info",
		Debounce:  300 * time.Millisecond,
		Firmware:  firmware.DefaultSettings(),
	}
}

// NewConfig validates cfg and returns a copy.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ModelPath == "" {
		return nil, errors.New("ModelPath is a required configuration field and cannot be empty")
	}
	if _, err := LoaderFor(cfg.ModelPath); err != nil {
		return nil, err
	}
	if cfg.OutputDir == "" {
		return nil, errors.New("OutputDir cannot be empty")
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("invalid healthcheck-port %d: must be between 0 and 65535", cfg.HealthcheckPort)
	}
	if cfg.Debounce < 0 {
		return nil, fmt.Errorf("invalid debounce %s: must not be negative", cfg.Debounce)
	}
	if err := cfg.Firmware.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
