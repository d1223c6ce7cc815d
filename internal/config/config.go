// Package config loads the gbm-probe configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// MonitorKind selects the vblank monitor.
type MonitorKind string

const (
	MonitorAuto  MonitorKind = "auto"  // Fence if available, timer otherwise.
	MonitorFence MonitorKind = "fence" // Fence only, fail if unavailable.
	MonitorTimer MonitorKind = "timer" // Timer at RateHz.
)

// Config is the probe configuration.
type Config struct {
	// Device is the render node path or name. Empty selects the first render node.
	Device string `yaml:"device"`

	// Frames is the number of vblanks to measure.
	Frames int `yaml:"frames"`

	// Monitor selects the vblank monitor.
	Monitor MonitorKind `yaml:"monitor"`

	// RateHz is the timer monitor rate.
	RateHz int `yaml:"rate_hz"`

	// Initialize runs eglInitialize on the acquired display.
	Initialize bool `yaml:"initialize"`

	// Verbosity of the log output.
	Verbosity int `yaml:"verbosity"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Frames:     120,
		Monitor:    MonitorAuto,
		RateHz:     60,
		Initialize: true,
	}
}

// DefaultConfigPath is the per-user configuration file.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(dir, "gbm-probe", "config.yaml"), nil
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	} else if err != nil {
		return nil, err
	}

	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the value ranges.
func (c *Config) Validate() error {
	switch c.Monitor {
	case MonitorAuto, MonitorFence, MonitorTimer:
	default:
		return fmt.Errorf("invalid monitor %q", c.Monitor)
	}
	if c.Frames < 0 {
		return fmt.Errorf("frames must not be negative, got %d", c.Frames)
	}
	if c.RateHz <= 0 {
		return fmt.Errorf("rate_hz must be positive, got %d", c.RateHz)
	}
	return nil
}
