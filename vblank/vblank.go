// Package vblank measures vertical blank timing for backends without kernel vblank events.
//
// The preferred source is a [FenceMonitor], which uses EGL fence syncs as a proxy for the
// display's refresh cadence. When the driver lacks fence syncs, [New] falls back to a
// [TimerMonitor] running at the nominal rate.
package vblank

import (
	"errors"
	"fmt"

	"github.com/go-logr/logr"
	"periph.io/x/conn/v3/physic"

	"github.com/BeatGlow/gbmdisplay/egl"
)

// FullSpeedFramesPerSecond is the nominal full frame rate.
const FullSpeedFramesPerSecond = 60

// FullSpeed is FullSpeedFramesPerSecond as a frequency.
const FullSpeed = FullSpeedFramesPerSecond * physic.Hertz

// Errors
var (
	ErrUnavailable = errors.New("vblank: fence monitor unavailable")
)

// Monitor blocks the caller until the next vertical blank.
type Monitor interface {
	// WaitForVBlank blocks until the next vblank.
	WaitForVBlank() bool

	// RefreshRate is the rate the monitor paces to.
	RefreshRate() physic.Frequency
}

// Config for monitors.
type Config struct {
	// Library provides the EGL entry points, egl.DefaultLibrary if nil.
	Library egl.Library

	// Logger receives diagnostics.
	Logger logr.Logger

	// Rate of the timer fallback, FullSpeed if zero.
	Rate physic.Frequency
}

// DefaultConfig are the default configuration values.
var DefaultConfig = Config{
	Rate: FullSpeed,
}

func (c *Config) withDefaults() Config {
	if c == nil {
		return DefaultConfig
	}
	out := *c
	if out.Rate <= 0 {
		out.Rate = DefaultConfig.Rate
	}
	return out
}

func (c *Config) library() egl.Library {
	if c.Library == nil {
		return egl.DefaultLibrary
	}
	return c.Library
}

// New returns a FenceMonitor if the driver supports fence syncs and a TimerMonitor otherwise.
func New(config *Config) Monitor {
	cfg := config.withDefaults()
	m, err := NewFenceMonitor(&cfg)
	if err != nil {
		cfg.Logger.Info("using timer vblank monitor", "reason", err.Error(), "rate", cfg.Rate.String())
		return NewTimerMonitor(cfg.Rate)
	}
	return m
}

func unavailable(reason error) error {
	return fmt.Errorf("%w: %w", ErrUnavailable, reason)
}
