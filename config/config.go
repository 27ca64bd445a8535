// Package config loads the device configuration from a TOML file.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/ardnew/softaudio/pkg"
)

// Backend kinds selectable in the configuration.
const (
	BackendNull = "null"
	BackendWAV  = "wav"
)

// Config is the device configuration.
type Config struct {
	// BufferPackets sizes each direction's ring in packets.
	BufferPackets int `toml:"buffer_packets"`

	// Backend selects the host backend: "null" or "wav".
	Backend string `toml:"backend"`

	// OutputWAV receives encoded playback when the WAV backend is active.
	OutputWAV string `toml:"output_wav"`

	// InputWAV supplies capture data when the WAV backend is active.
	InputWAV string `toml:"input_wav"`

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `toml:"log_level"`

	// LogFormat is "text" or "json".
	LogFormat string `toml:"log_format"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		BufferPackets: 64,
		Backend:       BackendNull,
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// Load reads a TOML configuration file, filling unset fields from Default.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects configurations the device cannot realize.
func (c Config) Validate() error {
	if c.BufferPackets < 1 {
		return fmt.Errorf("buffer_packets %d: %w", c.BufferPackets, pkg.ErrBufferTooSmall)
	}
	switch c.Backend {
	case BackendNull, BackendWAV:
	default:
		return fmt.Errorf("backend %q: %w", c.Backend, pkg.ErrInvalidRequest)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level %q: %w", c.LogLevel, pkg.ErrInvalidRequest)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log_format %q: %w", c.LogFormat, pkg.ErrInvalidRequest)
	}
	return nil
}
