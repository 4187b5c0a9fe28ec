// Package config loads the engine's declarative configuration: loop
// cadences, hardware link settings, and the object/global handler lists
// with their filters and effect bindings. Configuration is read once at
// startup and never mutated afterwards; a malformed file is fatal.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration document.
type Config struct {
	LogLevel string `toml:"log_level"`

	Hardware HardwareConfig `toml:"hardware"`
	Tracker  TrackerConfig  `toml:"tracker"`
	Capture  CaptureConfig  `toml:"capture"`
	Web      WebConfig      `toml:"web"`

	ObjectHandlers []HandlerSpec `toml:"object_handler"`
	GlobalHandlers []HandlerSpec `toml:"global_handler"`
}

// HardwareConfig selects and tunes the device link.
type HardwareConfig struct {
	// Link is "udp" for the emulator link or "none" for a disconnected
	// engine (effects still evaluated, commands dropped).
	Link string `toml:"link"`
	Addr string `toml:"addr"`

	// MaxElevationSpeed is sent to the device once at startup, in
	// elevation units per second. 0 leaves the device default.
	MaxElevationSpeed float64 `toml:"max_elevation_speed"`
}

// TrackerConfig tunes the identity tracker loop.
type TrackerConfig struct {
	PeriodMS int `toml:"period_ms"`
}

// CaptureConfig tunes the capture and elevation pipeline.
type CaptureConfig struct {
	FastPeriodMS   int     `toml:"fast_period_ms"`
	IdlePeriodMS   int     `toml:"idle_period_ms"`
	KernelSize     int     `toml:"kernel_size"`
	Invert         bool    `toml:"invert"`
	ElevationScale float64 `toml:"elevation_scale"`
}

// WebConfig tunes the debug state feed.
type WebConfig struct {
	Enabled bool   `toml:"enabled"`
	Port    string `toml:"port"`
}

// HandlerSpec declares one handler: its kind, filter, and event-effect
// bindings.
type HandlerSpec struct {
	// Kind is "object" or "graphic" for object handlers, and
	// "global" or "screen_border" for global handlers.
	Kind string `toml:"kind"`

	Filter *FilterSpec `toml:"filter"`

	// Effects binds event names to effect lists. A list of more than
	// one effect becomes a sequential combo.
	Effects map[string][]EffectSpec `toml:"effects"`
}

// FilterSpec declares a filter tree.
type FilterSpec struct {
	// Kind: accept_all, roles, graphic, has_location, attribute, combo.
	Kind string `toml:"kind"`

	// roles
	Roles []string `toml:"roles"`

	// attribute
	Key   string `toml:"key"`
	Value string `toml:"value"`

	// combo
	Include []FilterSpec `toml:"include"`
	Exclude []FilterSpec `toml:"exclude"`
}

// EffectSpec declares one effect.
type EffectSpec struct {
	// Kind: vibration, elevation, elevation_offset, log.
	Kind string `toml:"kind"`

	// vibration
	Amplitude   float64 `toml:"amplitude"`
	FrequencyHz float64 `toml:"frequency_hz"`
	DurationMS  float64 `toml:"duration_ms"`

	// elevation / elevation_offset
	Value float64 `toml:"value"`
	Delta float64 `toml:"delta"`

	// log
	Message string `toml:"message"`
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates configuration bytes.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the built-in configuration, mirroring the shipped
// handler list: a graphic handler with enter/leave feedback and the
// screen border vibration pair.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Hardware: HardwareConfig{
			Link:              "udp",
			Addr:              "127.0.0.1:7421",
			MaxElevationSpeed: 1.0,
		},
		Tracker: TrackerConfig{PeriodMS: 10},
		Capture: CaptureConfig{
			FastPeriodMS:   10,
			IdlePeriodMS:   50,
			KernelSize:     7,
			ElevationScale: 0.5,
		},
		Web: WebConfig{Port: "8090"},
		ObjectHandlers: []HandlerSpec{
			{
				Kind: "graphic",
				Effects: map[string][]EffectSpec{
					"enter": {
						{Kind: "vibration", Amplitude: 0.1, FrequencyHz: 180, DurationMS: 1},
						{Kind: "log", Message: "pointer entered graphic"},
					},
					"leave": {
						{Kind: "elevation", Value: 0},
						{Kind: "vibration", Amplitude: 0.05, FrequencyHz: 80, DurationMS: 1},
						{Kind: "log", Message: "pointer left graphic"},
					},
				},
			},
		},
		GlobalHandlers: []HandlerSpec{
			{
				Kind: "screen_border",
				Effects: map[string][]EffectSpec{
					"border_enter": {
						{Kind: "vibration", Amplitude: 0.1, FrequencyHz: 200, DurationMS: 0},
					},
					"border_leave": {
						{Kind: "vibration", Amplitude: 0, FrequencyHz: 0, DurationMS: 0},
					},
				},
			},
		},
	}
}
