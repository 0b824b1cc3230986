// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New(ctx) returns a Config populated with defaults.
// - Load(ctx) layers a YAML file and environment variables on top of them.
// - Validation errors wrap ErrInvalidConfig.
package config

import (
	"context"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// Workers bounds how many phases of a match are analyzed concurrently.
	Workers int `koanf:"workers"`

	// MaxPasses caps the number of passes or events accepted per request.
	MaxPasses int `koanf:"max_passes"`

	// DistanceScale is the numerator of distance = scale / intensity.
	DistanceScale float64 `koanf:"distance_scale"`

	// PitchLength and PitchWidth describe the provider's pitch coordinates.
	PitchLength float64 `koanf:"pitch_length"`
	PitchWidth  float64 `koanf:"pitch_width"`

	// LateralMinLengthM is the minimum length, in metres, of a lateral pass.
	LateralMinLengthM float64 `koanf:"lateral_min_length_m"`

	// StrengthDirections and Centralities are computed when a request does
	// not name its own metrics.
	StrengthDirections []string `koanf:"strength_directions"`
	Centralities       []string `koanf:"centralities"`

	// WeightAttribute and DistanceAttribute name the edge attributes read as
	// strength weight and shortest-path cost.
	WeightAttribute   string `koanf:"weight_attribute"`
	DistanceAttribute string `koanf:"distance_attribute"`
}

// New creates a Config with defaults. The StatsBomb pitch is 120x80 yards.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               ":9080",
		Workers:            4,
		MaxPasses:          20_000,
		DistanceScale:      10_000,
		PitchLength:        120,
		PitchWidth:         80,
		LateralMinLengthM:  12,
		StrengthDirections: []string{"in", "out", "total"},
		Centralities:       []string{"betweenness", "in-harmonic", "out-harmonic"},
		WeightAttribute:    "intensity",
		DistanceAttribute:  "distance",
	}
}
