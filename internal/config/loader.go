package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/passnet/internal/domain/network"
)

// Environment variable names.
const (
	envPrefix = "PASSNET_"
	envFile   = "PASSNET_CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if PASSNET_CONFIG is set
//  3. env (prefix PASSNET_); list values are comma separated
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv(envFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// PASSNET_MAX_PASSES -> max_passes; underscores are kept to match the
	// flat koanf tags.
	envProvider := env.ProviderWithValue(envPrefix, ".", func(key, value string) (string, any) {
		key = strings.TrimPrefix(strings.ToLower(key), strings.ToLower(envPrefix))
		if key == "config" {
			return "", nil
		}
		switch key {
		case "strength_directions", "centralities":
			return key, splitList(value)
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	// Lists replace the defaults instead of merging element-wise.
	for key, field := range map[string]*[]string{
		"strength_directions": &cfg.StrengthDirections,
		"centralities":        &cfg.Centralities,
	} {
		if k.Exists(key) {
			*field = nil
		}
	}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges and metric names.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be positive", ErrInvalidConfig)
	case c.MaxPasses < 1:
		return fmt.Errorf("%w: max_passes must be positive", ErrInvalidConfig)
	case c.DistanceScale <= 0:
		return fmt.Errorf("%w: distance_scale must be positive", ErrInvalidConfig)
	case c.PitchLength <= 0 || c.PitchWidth <= 0:
		return fmt.Errorf("%w: pitch dimensions must be positive", ErrInvalidConfig)
	case c.LateralMinLengthM < 0:
		return fmt.Errorf("%w: lateral_min_length_m must not be negative", ErrInvalidConfig)
	}
	for _, d := range c.StrengthDirections {
		if _, err := network.ParseDirection(d); err != nil {
			return fmt.Errorf("%w: strength_directions: %w", ErrInvalidConfig, err)
		}
	}
	for _, kind := range c.Centralities {
		if _, err := network.ParseKind(kind); err != nil {
			return fmt.Errorf("%w: centralities: %w", ErrInvalidConfig, err)
		}
	}
	if _, err := network.ParseEdgeAttribute(c.WeightAttribute); err != nil {
		return fmt.Errorf("%w: weight_attribute: %w", ErrInvalidConfig, err)
	}
	if _, err := network.ParseEdgeAttribute(c.DistanceAttribute); err != nil {
		return fmt.Errorf("%w: distance_attribute: %w", ErrInvalidConfig, err)
	}
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
