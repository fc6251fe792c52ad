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
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if SCORED_CONFIG is set
//  3. env (prefix SCORED_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("SCORED_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: SCORED_ADDR, SCORED_GATE_CAPACITY, ...
	// Map env keys like SCORED_GATE_CAPACITY -> gate_capacity (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("SCORED_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "scored_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate enforces the invariants startup relies on.
func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.Model != "identity" && c.Model != "linear" && c.Model != "cel":
		return fmt.Errorf("%w: unknown model kind %q", ErrInvalidConfig, c.Model)
	case c.Model == "cel" && strings.TrimSpace(c.ModelExpr) == "":
		return fmt.Errorf("%w: model_expr required for cel model", ErrInvalidConfig)
	case c.Model == "linear" && len(c.LinearWeights) == 0:
		return fmt.Errorf("%w: linear_weights required for linear model", ErrInvalidConfig)
	case c.PredictTimeoutMS <= 0:
		return fmt.Errorf("%w: predict_timeout_ms must be positive", ErrInvalidConfig)
	case c.GateCapacity <= 0:
		return fmt.Errorf("%w: gate_capacity must be positive", ErrInvalidConfig)
	case c.MaxFeatures <= 0:
		return fmt.Errorf("%w: max_features must be positive", ErrInvalidConfig)
	}
	return nil
}
