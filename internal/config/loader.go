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
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if FUNDBOARD_CONFIG is set
//  3. env (prefix FUNDBOARD_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("FUNDBOARD_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%s: %v: %w", path, err, ErrLoadConfig)
		}
	}

	// Environment variables: FUNDBOARD_ADDR, FUNDBOARD_DATASET_URL, ...
	// Map env keys like FUNDBOARD_DATASET_URL -> dataset_url (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("FUNDBOARD_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "fundboard_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("env: %v: %w", err, ErrLoadConfig)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("unmarshal: %v: %w", err, ErrLoadConfig)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("addr must not be empty: %w", ErrInvalidConfig)
	case c.FetchTimeoutMS <= 0:
		return fmt.Errorf("fetch_timeout_ms must be positive: %w", ErrInvalidConfig)
	case c.RefreshIntervalMin < 0:
		return fmt.Errorf("refresh_interval_min must not be negative: %w", ErrInvalidConfig)
	case c.AusterityStart <= 0 || c.RecoveryStart <= c.AusterityStart:
		return fmt.Errorf("era boundaries must ascend: %w", ErrInvalidConfig)
	}
	return nil
}
