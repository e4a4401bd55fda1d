package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stuartin/azenix-challenge/internal/types"
)

// Default returns a configuration with every default applied
func Default() *types.Config {
	var cfg types.Config
	cfg.Logging.Pretty = true
	validateConfig(&cfg)
	return &cfg
}

// LoadConfig reads the configuration from the given path. An empty path
// yields the defaults.
func LoadConfig(path string) (*types.Config, error) {
	if path == "" {
		return Default(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	cfg := Default()
	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := checkConfig(cfg); err != nil {
		return nil, err
	}
	validateConfig(cfg)
	return cfg, nil
}

// checkConfig rejects values that cannot be defaulted
func checkConfig(cfg *types.Config) error {
	switch cfg.Report.Format {
	case "", types.FormatText, types.FormatJSON:
	default:
		return fmt.Errorf("invalid report format %q (want text or json)", cfg.Report.Format)
	}
	if cfg.Report.Top < 0 {
		return fmt.Errorf("invalid report top %d (must not be negative)", cfg.Report.Top)
	}
	return nil
}

// validateConfig applies defaults
func validateConfig(cfg *types.Config) {
	if cfg.Input.Workers <= 0 {
		cfg.Input.Workers = 1
	}
	if cfg.Report.Top == 0 {
		cfg.Report.Top = 3
	}
	if cfg.Report.Format == "" {
		cfg.Report.Format = types.FormatText
	}
	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "warn"
	}
	if cfg.Logging.Service == "" {
		cfg.Logging.Service = "log-parse"
	}
}
