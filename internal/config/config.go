package config

import (
	"fmt"
	"log/slog"
	"strings"

	"gemvault/internal/money"
	"gemvault/internal/sizing"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/text/currency"
)

// Prefix is prepended to every variable name, e.g. GEMVAULT_LOG_LEVEL.
const Prefix = "GEMVAULT"

// Config holds application configuration loaded from environment variables.
type Config struct {
	LogLevel        string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat       string `envconfig:"LOG_FORMAT" default:"text"`
	DefaultCurrency string `envconfig:"DEFAULT_CURRENCY" default:"USD"`
	DefaultRegion   string `envconfig:"DEFAULT_REGION" default:"US"`
	Output          string `envconfig:"OUTPUT" default:"text"`
}

// Load reads configuration from environment variables into a Config struct.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q: want text or json", c.LogFormat)
	}
	switch strings.ToLower(c.Output) {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("invalid output %q: want text, json or yaml", c.Output)
	}
	if _, err := c.Currency(); err != nil {
		return fmt.Errorf("invalid default currency: %w", err)
	}
	if _, err := c.Region(); err != nil {
		return fmt.Errorf("invalid default region: %w", err)
	}
	return nil
}

func (c *Config) Currency() (currency.Unit, error) {
	return money.ParseCurrency(c.DefaultCurrency)
}

func (c *Config) Region() (sizing.Region, error) {
	return sizing.ParseRegion(c.DefaultRegion)
}

// Level maps LogLevel to a slog level. Unknown names mean info.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
