package config_test

import (
	"log/slog"
	"os"
	"testing"

	"gemvault/internal/config"
	"gemvault/internal/sizing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range []string{"LOG_LEVEL", "LOG_FORMAT", "DEFAULT_CURRENCY", "DEFAULT_REGION", "OUTPUT"} {
		t.Setenv(config.Prefix+"_"+key, "")
		os.Unsetenv(config.Prefix + "_" + key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnvVars(t)

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "text", cfg.Output)
	assert.Equal(t, slog.LevelInfo, cfg.Level())

	cur, err := cfg.Currency()
	require.NoError(t, err)
	assert.Equal(t, currency.USD, cur)

	region, err := cfg.Region()
	require.NoError(t, err)
	assert.Equal(t, sizing.US, region)
}

func TestLoad_EnvVarOverrides(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		assertFn func(t *testing.T, cfg *config.Config)
	}{
		{
			name:    "debug level",
			envVars: map[string]string{"GEMVAULT_LOG_LEVEL": "debug"},
			assertFn: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, slog.LevelDebug, cfg.Level())
			},
		},
		{
			name:    "json logs and yaml output",
			envVars: map[string]string{"GEMVAULT_LOG_FORMAT": "json", "GEMVAULT_OUTPUT": "yaml"},
			assertFn: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "json", cfg.LogFormat)
				assert.Equal(t, "yaml", cfg.Output)
			},
		},
		{
			name:    "lower-case currency",
			envVars: map[string]string{"GEMVAULT_DEFAULT_CURRENCY": "eur"},
			assertFn: func(t *testing.T, cfg *config.Config) {
				cur, err := cfg.Currency()
				require.NoError(t, err)
				assert.Equal(t, currency.EUR, cur)
			},
		},
		{
			name:    "region alias",
			envVars: map[string]string{"GEMVAULT_DEFAULT_REGION": "au"},
			assertFn: func(t *testing.T, cfg *config.Config) {
				region, err := cfg.Region()
				require.NoError(t, err)
				assert.Equal(t, sizing.UKAU, region)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnvVars(t)
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg, err := config.Load()
			require.NoError(t, err)
			tt.assertFn(t, cfg)
		})
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"log format": {"GEMVAULT_LOG_FORMAT": "xml"},
		"output":     {"GEMVAULT_OUTPUT": "csv"},
		"currency":   {"GEMVAULT_DEFAULT_CURRENCY": "ZZZZ"},
		"region":     {"GEMVAULT_DEFAULT_REGION": "mars"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnvVars(t)
			for k, v := range env {
				t.Setenv(k, v)
			}

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
