package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadDefaults verifies that Load applies the documented defaults
// when no environment variables are set.
func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, DefaultLogLevel, cfg.Server.LogLevel)
	assert.Equal(t, DefaultShutdownTimeoutSeconds, cfg.Server.ShutdownTimeoutSeconds)
	assert.Equal(t, 2, cfg.Analysis.MaxConcurrent)
}

// TestLoadFromEnvironment verifies that ADF_-prefixed environment
// variables override the defaults.
func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ADF_SERVER_PORT", "9090")
	t.Setenv("ADF_SERVER_LOG_LEVEL", "debug")
	t.Setenv("ADF_SERVER_SHUTDOWN_TIMEOUT_SECONDS", "30")
	t.Setenv("ADF_ANALYSIS_MAX_CONCURRENT", "4")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, 30, cfg.Server.ShutdownTimeoutSeconds)
	assert.Equal(t, 4, cfg.Analysis.MaxConcurrent)
}

// TestLoadMaxConcurrentShortForm verifies the short environment variable
// for the limiter setting.
func TestLoadMaxConcurrentShortForm(t *testing.T) {
	t.Setenv("ADF_MAX_CONCURRENT", "3")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Analysis.MaxConcurrent)
}

// TestLoadCanonicalFormWins verifies precedence when both spellings of
// the limiter setting are present.
func TestLoadCanonicalFormWins(t *testing.T) {
	t.Setenv("ADF_ANALYSIS_MAX_CONCURRENT", "5")
	t.Setenv("ADF_MAX_CONCURRENT", "3")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Analysis.MaxConcurrent)
}

// TestLoadValidation verifies that out-of-range values are rejected.
func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		valid bool
	}{
		{
			name:  "invalid port",
			env:   map[string]string{"ADF_SERVER_PORT": "70000"},
			valid: false,
		},
		{
			name:  "invalid log level",
			env:   map[string]string{"ADF_SERVER_LOG_LEVEL": "verbose"},
			valid: false,
		},
		{
			name:  "non-positive max concurrent",
			env:   map[string]string{"ADF_ANALYSIS_MAX_CONCURRENT": "0"},
			valid: false,
		},
		{
			name:  "valid overrides",
			env:   map[string]string{"ADF_SERVER_PORT": "8080", "ADF_ANALYSIS_MAX_CONCURRENT": "1"},
			valid: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for name, value := range tc.env {
				t.Setenv(name, value)
			}

			cfg, err := Load()
			if tc.valid {
				require.NoError(t, err)
				assert.NotNil(t, cfg)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid configuration")
			}
		})
	}
}
