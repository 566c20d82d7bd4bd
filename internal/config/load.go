package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/statforge/adf-api/internal/task"
)

// Default values applied when neither the environment nor a config file
// provides a setting.
const (
	DefaultPort                   = 2230
	DefaultLogLevel               = "info"
	DefaultShutdownTimeoutSeconds = 10
)

// Load configuration from environment variables and optionally a config
// file. Environment variables use the ADF_ prefix (ADF_SERVER_PORT,
// ADF_ANALYSIS_MAX_CONCURRENT) and take precedence over file values.
// Returns a populated Config struct or an error if loading or validation
// fails.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.log_level", DefaultLogLevel)
	v.SetDefault("server.shutdown_timeout_seconds", DefaultShutdownTimeoutSeconds)
	v.SetDefault("analysis.max_concurrent", task.DefaultMaxConcurrent)

	v.SetEnvPrefix("ADF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// ADF_MAX_CONCURRENT is the documented short form of the limiter
	// setting; the canonical ADF_ANALYSIS_MAX_CONCURRENT wins if both are
	// set.
	if err := v.BindEnv("analysis.max_concurrent", "ADF_ANALYSIS_MAX_CONCURRENT", "ADF_MAX_CONCURRENT"); err != nil {
		return nil, fmt.Errorf("failed to bind environment variable: %w", err)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine; defaults and environment cover everything.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
