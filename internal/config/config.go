package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Analysis AnalysisConfig `mapstructure:"analysis" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"required,gt=0"`
}

// AnalysisConfig contains the settings of the background analysis runner.
type AnalysisConfig struct {
	// MaxConcurrent bounds how many file analyses run at the same time.
	// Submissions beyond the bound queue until a slot frees up.
	MaxConcurrent int `mapstructure:"max_concurrent" validate:"required,gt=0"`
}
