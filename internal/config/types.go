package config

import "time"

// Config represents the main application configuration structure.
// It is assembled from defaults, configs/config.yaml, environment
// variables and command-line flags, in increasing order of precedence.
type Config struct {
	// HTTP server port, 1-65535 (e.g., "8000")
	Port string `validate:"required,port"`

	// Application environment (e.g., "development", "production")
	Environment string `validate:"oneof=development production"`

	// Logging level (e.g., "info", "debug", "warn", "error")
	LogLevel string `validate:"oneof=debug info warn error"`

	// Maximum time to wait for in-flight requests on shutdown
	ShutdownTimeout time.Duration `validate:"gt=0"`

	// Maximum time a readiness check may take
	ReadinessTimeout time.Duration `validate:"gt=0"`

	// Optional dependency storage configuration
	Storage StorageConfig
}

// ServerConfig represents server-related configuration settings.
type ServerConfig struct {
	// HTTP server port (e.g., "8000")
	Port string `yaml:"port"`

	// Application environment (e.g., "development", "production")
	Environment string `yaml:"environment"`

	// Logging level (e.g., "info", "debug", "warn", "error")
	LogLevel string `yaml:"log_level"`

	// Graceful shutdown timeout as string (e.g., "10s")
	ShutdownTimeout string `yaml:"shutdown_timeout"`

	// Readiness check timeout as string (e.g., "2s")
	ReadinessTimeout string `yaml:"readiness_timeout"`
}

// StorageConfig holds configuration for external storage dependencies.
type StorageConfig struct {
	// Redis storage configuration
	Redis RedisYAMLConfig `yaml:"redis"`
}

// RedisYAMLConfig represents Redis configuration from YAML files.
type RedisYAMLConfig struct {
	// Whether the Redis dependency is enabled (true/false)
	Enabled bool `yaml:"enabled"`

	// Redis server address (e.g., "localhost:6379")
	Address string `yaml:"address" validate:"omitempty,hostname_port"`

	// Redis password for authentication
	Password string `yaml:"password"`

	// Redis database number (0-15)
	Database int `yaml:"database" validate:"min=0,max=15"`
}

// YAMLConfig represents the structure of the YAML configuration file.
type YAMLConfig struct {
	// Server configuration settings
	Server ServerConfig `yaml:"server"`

	// Storage configuration
	Storage StorageConfig `yaml:"storage"`
}
