package config

import "time"

// Default configuration values
const (
	// DefaultPort is the default HTTP server port
	DefaultPort = "8000"

	// DefaultEnvironment is the default deployment environment
	DefaultEnvironment = "development"

	// DefaultLogLevel is the default logging level
	DefaultLogLevel = "info"

	// DefaultConfigPath is where the YAML configuration is read from
	DefaultConfigPath = "configs/config.yaml"

	// DefaultShutdownTimeout bounds graceful shutdown of in-flight requests
	DefaultShutdownTimeout = 10 * time.Second

	// DefaultReadinessTimeout bounds a single readiness check run
	DefaultReadinessTimeout = 2 * time.Second

	// DefaultRedisPort is appended to REDIS_HOST when REDIS_PORT is unset
	DefaultRedisPort = "6379"
)

// Valid environment values
const (
	ValidEnvironmentDevelopment = "development"
	ValidEnvironmentProduction  = "production"
)

// Valid log level values
const (
	ValidLogLevelDebug = "debug"
	ValidLogLevelInfo  = "info"
	ValidLogLevelWarn  = "warn"
	ValidLogLevelError = "error"
)
