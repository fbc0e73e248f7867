package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Flags defines the interface for command-line flag access.
// Empty values mean "not set on the command line".
type Flags interface {
	GetPort() string
	GetEnvironment() string
	GetLogLevel() string
	GetConfigPath() string
}

// LoadWithFlags creates a new Config instance by loading configuration from
// YAML files and applying command-line flag overrides where appropriate.
//
// Configuration precedence (highest to lowest):
// 1. Command-line flags (for server settings only)
// 2. Environment variables
// 3. YAML configuration files
// 4. Default values
//
// The resulting configuration is validated before it is returned.
func LoadWithFlags(flgs Flags) (*Config, error) {
	path := DefaultConfigPath
	if flgs != nil && flgs.GetConfigPath() != "" {
		path = flgs.GetConfigPath()
	}

	yamlConfig, err := loadFromYAML(path)
	if err != nil {
		return nil, err
	}

	port := getEnv("PORT", yamlConfig.Server.Port)
	if port == "" {
		port = DefaultPort
	}
	if flgs != nil && flgs.GetPort() != "" {
		port = flgs.GetPort()
	}

	environment := getEnv("ENVIRONMENT", yamlConfig.Server.Environment)
	if environment == "" {
		environment = DefaultEnvironment
	}
	if flgs != nil && flgs.GetEnvironment() != "" {
		environment = flgs.GetEnvironment()
	}

	logLevel := getEnv("LOG_LEVEL", yamlConfig.Server.LogLevel)
	if logLevel == "" {
		logLevel = DefaultLogLevel
	}
	if flgs != nil && flgs.GetLogLevel() != "" {
		logLevel = flgs.GetLogLevel()
	}

	shutdownTimeout, err := parseDuration("shutdown_timeout",
		getEnv("SHUTDOWN_TIMEOUT", yamlConfig.Server.ShutdownTimeout), DefaultShutdownTimeout)
	if err != nil {
		return nil, err
	}

	readinessTimeout, err := parseDuration("readiness_timeout",
		getEnv("READINESS_TIMEOUT", yamlConfig.Server.ReadinessTimeout), DefaultReadinessTimeout)
	if err != nil {
		return nil, err
	}

	// Redis configuration - support environment variables
	redisConfig := yamlConfig.Storage.Redis
	redisHost := getEnv("REDIS_HOST", "")
	redisPort := getEnv("REDIS_PORT", "")
	redisPassword := getEnv("REDIS_PASSWORD", redisConfig.Password)

	redisAddress := redisConfig.Address
	if redisHost != "" && redisPort != "" {
		redisAddress = redisHost + ":" + redisPort
	} else if redisHost != "" {
		redisAddress = redisHost + ":" + DefaultRedisPort
	}

	cfg := &Config{
		Port:             port,
		Environment:      environment,
		LogLevel:         logLevel,
		ShutdownTimeout:  shutdownTimeout,
		ReadinessTimeout: readinessTimeout,
		Storage: StorageConfig{
			Redis: RedisYAMLConfig{
				Enabled:  redisConfig.Enabled,
				Address:  redisAddress,
				Password: redisPassword,
				Database: redisConfig.Database,
			},
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints and cross-field requirements.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Storage.Redis.Enabled && c.Storage.Redis.Address == "" {
		return errors.New("invalid configuration: storage.redis.address is required when redis is enabled")
	}
	return nil
}

// IsProduction reports whether the service runs in the production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == ValidEnvironmentProduction
}

// loadFromYAML reads the configuration file. A missing file is not an error.
func loadFromYAML(path string) (*YAMLConfig, error) {
	config := &YAMLConfig{}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return config, nil
}

func parseDuration(key, value string, fallback time.Duration) (time.Duration, error) {
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
