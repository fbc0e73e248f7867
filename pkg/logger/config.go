package logger

import (
	"github.com/phase2-labs/demo-api/internal/config"
)

// FromConfig derives the logger settings from the application configuration.
// Production gets JSON lines, everything else a human-readable console format.
func FromConfig(cfg *config.Config) *Config {
	loggerConfig := DefaultConfig()

	if cfg.LogLevel != "" {
		loggerConfig.Level = LogLevel(cfg.LogLevel)
	}

	if cfg.IsProduction() {
		loggerConfig.Format = FormatJSON
	} else {
		loggerConfig.Format = FormatConsole
	}

	loggerConfig.OutputPath = "stdout"

	return loggerConfig
}

func InitFromConfig(cfg *config.Config) error {
	return Init(FromConfig(cfg))
}
