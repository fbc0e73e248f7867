package main

import (
	"flag"
	"fmt"
	"io"
	"runtime"
	"slices"
	"strings"

	"github.com/phase2-labs/demo-api/internal/config"
	"github.com/phase2-labs/demo-api/internal/version"
)

var (
	validEnvironments = []string{config.ValidEnvironmentDevelopment, config.ValidEnvironmentProduction}
	validLogLevels    = []string{config.ValidLogLevelDebug, config.ValidLogLevelInfo, config.ValidLogLevelWarn, config.ValidLogLevelError}
)

// ServerFlags holds all command-line flags of the server.
// Empty string values mean the flag was not given, so the
// environment and YAML configuration apply.
type ServerFlags struct {
	// HTTP server port number
	Port string
	// Deployment environment (development/production)
	Environment string
	// Logging verbosity level (debug/info/warn/error)
	LogLevel string
	// Path to the YAML configuration file
	ConfigPath string

	// Show help information and exit
	Help bool
	// Show version information and exit
	Version bool
}

// parseFlags parses args into a ServerFlags struct.
func parseFlags(args []string, output io.Writer) (*ServerFlags, error) {
	f := &ServerFlags{}
	fs := flag.NewFlagSet("demo-api", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&f.Port, "port", "",
		fmt.Sprintf("Server port number (default: %s)", config.DefaultPort))
	fs.StringVar(&f.Environment, "env", "",
		fmt.Sprintf("Deployment environment: %s (default: %s)",
			strings.Join(validEnvironments, ", "), config.DefaultEnvironment))
	fs.StringVar(&f.LogLevel, "log-level", "",
		fmt.Sprintf("Log level: %s (default: %s)",
			strings.Join(validLogLevels, ", "), config.DefaultLogLevel))
	fs.StringVar(&f.ConfigPath, "config", "",
		fmt.Sprintf("Path to the YAML configuration file (default: %s)", config.DefaultConfigPath))

	fs.BoolVar(&f.Help, "help", false, "Show help information and exit")
	fs.BoolVar(&f.Help, "h", false, "Show help information and exit (short form)")
	fs.BoolVar(&f.Version, "version", false, "Show version information and exit")
	fs.BoolVar(&f.Version, "v", false, "Show version information and exit (short form)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

// showHelp prints usage information.
func (f *ServerFlags) showHelp(w io.Writer) {
	fmt.Fprintf(w, "%s - %s\n", version.AppTitle, version.AppDescription)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "USAGE:")
	fmt.Fprintln(w, "  demo-api [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "FLAGS:")
	fmt.Fprintln(w, "    -port string")
	fmt.Fprintf(w, "          Server port (default: %s, env: PORT)\n", config.DefaultPort)
	fmt.Fprintln(w, "    -env string")
	fmt.Fprintf(w, "          Environment: %s (default: %s, env: ENVIRONMENT)\n",
		strings.Join(validEnvironments, ", "), config.DefaultEnvironment)
	fmt.Fprintln(w, "    -log-level string")
	fmt.Fprintf(w, "          Log level: %s (default: %s, env: LOG_LEVEL)\n",
		strings.Join(validLogLevels, ", "), config.DefaultLogLevel)
	fmt.Fprintln(w, "    -config string")
	fmt.Fprintf(w, "          YAML configuration file (default: %s)\n", config.DefaultConfigPath)
	fmt.Fprintln(w, "    -help, -h")
	fmt.Fprintln(w, "          Show this help information")
	fmt.Fprintln(w, "    -version, -v")
	fmt.Fprintln(w, "          Show version information")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "ENDPOINTS:")
	fmt.Fprintln(w, "  GET /               welcome message")
	fmt.Fprintln(w, "  GET /api/info       API descriptor")
	fmt.Fprintln(w, "  GET /health         liveness with uptime")
	fmt.Fprintln(w, "  GET /health/ready   readiness of configured dependencies")
	fmt.Fprintln(w, "  GET /metrics        Prometheus metrics")
}

// showVersion prints version and build information.
func (f *ServerFlags) showVersion(w io.Writer) {
	fmt.Fprintf(w, "%s %s\n", version.AppTitle, version.GetVersion())
	fmt.Fprintf(w, "Build info: %s\n", version.GetBuildInfo())
	fmt.Fprintf(w, "Go version: %s\n", runtime.Version())
}

// validate checks the flags that were given. Unset flags are left to the
// configuration loader.
func (f *ServerFlags) validate() error {
	if f.Environment != "" && !slices.Contains(validEnvironments, f.Environment) {
		return fmt.Errorf("invalid environment: %s (must be one of: %s)", f.Environment, strings.Join(validEnvironments, ", "))
	}
	if f.LogLevel != "" && !slices.Contains(validLogLevels, f.LogLevel) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", f.LogLevel, strings.Join(validLogLevels, ", "))
	}
	return nil
}

// GetPort returns the configured server port number.
func (f *ServerFlags) GetPort() string {
	return f.Port
}

// GetEnvironment returns the configured deployment environment.
func (f *ServerFlags) GetEnvironment() string {
	return f.Environment
}

// GetLogLevel returns the configured logging verbosity level.
func (f *ServerFlags) GetLogLevel() string {
	return f.LogLevel
}

// GetConfigPath returns the configuration file path.
func (f *ServerFlags) GetConfigPath() string {
	return f.ConfigPath
}
