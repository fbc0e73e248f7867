package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/phase2-labs/demo-api/internal/config"
	"github.com/phase2-labs/demo-api/internal/server"
	"github.com/phase2-labs/demo-api/pkg/logger"

	"github.com/joho/godotenv"
)

// main is the entry point of the demo API server. It parses flags, loads
// .env and YAML configuration, initialises logging and serves HTTP until
// SIGINT or SIGTERM.
func main() {
	flags, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}
	if flags.Help {
		flags.showHelp(os.Stdout)
		return
	}
	if flags.Version {
		flags.showVersion(os.Stdout)
		return
	}
	if err := flags.validate(); err != nil {
		log.Fatalf("Invalid flags: %v", err)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.LoadWithFlags(flags)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.InitFromConfig(cfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Infof("Starting on port %s", cfg.Port)
	logger.Infof("Environment: %s", cfg.Environment)
	logger.Infof("Log level: %s", cfg.LogLevel)

	srv, err := server.New(cfg)
	if err != nil {
		logger.Fatalf("Failed to create server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx); err != nil {
		logger.Fatalf("Server failed: %v", err)
	}
	logger.Infof("Server stopped")
}
