package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"airgraph/internal/config"
	"airgraph/internal/database"
)

const version = "0.1.0"

var configPath string

var rootCmd = &cobra.Command{
	Use:           "airgraph",
	Short:         "Aviation knowledge graph client and MCP server for Neo4j",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (YAML)")
	rootCmd.AddCommand(serveCmd(), seedCmd(), demoCmd(), archiveCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initLogger(cfg *config.Config) {
	var logLevel slog.Level
	switch cfg.Log.Level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	// The MCP server owns stdout for the stdio transport, so logs go to
	// stderr across all commands.
	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
}

// loadConfig loads configuration and initializes logging for a command run.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		os.Setenv("AIRGRAPH_CONFIG_PATH", configPath)
	}

	cfg, err := config.Load()
	if err != nil {
		// Use basic logging for config errors since logger isn't initialized yet
		basicLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		basicLogger.Error("Failed to load configuration", "error", err)
		return nil, err
	}

	initLogger(cfg)
	return cfg, nil
}

func openDB(ctx context.Context, cfg *config.Config) (*database.DB, error) {
	db, err := database.New(ctx, cfg.Neo4j.URI, cfg.Neo4j.Username, cfg.Neo4j.Password, cfg.Neo4j.Database)
	if err != nil {
		return nil, err
	}
	slog.Info("Connected to Neo4j", "uri", cfg.Neo4j.URI, "database", cfg.Neo4j.Database)
	return db, nil
}
