package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the client and its commands
type Config struct {
	Neo4j   Neo4jConfig
	Seed    SeedConfig
	Archive ArchiveConfig
	Log     LogConfig
}

// Neo4jConfig holds the Bolt connection settings
type Neo4jConfig struct {
	URI      string
	Username string
	Password string
	Database string
}

// SeedConfig holds the reference-data loader settings
type SeedConfig struct {
	AircraftCSV string
	AirportCSV  string
	BatchSize   int
}

// ArchiveConfig holds the local reading archive settings
type ArchiveConfig struct {
	Path string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from the config file and environment variables.
// Plain NEO4J_* variables and their COPILOT_MCP_* equivalents are honored in
// addition to the AIRGRAPH_ prefix.
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("neo4j.uri", "bolt://localhost:7687")
	v.SetDefault("neo4j.username", "neo4j")
	v.SetDefault("neo4j.database", "neo4j")
	v.SetDefault("seed.aircraft_csv", "datasets/aircraft.csv")
	v.SetDefault("seed.airport_csv", "datasets/airports.csv")
	v.SetDefault("seed.batch_size", 500)
	v.SetDefault("archive.path", "readings.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/airgraph")
	v.AddConfigPath(".")

	if configPath := os.Getenv("AIRGRAPH_CONFIG_PATH"); configPath != "" {
		v.SetConfigFile(configPath)
	}

	// Read config file (if it exists)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK - we'll use defaults + env vars
	}

	v.SetEnvPrefix("AIRGRAPH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The conventional driver variables win over the prefixed ones so the
	// client drops into environments already configured for other Neo4j
	// tooling (including the COPILOT_MCP_ agent path).
	for key, names := range map[string][]string{
		"neo4j.uri":      {"NEO4J_URI", "COPILOT_MCP_NEO4J_URI"},
		"neo4j.username": {"NEO4J_USERNAME", "COPILOT_MCP_NEO4J_USERNAME"},
		"neo4j.password": {"NEO4J_PASSWORD", "COPILOT_MCP_NEO4J_PASSWORD"},
		"neo4j.database": {"NEO4J_DATABASE", "COPILOT_MCP_NEO4J_DATABASE"},
	} {
		for _, name := range names {
			if value := os.Getenv(name); value != "" {
				v.Set(key, value)
				break
			}
		}
	}

	cfg := &Config{
		Neo4j: Neo4jConfig{
			URI:      v.GetString("neo4j.uri"),
			Username: v.GetString("neo4j.username"),
			Password: v.GetString("neo4j.password"),
			Database: v.GetString("neo4j.database"),
		},
		Seed: SeedConfig{
			AircraftCSV: v.GetString("seed.aircraft_csv"),
			AirportCSV:  v.GetString("seed.airport_csv"),
			BatchSize:   v.GetInt("seed.batch_size"),
		},
		Archive: ArchiveConfig{
			Path: v.GetString("archive.path"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// validate validates the configuration values
func validate(cfg *Config) error {
	if cfg.Neo4j.URI == "" {
		return fmt.Errorf("neo4j.uri is required")
	}

	if cfg.Neo4j.Username == "" {
		return fmt.Errorf("neo4j.username is required")
	}

	if cfg.Neo4j.Database == "" {
		return fmt.Errorf("neo4j.database is required")
	}

	if cfg.Seed.BatchSize <= 0 {
		return fmt.Errorf("seed.batch_size must be greater than 0")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[strings.ToLower(cfg.Log.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", cfg.Log.Level)
	}

	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[strings.ToLower(cfg.Log.Format)] {
		return fmt.Errorf("invalid log format: %s (must be text or json)", cfg.Log.Format)
	}

	return nil
}
