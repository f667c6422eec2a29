package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"AIRGRAPH_CONFIG_PATH",
		"NEO4J_URI", "NEO4J_USERNAME", "NEO4J_PASSWORD", "NEO4J_DATABASE",
		"COPILOT_MCP_NEO4J_URI", "COPILOT_MCP_NEO4J_PASSWORD",
		"AIRGRAPH_LOG_LEVEL", "AIRGRAPH_LOG_FORMAT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "bolt://localhost:7687", cfg.Neo4j.URI)
	assert.Equal(t, "neo4j", cfg.Neo4j.Username)
	assert.Equal(t, "neo4j", cfg.Neo4j.Database)
	assert.Equal(t, 500, cfg.Seed.BatchSize)
	assert.Equal(t, "readings.db", cfg.Archive.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoadDriverEnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("NEO4J_URI", "bolt://graph.example.com:7687")
	t.Setenv("NEO4J_USERNAME", "reader")
	t.Setenv("NEO4J_PASSWORD", "secret")
	t.Setenv("NEO4J_DATABASE", "fleet")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "bolt://graph.example.com:7687", cfg.Neo4j.URI)
	assert.Equal(t, "reader", cfg.Neo4j.Username)
	assert.Equal(t, "secret", cfg.Neo4j.Password)
	assert.Equal(t, "fleet", cfg.Neo4j.Database)
}

func TestLoadCopilotEnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("COPILOT_MCP_NEO4J_URI", "neo4j://agent.example.com:7687")
	t.Setenv("COPILOT_MCP_NEO4J_PASSWORD", "agent-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "neo4j://agent.example.com:7687", cfg.Neo4j.URI)
	assert.Equal(t, "agent-secret", cfg.Neo4j.Password)
}

func TestLoadPlainEnvWinsOverCopilot(t *testing.T) {
	clearEnv(t)
	t.Setenv("NEO4J_URI", "bolt://plain:7687")
	t.Setenv("COPILOT_MCP_NEO4J_URI", "bolt://copilot:7687")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "bolt://plain:7687", cfg.Neo4j.URI)
}

func TestLoadConfigFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `neo4j:
  uri: bolt://from-file:7687
  password: file-secret
log:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("AIRGRAPH_CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "bolt://from-file:7687", cfg.Neo4j.URI)
	assert.Equal(t, "file-secret", cfg.Neo4j.Password)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadInvalidLogLevel(t *testing.T) {
	clearEnv(t)
	t.Setenv("AIRGRAPH_LOG_LEVEL", "verbose")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestLoadInvalidLogFormat(t *testing.T) {
	clearEnv(t)
	t.Setenv("AIRGRAPH_LOG_FORMAT", "xml")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log format")
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Neo4j: Neo4jConfig{URI: "bolt://localhost:7687", Username: "neo4j", Database: "neo4j"},
			Seed:  SeedConfig{BatchSize: 100},
			Log:   LogConfig{Level: "info", Format: "text"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing uri", mutate: func(c *Config) { c.Neo4j.URI = "" }, wantErr: "neo4j.uri is required"},
		{name: "missing username", mutate: func(c *Config) { c.Neo4j.Username = "" }, wantErr: "neo4j.username is required"},
		{name: "missing database", mutate: func(c *Config) { c.Neo4j.Database = "" }, wantErr: "neo4j.database is required"},
		{name: "bad batch size", mutate: func(c *Config) { c.Seed.BatchSize = 0 }, wantErr: "seed.batch_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
