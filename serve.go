package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"airgraph/internal/mcpserver"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server over stdio",
		Long: `Start an MCP server on stdin/stdout exposing three tools:
  - get_neo4j_schema:   node labels, counts, property types, relationships
  - read_neo4j_cypher:  read-only Cypher queries returning rows as JSON
  - write_neo4j_cypher: write Cypher queries returning update counters`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	server := mcpserver.New(db, version)
	return server.Run(ctx, &mcp.StdioTransport{})
}
