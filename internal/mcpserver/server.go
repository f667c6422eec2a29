// Package mcpserver exposes the graph over the Model Context Protocol so
// agents can query Neo4j through tool calls instead of a direct driver
// connection. Three tools are served: get_neo4j_schema, read_neo4j_cypher,
// and write_neo4j_cypher.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"airgraph/internal/database"
)

// Server wraps an MCP server whose tools proxy Cypher to the database.
type Server struct {
	runner database.Runner
	graph  *database.GraphRepository
	mcp    *mcp.Server
}

// New builds the server and registers its tools. All queries go through the
// given runner, so the server works against the real DB or a stub alike.
func New(runner database.Runner, version string) *Server {
	s := &Server{
		runner: runner,
		graph:  database.NewGraphRepository(runner),
		mcp: mcp.NewServer(&mcp.Implementation{
			Name:    "airgraph",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

// Run serves MCP over the given transport until the context is cancelled or
// the peer disconnects.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	slog.Info("Starting MCP server", "tools", []string{
		"get_neo4j_schema", "read_neo4j_cypher", "write_neo4j_cypher",
	})
	return s.mcp.Run(ctx, transport)
}

// SchemaParams are the arguments of the get_neo4j_schema tool.
type SchemaParams struct {
	SampleSize int `json:"sample_size,omitempty" jsonschema:"Number of nodes per label to sample for property types (default 100)"`
}

// CypherParams are the arguments of the read/write Cypher tools.
type CypherParams struct {
	Query  string         `json:"query" jsonschema:"Cypher query to execute"`
	Params map[string]any `json:"params,omitempty" jsonschema:"Query parameters"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_neo4j_schema",
		Description: "Return node labels with counts, sampled property types, and outgoing relationships",
	}, s.getSchema)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "read_neo4j_cypher",
		Description: "Execute a read-only Cypher query and return the rows as JSON",
	}, s.readCypher)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "write_neo4j_cypher",
		Description: "Execute a write Cypher query and return the update counters",
	}, s.writeCypher)
}

func (s *Server) getSchema(ctx context.Context, req *mcp.CallToolRequest, params *SchemaParams) (*mcp.CallToolResult, any, error) {
	schema, err := s.graph.Schema(ctx, params.SampleSize)
	if err != nil {
		return nil, nil, err
	}
	return jsonResult(schema)
}

func jsonResult(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil, nil
}
