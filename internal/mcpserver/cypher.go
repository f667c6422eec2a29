package mcpserver

import (
	"context"
	"fmt"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// writeClauseRE matches Cypher clauses that mutate the graph, plus the
// common write procedures. The read tool rejects any query containing one of
// these, keyword casing aside.
var writeClauseRE = regexp.MustCompile(`(?i)\b(CREATE|MERGE|DELETE|DETACH|SET|REMOVE|DROP|FOREACH)\b` +
	`|\bLOAD\s+CSV\b` +
	`|\bCALL\s+(db\.create|apoc\.(create|merge|refactor|periodic))`)

// isWriteQuery reports whether the query contains a write clause.
func isWriteQuery(query string) bool {
	return writeClauseRE.MatchString(query)
}

func (s *Server) readCypher(ctx context.Context, req *mcp.CallToolRequest, params *CypherParams) (*mcp.CallToolResult, any, error) {
	if params.Query == "" {
		return nil, nil, fmt.Errorf("query is required")
	}
	if isWriteQuery(params.Query) {
		return nil, nil, fmt.Errorf("read_neo4j_cypher only accepts read queries; use write_neo4j_cypher for updates")
	}

	result, err := s.runner.Run(ctx, params.Query, params.Params)
	if err != nil {
		return nil, nil, err
	}
	return jsonResult(rowsFrom(result))
}

func (s *Server) writeCypher(ctx context.Context, req *mcp.CallToolRequest, params *CypherParams) (*mcp.CallToolResult, any, error) {
	if params.Query == "" {
		return nil, nil, fmt.Errorf("query is required")
	}

	result, err := s.runner.Run(ctx, params.Query, params.Params)
	if err != nil {
		return nil, nil, err
	}

	counters := map[string]int{}
	if result.Summary != nil {
		c := result.Summary.Counters()
		counters["nodes_created"] = c.NodesCreated()
		counters["nodes_deleted"] = c.NodesDeleted()
		counters["relationships_created"] = c.RelationshipsCreated()
		counters["relationships_deleted"] = c.RelationshipsDeleted()
		counters["properties_set"] = c.PropertiesSet()
		counters["labels_added"] = c.LabelsAdded()
	}
	return jsonResult(counters)
}

// rowsFrom flattens a buffered result into JSON-friendly rows, one map per
// record keyed by the query's return aliases.
func rowsFrom(result *neo4j.EagerResult) []map[string]any {
	rows := make([]map[string]any, 0, len(result.Records))
	for _, record := range result.Records {
		row := make(map[string]any, len(record.Keys))
		for i, key := range record.Keys {
			row[key] = jsonValue(record.Values[i])
		}
		rows = append(rows, row)
	}
	return rows
}

// jsonValue converts driver types into plain JSON shapes: nodes become their
// property maps, relationships keep their type alongside properties.
func jsonValue(value any) any {
	switch v := value.(type) {
	case neo4j.Node:
		return v.Props
	case neo4j.Relationship:
		return map[string]any{"type": v.Type, "properties": v.Props}
	case []any:
		converted := make([]any, len(v))
		for i, item := range v {
			converted[i] = jsonValue(item)
		}
		return converted
	default:
		return v
	}
}
