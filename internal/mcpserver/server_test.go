package mcpserver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	neo4jdb "github.com/neo4j/neo4j-go-driver/v5/neo4j/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRunner struct {
	result *neo4j.EagerResult
	err    error
	query  string
	params map[string]any
	calls  int
}

func (s *stubRunner) Run(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error) {
	s.calls++
	s.query = query
	s.params = params
	if s.err != nil {
		return nil, s.err
	}
	if s.result == nil {
		return &neo4j.EagerResult{}, nil
	}
	return s.result, nil
}

func TestIsWriteQuery(t *testing.T) {
	tests := []struct {
		query string
		write bool
	}{
		{"MATCH (a:Aircraft) RETURN a", false},
		{"MATCH (a:Aircraft {operator: $op}) RETURN a.tail_number LIMIT 10", false},
		{"CREATE (a:Aircraft {aircraft_id: 'AC1'})", true},
		{"merge (a:Aircraft {aircraft_id: 'AC1'})", true},
		{"MATCH (a:Aircraft) DELETE a", true},
		{"MATCH (a:Aircraft) DETACH DELETE a", true},
		{"MATCH (a:Aircraft) SET a.operator = 'X'", true},
		{"MATCH (a:Aircraft) REMOVE a.operator", true},
		{"LOAD CSV FROM 'file:///x.csv' AS row RETURN row", true},
		{"DROP INDEX idx_aircraft", true},
		{"CALL apoc.create.node(['Aircraft'], {})", true},
		{"CALL db.labels()", false},
		// Property names containing keywords must not trip the guard.
		{"MATCH (a:Asset) RETURN a.created_at", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.write, isWriteQuery(tt.query))
		})
	}
}

func TestReadCypher_RejectsWriteQuery(t *testing.T) {
	runner := &stubRunner{}
	server := New(runner, "test")

	_, _, err := server.readCypher(context.Background(), nil, &CypherParams{
		Query: "CREATE (a:Aircraft {aircraft_id: 'AC1'})",
	})
	require.Error(t, err)
	assert.Zero(t, runner.calls, "write query must not reach the database")
}

func TestReadCypher_RequiresQuery(t *testing.T) {
	server := New(&stubRunner{}, "test")

	_, _, err := server.readCypher(context.Background(), nil, &CypherParams{})
	assert.Error(t, err)
}

func TestReadCypher_ReturnsRows(t *testing.T) {
	node := neo4j.Node{
		Labels: []string{"Aircraft"},
		Props:  map[string]any{"aircraft_id": "AC1001", "operator": "ExampleAir"},
	}
	runner := &stubRunner{result: &neo4j.EagerResult{
		Records: []*neo4jdb.Record{{
			Keys:   []string{"a", "total"},
			Values: []any{node, int64(1)},
		}},
	}}
	server := New(runner, "test")

	result, _, err := server.readCypher(context.Background(), nil, &CypherParams{
		Query:  "MATCH (a:Aircraft {operator: $op}) RETURN a, count(a) AS total",
		Params: map[string]any{"op": "ExampleAir"},
	})
	require.NoError(t, err)
	require.Len(t, result.Content, 1)

	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(text.Text), &rows))
	require.Len(t, rows, 1)

	aircraft, ok := rows[0]["a"].(map[string]any)
	require.True(t, ok, "node should serialize as its property map")
	assert.Equal(t, "AC1001", aircraft["aircraft_id"])
	assert.Equal(t, float64(1), rows[0]["total"])
	assert.Equal(t, map[string]any{"op": "ExampleAir"}, runner.params)
}

func TestWriteCypher_ReturnsCounters(t *testing.T) {
	// Summary cannot be fabricated without the driver internals; a nil
	// summary yields an empty counter map.
	runner := &stubRunner{result: &neo4j.EagerResult{}}
	server := New(runner, "test")

	result, _, err := server.writeCypher(context.Background(), nil, &CypherParams{
		Query: "MERGE (a:Aircraft {aircraft_id: $id})",
		Params: map[string]any{
			"id": "AC1001",
		},
	})
	require.NoError(t, err)
	require.Len(t, result.Content, 1)

	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)

	var counters map[string]int
	require.NoError(t, json.Unmarshal([]byte(text.Text), &counters))
	assert.Empty(t, counters)
	assert.Equal(t, 1, runner.calls)
}

func TestJSONValue(t *testing.T) {
	rel := neo4j.Relationship{Type: "HAS_SYSTEM", Props: map[string]any{"since": "2024"}}
	converted := jsonValue([]any{rel, "plain", int64(7)})

	list, ok := converted.([]any)
	require.True(t, ok)
	require.Len(t, list, 3)

	edge, ok := list[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "HAS_SYSTEM", edge["type"])
	assert.Equal(t, "plain", list[1])
	assert.Equal(t, int64(7), list[2])
}
