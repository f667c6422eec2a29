package database

import (
	"context"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	neo4jdb "github.com/neo4j/neo4j-go-driver/v5/neo4j/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelate(t *testing.T) {
	runner := &stubRunner{}
	repo := NewGraphRepository(runner)

	err := repo.Relate(context.Background(),
		NodeRef{Label: "Aircraft", Key: "aircraft_id", Value: "AC1001"},
		"HAS_SYSTEM",
		NodeRef{Label: "System", Key: "system_id", Value: "AC1001-S01"},
	)
	require.NoError(t, err)

	assert.Contains(t, runner.query, "MATCH (a:Aircraft {aircraft_id: $from_value})")
	assert.Contains(t, runner.query, "MATCH (b:System {system_id: $to_value})")
	assert.Contains(t, runner.query, "MERGE (a)-[:HAS_SYSTEM]->(b)")
	assert.Equal(t, map[string]any{
		"from_value": "AC1001",
		"to_value":   "AC1001-S01",
	}, runner.params)
}

func TestRelate_InvalidIdentifier(t *testing.T) {
	runner := &stubRunner{}
	repo := NewGraphRepository(runner)

	err := repo.Relate(context.Background(),
		NodeRef{Label: "Aircraft) DETACH DELETE a //", Key: "aircraft_id", Value: "AC1001"},
		"HAS_SYSTEM",
		NodeRef{Label: "System", Key: "system_id", Value: "AC1001-S01"},
	)
	assert.Error(t, err)
	assert.Empty(t, runner.query)
}

func TestGraphQuery_Deduplicates(t *testing.T) {
	aircraft := neo4j.Node{
		ElementId: "node-1",
		Labels:    []string{"Aircraft"},
		Props:     map[string]any{"aircraft_id": "AC1001"},
	}
	system := neo4j.Node{
		ElementId: "node-2",
		Labels:    []string{"System"},
		Props:     map[string]any{"system_id": "AC1001-S01"},
	}
	edge := neo4j.Relationship{
		ElementId:      "edge-1",
		StartElementId: "node-1",
		EndElementId:   "node-2",
		Type:           "HAS_SYSTEM",
	}

	// The same aircraft and edge appear in both rows; only the second row's
	// system is new.
	records := []*neo4jdb.Record{
		{Keys: []string{"a", "r", "s"}, Values: []any{aircraft, edge, system}},
		{Keys: []string{"a", "r", "s"}, Values: []any{aircraft, edge, system}},
	}
	runner := &stubRunner{result: &neo4j.EagerResult{Records: records}}
	repo := NewGraphRepository(runner)

	graph, err := repo.Query(context.Background(), "MATCH (a)-[r]->(s) RETURN a, r, s", nil)
	require.NoError(t, err)

	assert.Len(t, graph.Nodes, 2)
	assert.Len(t, graph.Edges, 1)
	assert.Equal(t, "HAS_SYSTEM", graph.Edges[0].Type)
	assert.Equal(t, "node-1", graph.Edges[0].Source)
	assert.Equal(t, "node-2", graph.Edges[0].Target)
}

func TestGraphQuery_NotFound(t *testing.T) {
	runner := &stubRunner{}
	repo := NewGraphRepository(runner)

	graph, err := repo.Query(context.Background(), "MATCH (n:Nothing) RETURN n", nil)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, graph)
}

func TestGraphQuery_SkipsScalars(t *testing.T) {
	records := []*neo4jdb.Record{
		{Keys: []string{"count"}, Values: []any{int64(42)}},
	}
	runner := &stubRunner{result: &neo4j.EagerResult{Records: records}}
	repo := NewGraphRepository(runner)

	graph, err := repo.Query(context.Background(), "MATCH (n) RETURN count(n) AS count", nil)
	require.NoError(t, err)
	assert.Empty(t, graph.Nodes)
	assert.Empty(t, graph.Edges)
}
