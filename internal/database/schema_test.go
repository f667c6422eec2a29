package database

import (
	"context"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	neo4jdb "github.com/neo4j/neo4j-go-driver/v5/neo4j/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// queueRunner replays one result per Run call, in order.
type queueRunner struct {
	results []*neo4j.EagerResult
	queries []string
}

func (q *queueRunner) Run(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error) {
	q.queries = append(q.queries, query)
	if len(q.results) == 0 {
		return &neo4j.EagerResult{}, nil
	}
	result := q.results[0]
	q.results = q.results[1:]
	return result, nil
}

func record(keys []string, values ...any) *neo4jdb.Record {
	return &neo4jdb.Record{Keys: keys, Values: values}
}

func TestSchema(t *testing.T) {
	counts := &neo4j.EagerResult{Records: []*neo4jdb.Record{
		record([]string{"label", "count"}, "Aircraft", int64(60)),
	}}
	properties := &neo4j.EagerResult{Records: []*neo4jdb.Record{
		record([]string{"key", "type"}, "aircraft_id", "STRING"),
		record([]string{"key", "type"}, "tail_number", "STRING"),
	}}
	relationships := &neo4j.EagerResult{Records: []*neo4jdb.Record{
		record([]string{"rel_type", "target_labels"}, "HAS_SYSTEM", []any{"System"}),
		record([]string{"rel_type", "target_labels"}, "OPERATES_FLIGHT", []any{"Flight"}),
	}}

	runner := &queueRunner{results: []*neo4j.EagerResult{counts, properties, relationships}}
	repo := NewGraphRepository(runner)

	schema, err := repo.Schema(context.Background(), 25)
	require.NoError(t, err)
	require.Contains(t, schema, "Aircraft")

	aircraft := schema["Aircraft"]
	assert.Equal(t, int64(60), aircraft.Count)
	assert.Equal(t, "STRING", aircraft.Properties["aircraft_id"])
	assert.Equal(t, "STRING", aircraft.Properties["tail_number"])

	require.Contains(t, aircraft.Relationships, "HAS_SYSTEM")
	assert.Equal(t, "out", aircraft.Relationships["HAS_SYSTEM"].Direction)
	assert.Equal(t, []string{"System"}, aircraft.Relationships["HAS_SYSTEM"].Labels)
	assert.Contains(t, aircraft.Relationships, "OPERATES_FLIGHT")

	// Label count query first, then one property and one relationship query
	// per label.
	require.Len(t, runner.queries, 3)
	assert.Contains(t, runner.queries[1], "MATCH (n:Aircraft)")
	assert.Contains(t, runner.queries[1], "$sample_size")
}

func TestSchema_Empty(t *testing.T) {
	runner := &queueRunner{}
	repo := NewGraphRepository(runner)

	schema, err := repo.Schema(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, schema)
}
