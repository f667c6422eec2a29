package database

import (
	"context"
	"fmt"
	"regexp"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"airgraph/internal/models"
)

// identRE restricts labels, relationship types, and key properties to plain
// Cypher identifiers. These are interpolated into query text because Cypher
// does not allow them to be parameterized.
var identRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// NodeRef identifies a node by label and key property for relationship
// creation, e.g. {Label: "Aircraft", Key: "aircraft_id", Value: "AC1001"}.
type NodeRef struct {
	Label string
	Key   string
	Value any
}

// GraphRepository covers the cross-entity operations that do not belong to a
// single node label: relationship creation, raw graph queries, and schema
// introspection.
type GraphRepository struct {
	runner Runner
}

func NewGraphRepository(runner Runner) *GraphRepository {
	return &GraphRepository{runner: runner}
}

// Relate merges a directed relationship of the given type between two
// existing nodes. Both endpoints must already exist; if either MATCH misses,
// the query is a no-op.
func (r *GraphRepository) Relate(ctx context.Context, from NodeRef, relType string, to NodeRef) error {
	for _, ident := range []string{from.Label, from.Key, relType, to.Label, to.Key} {
		if !identRE.MatchString(ident) {
			return fmt.Errorf("invalid identifier %q", ident)
		}
	}

	query := fmt.Sprintf(`MATCH (a:%s {%s: $from_value})
MATCH (b:%s {%s: $to_value})
MERGE (a)-[:%s]->(b)`, from.Label, from.Key, to.Label, to.Key, relType)

	_, err := r.runner.Run(ctx, query, map[string]any{
		"from_value": from.Value,
		"to_value":   to.Value,
	})
	if err != nil {
		return fmt.Errorf("failed to create %s relationship: %w", relType, err)
	}
	return nil
}

// Query runs an arbitrary Cypher query and folds every node and relationship
// in the result into a de-duplicated GraphResult. Values that are neither
// nodes nor relationships are ignored. Returns ErrNotFound when the query
// yields zero records.
func (r *GraphRepository) Query(ctx context.Context, query string, params map[string]any) (*models.GraphResult, error) {
	result, err := r.runner.Run(ctx, query, params)
	if err != nil {
		return nil, err
	}
	if len(result.Records) == 0 {
		return nil, ErrNotFound
	}

	graph := &models.GraphResult{
		Nodes: make([]*models.GraphNode, 0),
		Edges: make([]*models.GraphEdge, 0),
	}
	seenNodes := make(map[string]bool)
	seenEdges := make(map[string]bool)

	for _, record := range result.Records {
		for _, value := range record.Values {
			switch v := value.(type) {
			case neo4j.Node:
				if seenNodes[v.ElementId] {
					continue
				}
				seenNodes[v.ElementId] = true
				graph.Nodes = append(graph.Nodes, &models.GraphNode{
					ID:         v.ElementId,
					Labels:     v.Labels,
					Properties: v.Props,
				})
			case neo4j.Relationship:
				if seenEdges[v.ElementId] {
					continue
				}
				seenEdges[v.ElementId] = true
				graph.Edges = append(graph.Edges, &models.GraphEdge{
					ID:         v.ElementId,
					Source:     v.StartElementId,
					Target:     v.EndElementId,
					Type:       v.Type,
					Properties: v.Props,
				})
			}
		}
	}

	return graph, nil
}
