package database

import (
	"context"
	"fmt"
)

// SchemaRelationship describes one outgoing relationship type observed on a
// label and the labels it points at.
type SchemaRelationship struct {
	Direction string   `json:"direction"`
	Labels    []string `json:"labels"`
}

// SchemaLabel summarizes one node label: how many nodes carry it, the
// property names with their Cypher value types sampled from real nodes, and
// its outgoing relationships.
type SchemaLabel struct {
	Count         int64                         `json:"count"`
	Properties    map[string]string             `json:"properties"`
	Relationships map[string]SchemaRelationship `json:"relationships,omitempty"`
}

// Schema maps node labels to their summaries. This is the payload served by
// the get_neo4j_schema MCP tool.
type Schema map[string]*SchemaLabel

// Schema introspects the database: label counts first, then per label a
// property sample of up to sampleSize nodes and the distinct outgoing
// relationship types. Property types come from Cypher's valueType().
func (r *GraphRepository) Schema(ctx context.Context, sampleSize int) (Schema, error) {
	if sampleSize <= 0 {
		sampleSize = 100
	}

	countQuery := `MATCH (n) UNWIND labels(n) AS label
RETURN label, count(*) AS count ORDER BY label`

	result, err := r.runner.Run(ctx, countQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count labels: %w", err)
	}

	schema := make(Schema, len(result.Records))
	for _, record := range result.Records {
		labelValue, ok := record.Get("label")
		if !ok {
			continue
		}
		label, ok := labelValue.(string)
		if !ok || !identRE.MatchString(label) {
			continue
		}

		entry := &SchemaLabel{Properties: make(map[string]string)}
		if countValue, ok := record.Get("count"); ok {
			entry.Count, _ = countValue.(int64)
		}

		if err := r.sampleProperties(ctx, label, sampleSize, entry); err != nil {
			return nil, err
		}
		if err := r.sampleRelationships(ctx, label, entry); err != nil {
			return nil, err
		}
		schema[label] = entry
	}

	return schema, nil
}

func (r *GraphRepository) sampleProperties(ctx context.Context, label string, sampleSize int, entry *SchemaLabel) error {
	// Labels cannot be parameterized; label passed the identifier check above.
	query := fmt.Sprintf(`MATCH (n:%s) WITH n LIMIT $sample_size
UNWIND keys(n) AS key
RETURN DISTINCT key, valueType(n[key]) AS type`, label)

	result, err := r.runner.Run(ctx, query, map[string]any{"sample_size": sampleSize})
	if err != nil {
		return fmt.Errorf("failed to sample properties of %s: %w", label, err)
	}

	for _, record := range result.Records {
		keyValue, ok := record.Get("key")
		if !ok {
			continue
		}
		key, ok := keyValue.(string)
		if !ok {
			continue
		}
		if typeValue, ok := record.Get("type"); ok {
			entry.Properties[key], _ = typeValue.(string)
		}
	}
	return nil
}

func (r *GraphRepository) sampleRelationships(ctx context.Context, label string, entry *SchemaLabel) error {
	query := fmt.Sprintf(`MATCH (n:%s)-[rel]->(m)
RETURN DISTINCT type(rel) AS rel_type, labels(m) AS target_labels`, label)

	result, err := r.runner.Run(ctx, query, nil)
	if err != nil {
		return fmt.Errorf("failed to sample relationships of %s: %w", label, err)
	}

	for _, record := range result.Records {
		typeValue, ok := record.Get("rel_type")
		if !ok {
			continue
		}
		relType, ok := typeValue.(string)
		if !ok {
			continue
		}

		rel := SchemaRelationship{Direction: "out"}
		if labelsValue, ok := record.Get("target_labels"); ok {
			if raw, ok := labelsValue.([]any); ok {
				for _, l := range raw {
					if s, ok := l.(string); ok {
						rel.Labels = append(rel.Labels, s)
					}
				}
			}
		}

		if entry.Relationships == nil {
			entry.Relationships = make(map[string]SchemaRelationship)
		}
		if existing, ok := entry.Relationships[relType]; ok {
			existing.Labels = append(existing.Labels, rel.Labels...)
			entry.Relationships[relType] = existing
		} else {
			entry.Relationships[relType] = rel
		}
	}
	return nil
}
