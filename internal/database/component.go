package database

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"airgraph/internal/models"
)

// ComponentRepository issues the fixed Cypher templates for :Component nodes.
type ComponentRepository struct {
	runner Runner
}

func NewComponentRepository(runner Runner) *ComponentRepository {
	return &ComponentRepository{runner: runner}
}

// ComponentMatch is one row of a fleet-wide component search, carrying the
// component together with the system and aircraft it belongs to.
type ComponentMatch struct {
	Component    *models.Component `json:"component"`
	SystemName   string            `json:"system_name"`
	AircraftTail string            `json:"aircraft_tail"`
}

// Create upserts a component keyed by component_id.
func (r *ComponentRepository) Create(ctx context.Context, component *models.Component) error {
	query := `MERGE (c:Component {component_id: $component_id})
SET c.system_id = $system_id,
    c.name = $name,
    c.type = $type
RETURN c`

	_, err := r.runner.Run(ctx, query, map[string]any{
		"component_id": component.ComponentID,
		"system_id":    component.SystemID,
		"name":         component.Name,
		"type":         component.Type,
	})
	if err != nil {
		return fmt.Errorf("failed to create component: %w", err)
	}
	return nil
}

// FindByID returns the component with the given ID, or nil if none exists.
func (r *ComponentRepository) FindByID(ctx context.Context, componentID string) (*models.Component, error) {
	query := `MATCH (c:Component {component_id: $component_id}) RETURN c`

	result, err := r.runner.Run(ctx, query, map[string]any{"component_id": componentID})
	if err != nil {
		return nil, fmt.Errorf("failed to find component: %w", err)
	}
	node, ok := singleNode(result, "c")
	if !ok {
		return nil, nil
	}
	return componentFromNode(node), nil
}

// FindBySystem returns every component that belongs to the given system.
func (r *ComponentRepository) FindBySystem(ctx context.Context, systemID string) ([]*models.Component, error) {
	query := `MATCH (c:Component {system_id: $system_id}) RETURN c ORDER BY c.name`

	result, err := r.runner.Run(ctx, query, map[string]any{"system_id": systemID})
	if err != nil {
		return nil, fmt.Errorf("failed to find components: %w", err)
	}

	components := make([]*models.Component, 0, len(result.Records))
	for _, node := range collectNodes(result, "c") {
		components = append(components, componentFromNode(node))
	}
	return components, nil
}

// SearchByType walks the Aircraft->System->Component chain and returns every
// component of the given type across the fleet, with its owning system and
// aircraft tail number.
func (r *ComponentRepository) SearchByType(ctx context.Context, componentType string, limit int) ([]*ComponentMatch, error) {
	query := `MATCH (a:Aircraft)-[:HAS_SYSTEM]->(s:System)-[:HAS_COMPONENT]->(c:Component {type: $type})
RETURN c, s.name AS system_name, a.tail_number AS aircraft_tail
ORDER BY a.tail_number, s.name, c.name
LIMIT $limit`

	result, err := r.runner.Run(ctx, query, map[string]any{
		"type":  componentType,
		"limit": limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search components: %w", err)
	}

	matches := make([]*ComponentMatch, 0, len(result.Records))
	for _, record := range result.Records {
		value, ok := record.Get("c")
		if !ok {
			continue
		}
		node, ok := value.(neo4j.Node)
		if !ok {
			continue
		}

		match := &ComponentMatch{Component: componentFromNode(node)}
		if v, ok := record.Get("system_name"); ok {
			match.SystemName, _ = v.(string)
		}
		if v, ok := record.Get("aircraft_tail"); ok {
			match.AircraftTail, _ = v.(string)
		}
		matches = append(matches, match)
	}
	return matches, nil
}
