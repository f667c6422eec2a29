package database

import (
	"context"
	"fmt"

	"airgraph/internal/models"
)

// SystemRepository issues the fixed Cypher templates for :System nodes.
type SystemRepository struct {
	runner Runner
}

func NewSystemRepository(runner Runner) *SystemRepository {
	return &SystemRepository{runner: runner}
}

// Create upserts a system keyed by system_id.
func (r *SystemRepository) Create(ctx context.Context, system *models.System) error {
	query := `MERGE (s:System {system_id: $system_id})
SET s.aircraft_id = $aircraft_id,
    s.name = $name,
    s.type = $type
RETURN s`

	_, err := r.runner.Run(ctx, query, map[string]any{
		"system_id":   system.SystemID,
		"aircraft_id": system.AircraftID,
		"name":        system.Name,
		"type":        system.Type,
	})
	if err != nil {
		return fmt.Errorf("failed to create system: %w", err)
	}
	return nil
}

// FindByID returns the system with the given ID, or nil if none exists.
func (r *SystemRepository) FindByID(ctx context.Context, systemID string) (*models.System, error) {
	query := `MATCH (s:System {system_id: $system_id}) RETURN s`

	result, err := r.runner.Run(ctx, query, map[string]any{"system_id": systemID})
	if err != nil {
		return nil, fmt.Errorf("failed to find system: %w", err)
	}
	node, ok := singleNode(result, "s")
	if !ok {
		return nil, nil
	}
	return systemFromNode(node), nil
}

// FindByAircraft returns every system installed on the given aircraft.
func (r *SystemRepository) FindByAircraft(ctx context.Context, aircraftID string) ([]*models.System, error) {
	query := `MATCH (s:System {aircraft_id: $aircraft_id}) RETURN s ORDER BY s.name`

	result, err := r.runner.Run(ctx, query, map[string]any{"aircraft_id": aircraftID})
	if err != nil {
		return nil, fmt.Errorf("failed to find systems: %w", err)
	}

	systems := make([]*models.System, 0, len(result.Records))
	for _, node := range collectNodes(result, "s") {
		systems = append(systems, systemFromNode(node))
	}
	return systems, nil
}

// FindByType returns up to limit systems of the given type (Engine,
// Hydraulics, ...).
func (r *SystemRepository) FindByType(ctx context.Context, systemType string, limit int) ([]*models.System, error) {
	query := `MATCH (s:System {type: $type}) RETURN s LIMIT $limit`

	result, err := r.runner.Run(ctx, query, map[string]any{
		"type":  systemType,
		"limit": limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find systems: %w", err)
	}

	systems := make([]*models.System, 0, len(result.Records))
	for _, node := range collectNodes(result, "s") {
		systems = append(systems, systemFromNode(node))
	}
	return systems, nil
}

// Components returns the components reachable from the system over
// HAS_COMPONENT, ordered by component name.
func (r *SystemRepository) Components(ctx context.Context, systemID string) ([]*models.Component, error) {
	query := `MATCH (s:System {system_id: $system_id})-[:HAS_COMPONENT]->(c:Component)
RETURN c ORDER BY c.name`

	result, err := r.runner.Run(ctx, query, map[string]any{"system_id": systemID})
	if err != nil {
		return nil, fmt.Errorf("failed to find system components: %w", err)
	}

	components := make([]*models.Component, 0, len(result.Records))
	for _, node := range collectNodes(result, "c") {
		components = append(components, componentFromNode(node))
	}
	return components, nil
}

// Sensors returns the sensors reachable from the system over HAS_SENSOR.
func (r *SystemRepository) Sensors(ctx context.Context, systemID string) ([]*models.Sensor, error) {
	query := `MATCH (s:System {system_id: $system_id})-[:HAS_SENSOR]->(sn:Sensor)
RETURN sn ORDER BY sn.name`

	result, err := r.runner.Run(ctx, query, map[string]any{"system_id": systemID})
	if err != nil {
		return nil, fmt.Errorf("failed to find system sensors: %w", err)
	}

	sensors := make([]*models.Sensor, 0, len(result.Records))
	for _, node := range collectNodes(result, "sn") {
		sensors = append(sensors, sensorFromNode(node))
	}
	return sensors, nil
}
