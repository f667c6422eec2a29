package database

import (
	"context"
	"fmt"

	"airgraph/internal/models"
)

// AircraftRepository issues the fixed Cypher templates for :Aircraft nodes.
type AircraftRepository struct {
	runner Runner
}

func NewAircraftRepository(runner Runner) *AircraftRepository {
	return &AircraftRepository{runner: runner}
}

// Create upserts an aircraft keyed by aircraft_id. Calling it twice with the
// same ID updates the node in place rather than duplicating it.
func (r *AircraftRepository) Create(ctx context.Context, aircraft *models.Aircraft) error {
	query := `MERGE (a:Aircraft {aircraft_id: $aircraft_id})
SET a.tail_number = $tail_number,
    a.icao24 = $icao24,
    a.model = $model,
    a.operator = $operator,
    a.manufacturer = $manufacturer
RETURN a`

	_, err := r.runner.Run(ctx, query, map[string]any{
		"aircraft_id":  aircraft.AircraftID,
		"tail_number":  aircraft.TailNumber,
		"icao24":       aircraft.ICAO24,
		"model":        aircraft.Model,
		"operator":     aircraft.Operator,
		"manufacturer": aircraft.Manufacturer,
	})
	if err != nil {
		return fmt.Errorf("failed to create aircraft: %w", err)
	}
	return nil
}

// FindByID returns the aircraft with the given ID, or nil if none exists.
func (r *AircraftRepository) FindByID(ctx context.Context, aircraftID string) (*models.Aircraft, error) {
	query := `MATCH (a:Aircraft {aircraft_id: $aircraft_id}) RETURN a`

	result, err := r.runner.Run(ctx, query, map[string]any{"aircraft_id": aircraftID})
	if err != nil {
		return nil, fmt.Errorf("failed to find aircraft: %w", err)
	}
	node, ok := singleNode(result, "a")
	if !ok {
		return nil, nil
	}
	return aircraftFromNode(node), nil
}

// FindByTailNumber returns the aircraft registered under the given tail
// number, or nil if none exists.
func (r *AircraftRepository) FindByTailNumber(ctx context.Context, tailNumber string) (*models.Aircraft, error) {
	query := `MATCH (a:Aircraft {tail_number: $tail_number}) RETURN a`

	result, err := r.runner.Run(ctx, query, map[string]any{"tail_number": tailNumber})
	if err != nil {
		return nil, fmt.Errorf("failed to find aircraft: %w", err)
	}
	node, ok := singleNode(result, "a")
	if !ok {
		return nil, nil
	}
	return aircraftFromNode(node), nil
}

// FindByICAO24 returns the aircraft with the given Mode-S hex address, or
// nil if none exists.
func (r *AircraftRepository) FindByICAO24(ctx context.Context, icao24 string) (*models.Aircraft, error) {
	query := `MATCH (a:Aircraft {icao24: $icao24}) RETURN a`

	result, err := r.runner.Run(ctx, query, map[string]any{"icao24": icao24})
	if err != nil {
		return nil, fmt.Errorf("failed to find aircraft: %w", err)
	}
	node, ok := singleNode(result, "a")
	if !ok {
		return nil, nil
	}
	return aircraftFromNode(node), nil
}

// FindByOperator returns every aircraft operated by the given airline.
func (r *AircraftRepository) FindByOperator(ctx context.Context, operator string) ([]*models.Aircraft, error) {
	query := `MATCH (a:Aircraft {operator: $operator}) RETURN a ORDER BY a.tail_number`

	result, err := r.runner.Run(ctx, query, map[string]any{"operator": operator})
	if err != nil {
		return nil, fmt.Errorf("failed to find aircraft: %w", err)
	}

	aircraft := make([]*models.Aircraft, 0, len(result.Records))
	for _, node := range collectNodes(result, "a") {
		aircraft = append(aircraft, aircraftFromNode(node))
	}
	return aircraft, nil
}

// FindAll returns up to limit aircraft ordered by tail number.
func (r *AircraftRepository) FindAll(ctx context.Context, limit int) ([]*models.Aircraft, error) {
	query := `MATCH (a:Aircraft) RETURN a ORDER BY a.tail_number LIMIT $limit`

	result, err := r.runner.Run(ctx, query, map[string]any{"limit": limit})
	if err != nil {
		return nil, fmt.Errorf("failed to find aircraft: %w", err)
	}

	aircraft := make([]*models.Aircraft, 0, len(result.Records))
	for _, node := range collectNodes(result, "a") {
		aircraft = append(aircraft, aircraftFromNode(node))
	}
	return aircraft, nil
}

// Delete removes the aircraft and any relationships attached to it. It
// reports whether a node was actually deleted.
func (r *AircraftRepository) Delete(ctx context.Context, aircraftID string) (bool, error) {
	query := `MATCH (a:Aircraft {aircraft_id: $aircraft_id})
DETACH DELETE a
RETURN count(a) AS deleted`

	result, err := r.runner.Run(ctx, query, map[string]any{"aircraft_id": aircraftID})
	if err != nil {
		return false, fmt.Errorf("failed to delete aircraft: %w", err)
	}
	if len(result.Records) == 0 {
		return false, nil
	}
	deleted, ok := result.Records[0].Get("deleted")
	if !ok {
		return false, nil
	}
	count, _ := deleted.(int64)
	return count > 0, nil
}

// Systems returns the systems reachable from the aircraft over HAS_SYSTEM,
// ordered by system name.
func (r *AircraftRepository) Systems(ctx context.Context, aircraftID string) ([]*models.System, error) {
	query := `MATCH (a:Aircraft {aircraft_id: $aircraft_id})-[:HAS_SYSTEM]->(s:System)
RETURN s ORDER BY s.name`

	result, err := r.runner.Run(ctx, query, map[string]any{"aircraft_id": aircraftID})
	if err != nil {
		return nil, fmt.Errorf("failed to find aircraft systems: %w", err)
	}

	systems := make([]*models.System, 0, len(result.Records))
	for _, node := range collectNodes(result, "s") {
		systems = append(systems, systemFromNode(node))
	}
	return systems, nil
}

// MaintenanceHistory returns up to limit maintenance events for the
// aircraft, newest first.
func (r *AircraftRepository) MaintenanceHistory(ctx context.Context, aircraftID string, limit int) ([]*models.MaintenanceEvent, error) {
	query := `MATCH (me:MaintenanceEvent {aircraft_id: $aircraft_id})
RETURN me ORDER BY me.reported_at DESC LIMIT $limit`

	result, err := r.runner.Run(ctx, query, map[string]any{
		"aircraft_id": aircraftID,
		"limit":       limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find maintenance history: %w", err)
	}

	events := make([]*models.MaintenanceEvent, 0, len(result.Records))
	for _, node := range collectNodes(result, "me") {
		events = append(events, maintenanceEventFromNode(node))
	}
	return events, nil
}

// Flights returns up to limit flights flown by the aircraft, most recently
// scheduled first.
func (r *AircraftRepository) Flights(ctx context.Context, aircraftID string, limit int) ([]*models.Flight, error) {
	query := `MATCH (f:Flight {aircraft_id: $aircraft_id})
RETURN f ORDER BY f.scheduled_departure DESC LIMIT $limit`

	result, err := r.runner.Run(ctx, query, map[string]any{
		"aircraft_id": aircraftID,
		"limit":       limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find flights: %w", err)
	}

	flights := make([]*models.Flight, 0, len(result.Records))
	for _, node := range collectNodes(result, "f") {
		flights = append(flights, flightFromNode(node))
	}
	return flights, nil
}
