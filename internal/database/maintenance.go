package database

import (
	"context"
	"fmt"

	"airgraph/internal/models"
)

// MaintenanceEventRepository issues the fixed Cypher templates for
// :MaintenanceEvent nodes.
type MaintenanceEventRepository struct {
	runner Runner
}

func NewMaintenanceEventRepository(runner Runner) *MaintenanceEventRepository {
	return &MaintenanceEventRepository{runner: runner}
}

// Create upserts a maintenance event keyed by event_id.
func (r *MaintenanceEventRepository) Create(ctx context.Context, event *models.MaintenanceEvent) error {
	query := `MERGE (me:MaintenanceEvent {event_id: $event_id})
SET me.aircraft_id = $aircraft_id,
    me.system_id = $system_id,
    me.component_id = $component_id,
    me.fault = $fault,
    me.severity = $severity,
    me.corrective_action = $corrective_action,
    me.reported_at = $reported_at
RETURN me`

	_, err := r.runner.Run(ctx, query, map[string]any{
		"event_id":          event.EventID,
		"aircraft_id":       event.AircraftID,
		"system_id":         event.SystemID,
		"component_id":      event.ComponentID,
		"fault":             event.Fault,
		"severity":          event.Severity,
		"corrective_action": event.CorrectiveAction,
		"reported_at":       event.ReportedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to create maintenance event: %w", err)
	}
	return nil
}

// FindByID returns the event with the given ID, or nil if none exists.
func (r *MaintenanceEventRepository) FindByID(ctx context.Context, eventID string) (*models.MaintenanceEvent, error) {
	query := `MATCH (me:MaintenanceEvent {event_id: $event_id}) RETURN me`

	result, err := r.runner.Run(ctx, query, map[string]any{"event_id": eventID})
	if err != nil {
		return nil, fmt.Errorf("failed to find maintenance event: %w", err)
	}
	node, ok := singleNode(result, "me")
	if !ok {
		return nil, nil
	}
	return maintenanceEventFromNode(node), nil
}

// FindByAircraft returns up to limit events reported against the aircraft,
// newest first.
func (r *MaintenanceEventRepository) FindByAircraft(ctx context.Context, aircraftID string, limit int) ([]*models.MaintenanceEvent, error) {
	query := `MATCH (me:MaintenanceEvent {aircraft_id: $aircraft_id})
RETURN me ORDER BY me.reported_at DESC LIMIT $limit`

	result, err := r.runner.Run(ctx, query, map[string]any{
		"aircraft_id": aircraftID,
		"limit":       limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find maintenance events: %w", err)
	}

	events := make([]*models.MaintenanceEvent, 0, len(result.Records))
	for _, node := range collectNodes(result, "me") {
		events = append(events, maintenanceEventFromNode(node))
	}
	return events, nil
}

// FindBySeverity returns up to limit events with the given severity level
// (CRITICAL, MAJOR, MINOR, ...), newest first.
func (r *MaintenanceEventRepository) FindBySeverity(ctx context.Context, severity string, limit int) ([]*models.MaintenanceEvent, error) {
	query := `MATCH (me:MaintenanceEvent {severity: $severity})
RETURN me ORDER BY me.reported_at DESC LIMIT $limit`

	result, err := r.runner.Run(ctx, query, map[string]any{
		"severity": severity,
		"limit":    limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find maintenance events: %w", err)
	}

	events := make([]*models.MaintenanceEvent, 0, len(result.Records))
	for _, node := range collectNodes(result, "me") {
		events = append(events, maintenanceEventFromNode(node))
	}
	return events, nil
}
