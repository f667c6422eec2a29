package database

import (
	"context"
	"fmt"

	"airgraph/internal/models"
)

// SensorRepository issues the fixed Cypher templates for :Sensor nodes.
type SensorRepository struct {
	runner Runner
}

func NewSensorRepository(runner Runner) *SensorRepository {
	return &SensorRepository{runner: runner}
}

// Create upserts a sensor keyed by sensor_id.
func (r *SensorRepository) Create(ctx context.Context, sensor *models.Sensor) error {
	query := `MERGE (sn:Sensor {sensor_id: $sensor_id})
SET sn.system_id = $system_id,
    sn.name = $name,
    sn.type = $type,
    sn.unit = $unit
RETURN sn`

	_, err := r.runner.Run(ctx, query, map[string]any{
		"sensor_id": sensor.SensorID,
		"system_id": sensor.SystemID,
		"name":      sensor.Name,
		"type":      sensor.Type,
		"unit":      sensor.Unit,
	})
	if err != nil {
		return fmt.Errorf("failed to create sensor: %w", err)
	}
	return nil
}

// FindByID returns the sensor with the given ID, or nil if none exists.
func (r *SensorRepository) FindByID(ctx context.Context, sensorID string) (*models.Sensor, error) {
	query := `MATCH (sn:Sensor {sensor_id: $sensor_id}) RETURN sn`

	result, err := r.runner.Run(ctx, query, map[string]any{"sensor_id": sensorID})
	if err != nil {
		return nil, fmt.Errorf("failed to find sensor: %w", err)
	}
	node, ok := singleNode(result, "sn")
	if !ok {
		return nil, nil
	}
	return sensorFromNode(node), nil
}

// FindBySystem returns every sensor attached to the given system.
func (r *SensorRepository) FindBySystem(ctx context.Context, systemID string) ([]*models.Sensor, error) {
	query := `MATCH (sn:Sensor {system_id: $system_id}) RETURN sn ORDER BY sn.name`

	result, err := r.runner.Run(ctx, query, map[string]any{"system_id": systemID})
	if err != nil {
		return nil, fmt.Errorf("failed to find sensors: %w", err)
	}

	sensors := make([]*models.Sensor, 0, len(result.Records))
	for _, node := range collectNodes(result, "sn") {
		sensors = append(sensors, sensorFromNode(node))
	}
	return sensors, nil
}

// Readings returns up to limit readings recorded by the sensor, newest
// first.
func (r *SensorRepository) Readings(ctx context.Context, sensorID string, limit int) ([]*models.Reading, error) {
	query := `MATCH (rd:Reading {sensor_id: $sensor_id})
RETURN rd ORDER BY rd.timestamp DESC LIMIT $limit`

	result, err := r.runner.Run(ctx, query, map[string]any{
		"sensor_id": sensorID,
		"limit":     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find sensor readings: %w", err)
	}

	readings := make([]*models.Reading, 0, len(result.Records))
	for _, node := range collectNodes(result, "rd") {
		readings = append(readings, readingFromNode(node))
	}
	return readings, nil
}

// ReadingRepository issues the fixed Cypher templates for :Reading nodes.
type ReadingRepository struct {
	runner Runner
}

func NewReadingRepository(runner Runner) *ReadingRepository {
	return &ReadingRepository{runner: runner}
}

// Create upserts a reading keyed by reading_id.
func (r *ReadingRepository) Create(ctx context.Context, reading *models.Reading) error {
	query := `MERGE (rd:Reading {reading_id: $reading_id})
SET rd.sensor_id = $sensor_id,
    rd.timestamp = $timestamp,
    rd.value = $value
RETURN rd`

	_, err := r.runner.Run(ctx, query, map[string]any{
		"reading_id": reading.ReadingID,
		"sensor_id":  reading.SensorID,
		"timestamp":  reading.Timestamp,
		"value":      reading.Value,
	})
	if err != nil {
		return fmt.Errorf("failed to create reading: %w", err)
	}
	return nil
}

// FindBySensor returns up to limit readings for the sensor, newest first.
func (r *ReadingRepository) FindBySensor(ctx context.Context, sensorID string, limit int) ([]*models.Reading, error) {
	query := `MATCH (rd:Reading {sensor_id: $sensor_id})
RETURN rd ORDER BY rd.timestamp DESC LIMIT $limit`

	result, err := r.runner.Run(ctx, query, map[string]any{
		"sensor_id": sensorID,
		"limit":     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find readings: %w", err)
	}

	readings := make([]*models.Reading, 0, len(result.Records))
	for _, node := range collectNodes(result, "rd") {
		readings = append(readings, readingFromNode(node))
	}
	return readings, nil
}

// Latest returns the most recent reading for the sensor, or nil if the
// sensor has no readings.
func (r *ReadingRepository) Latest(ctx context.Context, sensorID string) (*models.Reading, error) {
	query := `MATCH (rd:Reading {sensor_id: $sensor_id})
RETURN rd ORDER BY rd.timestamp DESC LIMIT 1`

	result, err := r.runner.Run(ctx, query, map[string]any{"sensor_id": sensorID})
	if err != nil {
		return nil, fmt.Errorf("failed to find latest reading: %w", err)
	}
	node, ok := singleNode(result, "rd")
	if !ok {
		return nil, nil
	}
	return readingFromNode(node), nil
}
