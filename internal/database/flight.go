package database

import (
	"context"
	"fmt"

	"airgraph/internal/models"
)

// FlightRepository issues the fixed Cypher templates for :Flight nodes.
type FlightRepository struct {
	runner Runner
}

func NewFlightRepository(runner Runner) *FlightRepository {
	return &FlightRepository{runner: runner}
}

// Create upserts a flight keyed by flight_id.
func (r *FlightRepository) Create(ctx context.Context, flight *models.Flight) error {
	query := `MERGE (f:Flight {flight_id: $flight_id})
SET f.flight_number = $flight_number,
    f.aircraft_id = $aircraft_id,
    f.operator = $operator,
    f.origin = $origin,
    f.destination = $destination,
    f.scheduled_departure = $scheduled_departure,
    f.scheduled_arrival = $scheduled_arrival
RETURN f`

	_, err := r.runner.Run(ctx, query, map[string]any{
		"flight_id":           flight.FlightID,
		"flight_number":       flight.FlightNumber,
		"aircraft_id":         flight.AircraftID,
		"operator":            flight.Operator,
		"origin":              flight.Origin,
		"destination":         flight.Destination,
		"scheduled_departure": flight.ScheduledDeparture,
		"scheduled_arrival":   flight.ScheduledArrival,
	})
	if err != nil {
		return fmt.Errorf("failed to create flight: %w", err)
	}
	return nil
}

// FindByID returns the flight with the given ID, or nil if none exists.
func (r *FlightRepository) FindByID(ctx context.Context, flightID string) (*models.Flight, error) {
	query := `MATCH (f:Flight {flight_id: $flight_id}) RETURN f`

	result, err := r.runner.Run(ctx, query, map[string]any{"flight_id": flightID})
	if err != nil {
		return nil, fmt.Errorf("failed to find flight: %w", err)
	}
	node, ok := singleNode(result, "f")
	if !ok {
		return nil, nil
	}
	return flightFromNode(node), nil
}

// FindByFlightNumber returns every flight operating under the given number.
// Flight numbers repeat across days, so this is a list lookup.
func (r *FlightRepository) FindByFlightNumber(ctx context.Context, flightNumber string) ([]*models.Flight, error) {
	query := `MATCH (f:Flight {flight_number: $flight_number})
RETURN f ORDER BY f.scheduled_departure DESC`

	result, err := r.runner.Run(ctx, query, map[string]any{"flight_number": flightNumber})
	if err != nil {
		return nil, fmt.Errorf("failed to find flights: %w", err)
	}

	flights := make([]*models.Flight, 0, len(result.Records))
	for _, node := range collectNodes(result, "f") {
		flights = append(flights, flightFromNode(node))
	}
	return flights, nil
}

// FindByAircraft returns up to limit flights flown by the aircraft, most
// recently scheduled first.
func (r *FlightRepository) FindByAircraft(ctx context.Context, aircraftID string, limit int) ([]*models.Flight, error) {
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

// FindByRoute returns up to limit flights between the two airports, matched
// on the denormalized origin/destination IATA codes.
func (r *FlightRepository) FindByRoute(ctx context.Context, origin, destination string, limit int) ([]*models.Flight, error) {
	query := `MATCH (f:Flight {origin: $origin, destination: $destination})
RETURN f LIMIT $limit`

	result, err := r.runner.Run(ctx, query, map[string]any{
		"origin":      origin,
		"destination": destination,
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

// Delays returns the delays recorded against the flight.
func (r *FlightRepository) Delays(ctx context.Context, flightID string) ([]*models.Delay, error) {
	query := `MATCH (d:Delay {flight_id: $flight_id}) RETURN d`

	result, err := r.runner.Run(ctx, query, map[string]any{"flight_id": flightID})
	if err != nil {
		return nil, fmt.Errorf("failed to find delays: %w", err)
	}

	delays := make([]*models.Delay, 0, len(result.Records))
	for _, node := range collectNodes(result, "d") {
		delays = append(delays, delayFromNode(node))
	}
	return delays, nil
}

// DelayRepository issues the fixed Cypher templates for :Delay nodes.
type DelayRepository struct {
	runner Runner
}

func NewDelayRepository(runner Runner) *DelayRepository {
	return &DelayRepository{runner: runner}
}

// Create upserts a delay keyed by delay_id.
func (r *DelayRepository) Create(ctx context.Context, delay *models.Delay) error {
	query := `MERGE (d:Delay {delay_id: $delay_id})
SET d.flight_id = $flight_id,
    d.cause = $cause,
    d.minutes = $minutes
RETURN d`

	_, err := r.runner.Run(ctx, query, map[string]any{
		"delay_id":  delay.DelayID,
		"flight_id": delay.FlightID,
		"cause":     delay.Cause,
		"minutes":   delay.Minutes,
	})
	if err != nil {
		return fmt.Errorf("failed to create delay: %w", err)
	}
	return nil
}

// FindByFlight returns the delays recorded against a flight.
func (r *DelayRepository) FindByFlight(ctx context.Context, flightID string) ([]*models.Delay, error) {
	query := `MATCH (d:Delay {flight_id: $flight_id}) RETURN d`

	result, err := r.runner.Run(ctx, query, map[string]any{"flight_id": flightID})
	if err != nil {
		return nil, fmt.Errorf("failed to find delays: %w", err)
	}

	delays := make([]*models.Delay, 0, len(result.Records))
	for _, node := range collectNodes(result, "d") {
		delays = append(delays, delayFromNode(node))
	}
	return delays, nil
}

// FindByCause returns up to limit delays with the given cause (Weather,
// Security, ...).
func (r *DelayRepository) FindByCause(ctx context.Context, cause string, limit int) ([]*models.Delay, error) {
	query := `MATCH (d:Delay {cause: $cause}) RETURN d LIMIT $limit`

	result, err := r.runner.Run(ctx, query, map[string]any{
		"cause": cause,
		"limit": limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find delays: %w", err)
	}

	delays := make([]*models.Delay, 0, len(result.Records))
	for _, node := range collectNodes(result, "d") {
		delays = append(delays, delayFromNode(node))
	}
	return delays, nil
}
