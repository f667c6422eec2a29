package database

import (
	"context"
	"fmt"

	"airgraph/internal/models"
)

// AirportRepository issues the fixed Cypher templates for :Airport nodes.
type AirportRepository struct {
	runner Runner
}

func NewAirportRepository(runner Runner) *AirportRepository {
	return &AirportRepository{runner: runner}
}

// Create upserts an airport keyed by airport_id.
func (r *AirportRepository) Create(ctx context.Context, airport *models.Airport) error {
	query := `MERGE (ap:Airport {airport_id: $airport_id})
SET ap.name = $name,
    ap.iata = $iata,
    ap.icao = $icao,
    ap.city = $city,
    ap.country = $country,
    ap.lat = $lat,
    ap.lon = $lon
RETURN ap`

	_, err := r.runner.Run(ctx, query, map[string]any{
		"airport_id": airport.AirportID,
		"name":       airport.Name,
		"iata":       airport.IATA,
		"icao":       airport.ICAO,
		"city":       airport.City,
		"country":    airport.Country,
		"lat":        airport.Lat,
		"lon":        airport.Lon,
	})
	if err != nil {
		return fmt.Errorf("failed to create airport: %w", err)
	}
	return nil
}

// FindByID returns the airport with the given ID, or nil if none exists.
func (r *AirportRepository) FindByID(ctx context.Context, airportID string) (*models.Airport, error) {
	query := `MATCH (ap:Airport {airport_id: $airport_id}) RETURN ap`

	result, err := r.runner.Run(ctx, query, map[string]any{"airport_id": airportID})
	if err != nil {
		return nil, fmt.Errorf("failed to find airport: %w", err)
	}
	node, ok := singleNode(result, "ap")
	if !ok {
		return nil, nil
	}
	return airportFromNode(node), nil
}

// FindByIATA returns the airport with the given IATA code, or nil if none
// exists.
func (r *AirportRepository) FindByIATA(ctx context.Context, iata string) (*models.Airport, error) {
	query := `MATCH (ap:Airport {iata: $iata}) RETURN ap`

	result, err := r.runner.Run(ctx, query, map[string]any{"iata": iata})
	if err != nil {
		return nil, fmt.Errorf("failed to find airport: %w", err)
	}
	node, ok := singleNode(result, "ap")
	if !ok {
		return nil, nil
	}
	return airportFromNode(node), nil
}

// FindByCountry returns every airport in the given country.
func (r *AirportRepository) FindByCountry(ctx context.Context, country string) ([]*models.Airport, error) {
	query := `MATCH (ap:Airport {country: $country}) RETURN ap ORDER BY ap.iata`

	result, err := r.runner.Run(ctx, query, map[string]any{"country": country})
	if err != nil {
		return nil, fmt.Errorf("failed to find airports: %w", err)
	}

	airports := make([]*models.Airport, 0, len(result.Records))
	for _, node := range collectNodes(result, "ap") {
		airports = append(airports, airportFromNode(node))
	}
	return airports, nil
}

// FindAll returns up to limit airports ordered by IATA code.
func (r *AirportRepository) FindAll(ctx context.Context, limit int) ([]*models.Airport, error) {
	query := `MATCH (ap:Airport) RETURN ap ORDER BY ap.iata LIMIT $limit`

	result, err := r.runner.Run(ctx, query, map[string]any{"limit": limit})
	if err != nil {
		return nil, fmt.Errorf("failed to find airports: %w", err)
	}

	airports := make([]*models.Airport, 0, len(result.Records))
	for _, node := range collectNodes(result, "ap") {
		airports = append(airports, airportFromNode(node))
	}
	return airports, nil
}

// Departures returns up to limit flights departing from the airport over
// DEPARTS_FROM, most recently scheduled first.
func (r *AirportRepository) Departures(ctx context.Context, iata string, limit int) ([]*models.Flight, error) {
	query := `MATCH (f:Flight)-[:DEPARTS_FROM]->(ap:Airport {iata: $iata})
RETURN f ORDER BY f.scheduled_departure DESC LIMIT $limit`

	result, err := r.runner.Run(ctx, query, map[string]any{
		"iata":  iata,
		"limit": limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find departures: %w", err)
	}

	flights := make([]*models.Flight, 0, len(result.Records))
	for _, node := range collectNodes(result, "f") {
		flights = append(flights, flightFromNode(node))
	}
	return flights, nil
}

// Arrivals returns up to limit flights arriving at the airport over
// ARRIVES_AT, most recently scheduled first.
func (r *AirportRepository) Arrivals(ctx context.Context, iata string, limit int) ([]*models.Flight, error) {
	query := `MATCH (f:Flight)-[:ARRIVES_AT]->(ap:Airport {iata: $iata})
RETURN f ORDER BY f.scheduled_arrival DESC LIMIT $limit`

	result, err := r.runner.Run(ctx, query, map[string]any{
		"iata":  iata,
		"limit": limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find arrivals: %w", err)
	}

	flights := make([]*models.Flight, 0, len(result.Records))
	for _, node := range collectNodes(result, "f") {
		flights = append(flights, flightFromNode(node))
	}
	return flights, nil
}
