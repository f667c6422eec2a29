package database

import (
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"airgraph/internal/models"
)

// Node property getters. Missing or mistyped properties fall back to the
// zero value, matching the permissive reads the graph schema allows.

func stringProp(props map[string]any, key string) string {
	if v, ok := props[key].(string); ok {
		return v
	}
	return ""
}

func floatProp(props map[string]any, key string) float64 {
	switch v := props[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	}
	return 0
}

func intProp(props map[string]any, key string) int64 {
	switch v := props[key].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	}
	return 0
}

// singleNode extracts the node bound to alias from the first record, if any.
func singleNode(result *neo4j.EagerResult, alias string) (neo4j.Node, bool) {
	if len(result.Records) == 0 {
		return neo4j.Node{}, false
	}
	value, ok := result.Records[0].Get(alias)
	if !ok {
		return neo4j.Node{}, false
	}
	node, ok := value.(neo4j.Node)
	return node, ok
}

// collectNodes extracts the node bound to alias from every record, skipping
// records where the alias is absent or not a node.
func collectNodes(result *neo4j.EagerResult, alias string) []neo4j.Node {
	nodes := make([]neo4j.Node, 0, len(result.Records))
	for _, record := range result.Records {
		value, ok := record.Get(alias)
		if !ok {
			continue
		}
		if node, ok := value.(neo4j.Node); ok {
			nodes = append(nodes, node)
		}
	}
	return nodes
}

func aircraftFromNode(node neo4j.Node) *models.Aircraft {
	return &models.Aircraft{
		AircraftID:   stringProp(node.Props, "aircraft_id"),
		TailNumber:   stringProp(node.Props, "tail_number"),
		ICAO24:       stringProp(node.Props, "icao24"),
		Model:        stringProp(node.Props, "model"),
		Operator:     stringProp(node.Props, "operator"),
		Manufacturer: stringProp(node.Props, "manufacturer"),
	}
}

func systemFromNode(node neo4j.Node) *models.System {
	return &models.System{
		SystemID:   stringProp(node.Props, "system_id"),
		AircraftID: stringProp(node.Props, "aircraft_id"),
		Name:       stringProp(node.Props, "name"),
		Type:       stringProp(node.Props, "type"),
	}
}

func componentFromNode(node neo4j.Node) *models.Component {
	return &models.Component{
		ComponentID: stringProp(node.Props, "component_id"),
		SystemID:    stringProp(node.Props, "system_id"),
		Name:        stringProp(node.Props, "name"),
		Type:        stringProp(node.Props, "type"),
	}
}

func sensorFromNode(node neo4j.Node) *models.Sensor {
	return &models.Sensor{
		SensorID: stringProp(node.Props, "sensor_id"),
		SystemID: stringProp(node.Props, "system_id"),
		Name:     stringProp(node.Props, "name"),
		Type:     stringProp(node.Props, "type"),
		Unit:     stringProp(node.Props, "unit"),
	}
}

func readingFromNode(node neo4j.Node) *models.Reading {
	return &models.Reading{
		ReadingID: stringProp(node.Props, "reading_id"),
		SensorID:  stringProp(node.Props, "sensor_id"),
		Timestamp: stringProp(node.Props, "timestamp"),
		Value:     floatProp(node.Props, "value"),
	}
}

func maintenanceEventFromNode(node neo4j.Node) *models.MaintenanceEvent {
	return &models.MaintenanceEvent{
		EventID:          stringProp(node.Props, "event_id"),
		AircraftID:       stringProp(node.Props, "aircraft_id"),
		SystemID:         stringProp(node.Props, "system_id"),
		ComponentID:      stringProp(node.Props, "component_id"),
		Fault:            stringProp(node.Props, "fault"),
		Severity:         stringProp(node.Props, "severity"),
		CorrectiveAction: stringProp(node.Props, "corrective_action"),
		ReportedAt:       stringProp(node.Props, "reported_at"),
	}
}

func flightFromNode(node neo4j.Node) *models.Flight {
	return &models.Flight{
		FlightID:           stringProp(node.Props, "flight_id"),
		FlightNumber:       stringProp(node.Props, "flight_number"),
		AircraftID:         stringProp(node.Props, "aircraft_id"),
		Operator:           stringProp(node.Props, "operator"),
		Origin:             stringProp(node.Props, "origin"),
		Destination:        stringProp(node.Props, "destination"),
		ScheduledDeparture: stringProp(node.Props, "scheduled_departure"),
		ScheduledArrival:   stringProp(node.Props, "scheduled_arrival"),
	}
}

func airportFromNode(node neo4j.Node) *models.Airport {
	return &models.Airport{
		AirportID: stringProp(node.Props, "airport_id"),
		Name:      stringProp(node.Props, "name"),
		IATA:      stringProp(node.Props, "iata"),
		ICAO:      stringProp(node.Props, "icao"),
		City:      stringProp(node.Props, "city"),
		Country:   stringProp(node.Props, "country"),
		Lat:       floatProp(node.Props, "lat"),
		Lon:       floatProp(node.Props, "lon"),
	}
}

func delayFromNode(node neo4j.Node) *models.Delay {
	return &models.Delay{
		DelayID:  stringProp(node.Props, "delay_id"),
		FlightID: stringProp(node.Props, "flight_id"),
		Cause:    stringProp(node.Props, "cause"),
		Minutes:  intProp(node.Props, "minutes"),
	}
}
