package models

// Aircraft represents a single airframe in the fleet graph
// Fields correspond one-to-one to properties on the :Aircraft node
type Aircraft struct {
	AircraftID   string `json:"aircraft_id"`
	TailNumber   string `json:"tail_number"`
	ICAO24       string `json:"icao24"`
	Model        string `json:"model"`
	Operator     string `json:"operator"`
	Manufacturer string `json:"manufacturer"`
}

// System represents a major aircraft system (engine, hydraulics, avionics, ...)
type System struct {
	SystemID   string `json:"system_id"`
	AircraftID string `json:"aircraft_id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
}

// Component represents a part that belongs to a system
type Component struct {
	ComponentID string `json:"component_id"`
	SystemID    string `json:"system_id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
}

// Sensor represents a monitoring sensor attached to a system
type Sensor struct {
	SensorID string `json:"sensor_id"`
	SystemID string `json:"system_id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Unit     string `json:"unit"`
}

// Reading represents a single timestamped sensor measurement
type Reading struct {
	ReadingID string  `json:"reading_id"`
	SensorID  string  `json:"sensor_id"`
	Timestamp string  `json:"timestamp"`
	Value     float64 `json:"value"`
}

// MaintenanceEvent represents a reported fault and its corrective action
type MaintenanceEvent struct {
	EventID          string `json:"event_id"`
	AircraftID       string `json:"aircraft_id"`
	SystemID         string `json:"system_id"`
	ComponentID      string `json:"component_id"`
	Fault            string `json:"fault"`
	Severity         string `json:"severity"`
	CorrectiveAction string `json:"corrective_action"`
	ReportedAt       string `json:"reported_at"`
}

// Flight represents a scheduled flight operated by an aircraft
type Flight struct {
	FlightID           string `json:"flight_id"`
	FlightNumber       string `json:"flight_number"`
	AircraftID         string `json:"aircraft_id"`
	Operator           string `json:"operator"`
	Origin             string `json:"origin"`
	Destination        string `json:"destination"`
	ScheduledDeparture string `json:"scheduled_departure"`
	ScheduledArrival   string `json:"scheduled_arrival"`
}

// Airport represents an airport node with its IATA/ICAO codes and location
type Airport struct {
	AirportID string  `json:"airport_id"`
	Name      string  `json:"name"`
	IATA      string  `json:"iata"`
	ICAO      string  `json:"icao"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
}

// Delay represents a delay recorded against a flight
type Delay struct {
	DelayID  string `json:"delay_id"`
	FlightID string `json:"flight_id"`
	Cause    string `json:"cause"`
	Minutes  int64  `json:"minutes"`
}

// Relationship types used by the graph schema. All edges are directed.
const (
	RelHasSystem       = "HAS_SYSTEM"
	RelHasComponent    = "HAS_COMPONENT"
	RelHasSensor       = "HAS_SENSOR"
	RelHasEvent        = "HAS_EVENT"
	RelAffectsAircraft = "AFFECTS_AIRCRAFT"
	RelAffectsSystem   = "AFFECTS_SYSTEM"
	RelOperatesFlight  = "OPERATES_FLIGHT"
	RelDepartsFrom     = "DEPARTS_FROM"
	RelArrivesAt       = "ARRIVES_AT"
	RelHasDelay        = "HAS_DELAY"
)
