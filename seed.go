package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"airgraph/internal/database"
	"airgraph/internal/models"
	"airgraph/internal/seed"
)

func seedCmd() *cobra.Command {
	var aircraftCSV, airportCSV string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load aircraft and airport reference data from CSV into the graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, aircraftCSV, airportCSV)
		},
	}
	cmd.Flags().StringVar(&aircraftCSV, "aircraft-csv", "", "Path to the aircraft CSV (overrides config)")
	cmd.Flags().StringVar(&airportCSV, "airport-csv", "", "Path to the airport CSV (overrides config)")
	return cmd
}

func runSeed(cmd *cobra.Command, aircraftCSV, airportCSV string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if aircraftCSV == "" {
		aircraftCSV = cfg.Seed.AircraftCSV
	}
	if airportCSV == "" {
		airportCSV = cfg.Seed.AirportCSV
	}

	ctx := cmd.Context()
	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	aircraftRepo := database.NewAircraftRepository(db)
	airportRepo := database.NewAirportRepository(db)

	aircraftCount, err := seed.LoadAircraftCSV(ctx, aircraftCSV, aircraftRepo)
	if err != nil {
		return err
	}

	airportCount, err := seed.LoadAirportCSV(ctx, airportCSV, airportRepo)
	if err != nil {
		return err
	}

	linked, err := linkFlights(ctx, db)
	if err != nil {
		return err
	}

	slog.Info("Seed complete",
		"aircraft", aircraftCount,
		"airports", airportCount,
		"flight_links", linked,
	)
	return nil
}

// linkFlights wires existing flight nodes into the rest of the graph: each
// flight to its operating aircraft via OPERATES_FLIGHT, and to the airports
// seeded above via DEPARTS_FROM / ARRIVES_AT, matched on the denormalized
// ID and IATA properties carried on the flight node.
func linkFlights(ctx context.Context, db *database.DB) (int, error) {
	queries := []string{
		`MATCH (a:Aircraft)
MATCH (f:Flight {aircraft_id: a.aircraft_id})
MERGE (a)-[r:` + models.RelOperatesFlight + `]->(f)
RETURN count(r)`,
		`MATCH (f:Flight)
MATCH (ap:Airport {iata: f.origin})
MERGE (f)-[r:` + models.RelDepartsFrom + `]->(ap)
RETURN count(r)`,
		`MATCH (f:Flight)
MATCH (ap:Airport {iata: f.destination})
MERGE (f)-[r:` + models.RelArrivesAt + `]->(ap)
RETURN count(r)`,
	}

	linked := 0
	for _, query := range queries {
		result, err := db.Run(ctx, query, nil)
		if err != nil {
			return linked, fmt.Errorf("failed to link flights: %w", err)
		}
		if result.Summary != nil {
			linked += result.Summary.Counters().RelationshipsCreated()
		}
	}
	return linked, nil
}
