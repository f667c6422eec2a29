package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"airgraph/internal/database"
	"airgraph/internal/models"
)

func demoCmd() *cobra.Command {
	var componentType string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run sample queries against the graph and print the results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd, componentType)
		},
	}
	cmd.Flags().StringVar(&componentType, "component-type", "Turbine", "Component type to search for across the fleet")
	return cmd
}

func runDemo(cmd *cobra.Command, componentType string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	aircraftRepo := database.NewAircraftRepository(db)
	systemRepo := database.NewSystemRepository(db)
	componentRepo := database.NewComponentRepository(db)

	printHeader("All Aircraft in Database")
	fleet, err := aircraftRepo.FindAll(ctx, 100)
	if err != nil {
		return err
	}
	fmt.Printf("Total aircraft: %d\n\n", len(fleet))
	for i, aircraft := range fleet {
		if i >= 10 {
			fmt.Printf("  ... and %d more\n", len(fleet)-10)
			break
		}
		fmt.Printf("  %-12s | %-10s | %-15s | %s\n",
			aircraft.TailNumber, aircraft.Manufacturer, aircraft.Model, aircraft.Operator)
	}
	fmt.Println()

	if len(fleet) > 0 {
		first := fleet[0]
		printHeader("Detailed View: Single Aircraft")
		fmt.Printf("Aircraft: %s\n", first.TailNumber)
		fmt.Printf("  Model: %s %s\n", first.Manufacturer, first.Model)
		fmt.Printf("  Operator: %s\n", first.Operator)
		fmt.Printf("  ICAO24: %s\n\n", first.ICAO24)

		systems, err := aircraftRepo.Systems(ctx, first.AircraftID)
		if err != nil {
			return err
		}
		fmt.Printf("Systems on %s:\n", first.TailNumber)
		for i, system := range systems {
			fmt.Printf("  %d. %s (%s)\n", i+1, system.Name, system.Type)
		}
		fmt.Println()

		if len(systems) > 0 {
			components, err := systemRepo.Components(ctx, systems[0].SystemID)
			if err != nil {
				return err
			}
			fmt.Printf("Components in %q:\n", systems[0].Name)
			for i, component := range components {
				fmt.Printf("  %d. %s - Type: %s\n", i+1, component.Name, component.Type)
			}
			fmt.Println()
		}
	}

	printHeader("Aircraft by Manufacturer")
	printManufacturerSummary(fleet)

	printHeader(fmt.Sprintf("Component Search: Find all %q components", componentType))
	matches, err := componentRepo.SearchByType(ctx, componentType, 100)
	if err != nil {
		return err
	}
	fmt.Printf("Found %d %s components\n\n", len(matches), componentType)
	for _, match := range matches {
		fmt.Printf("  %s: %s (%s)\n", match.AircraftTail, match.Component.Name, match.SystemName)
	}

	return nil
}

func printHeader(title string) {
	fmt.Println("============================================================")
	fmt.Println(title)
	fmt.Println("============================================================")
}

func printManufacturerSummary(fleet []*models.Aircraft) {
	byManufacturer := make(map[string][]*models.Aircraft)
	for _, aircraft := range fleet {
		byManufacturer[aircraft.Manufacturer] = append(byManufacturer[aircraft.Manufacturer], aircraft)
	}

	manufacturers := make([]string, 0, len(byManufacturer))
	for name := range byManufacturer {
		manufacturers = append(manufacturers, name)
	}
	sort.Strings(manufacturers)

	for _, name := range manufacturers {
		group := byManufacturer[name]
		fmt.Printf("%s: %d aircraft\n", name, len(group))
		for i, aircraft := range group {
			if i >= 3 {
				fmt.Printf("  ... and %d more\n", len(group)-3)
				break
			}
			fmt.Printf("  - %s (%s)\n", aircraft.TailNumber, aircraft.Model)
		}
	}
	fmt.Println()
}
