// Package seed loads aircraft and airport reference data from CSV files
// into the graph.
package seed

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"airgraph/internal/models"
)

// AircraftWriter is the slice of the graph layer the aircraft loader needs.
type AircraftWriter interface {
	Create(ctx context.Context, aircraft *models.Aircraft) error
}

// AirportWriter is the slice of the graph layer the airport loader needs.
type AirportWriter interface {
	Create(ctx context.Context, airport *models.Airport) error
}

// LoadAircraftCSV reads aircraft rows from the CSV file and upserts each one
// through the repository. Rows without a tail number are skipped; rows
// without an aircraft_id get a generated one. Returns the number of aircraft
// written.
func LoadAircraftCSV(ctx context.Context, path string, repo AircraftWriter) (int, error) {
	rows, headerMap, err := openCSV(path)
	if err != nil {
		return 0, err
	}
	defer rows.close()

	count := 0
	for {
		record, err := rows.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("failed to read CSV record from %s: %w", path, err)
		}

		aircraft := &models.Aircraft{
			AircraftID:   getField(record, headerMap, "aircraft_id"),
			TailNumber:   getField(record, headerMap, "tail_number"),
			ICAO24:       getField(record, headerMap, "icao24"),
			Model:        getField(record, headerMap, "model"),
			Operator:     getField(record, headerMap, "operator"),
			Manufacturer: getField(record, headerMap, "manufacturer"),
		}

		// Skip records without a tail number (invalid data)
		if aircraft.TailNumber == "" {
			continue
		}
		if aircraft.AircraftID == "" {
			aircraft.AircraftID = uuid.NewString()
		}

		if err := repo.Create(ctx, aircraft); err != nil {
			return count, fmt.Errorf("failed to seed aircraft %s: %w", aircraft.TailNumber, err)
		}
		count++
	}

	slog.Info("Seeded aircraft from CSV", "path", path, "count", count)
	return count, nil
}

// LoadAirportCSV reads airport rows from the CSV file and upserts each one
// through the repository. Rows without an IATA code are skipped; rows
// without an airport_id get a generated one. Returns the number of airports
// written.
func LoadAirportCSV(ctx context.Context, path string, repo AirportWriter) (int, error) {
	rows, headerMap, err := openCSV(path)
	if err != nil {
		return 0, err
	}
	defer rows.close()

	count := 0
	for {
		record, err := rows.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("failed to read CSV record from %s: %w", path, err)
		}

		airport := &models.Airport{
			AirportID: getField(record, headerMap, "airport_id"),
			Name:      getField(record, headerMap, "name"),
			IATA:      getField(record, headerMap, "iata"),
			ICAO:      getField(record, headerMap, "icao"),
			City:      getField(record, headerMap, "city"),
			Country:   getField(record, headerMap, "country"),
			Lat:       getFloatField(record, headerMap, "lat"),
			Lon:       getFloatField(record, headerMap, "lon"),
		}

		if airport.IATA == "" {
			continue
		}
		if airport.AirportID == "" {
			airport.AirportID = uuid.NewString()
		}

		if err := repo.Create(ctx, airport); err != nil {
			return count, fmt.Errorf("failed to seed airport %s: %w", airport.IATA, err)
		}
		count++
	}

	slog.Info("Seeded airports from CSV", "path", path, "count", count)
	return count, nil
}

type csvRows struct {
	file   *os.File
	reader *csv.Reader
	fields int
}

func openCSV(path string) (*csvRows, map[string]int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open CSV file %s: %w", path, err)
	}

	reader := csv.NewReader(file)
	reader.LazyQuotes = true    // Handle malformed quotes in CSV
	reader.FieldsPerRecord = -1 // Allow variable number of fields per record

	header, err := reader.Read()
	if err != nil {
		file.Close()
		return nil, nil, fmt.Errorf("failed to read CSV header from %s: %w", path, err)
	}

	headerMap := make(map[string]int, len(header))
	for i, h := range header {
		headerMap[strings.Trim(strings.TrimSpace(h), "'\"")] = i
	}

	return &csvRows{file: file, reader: reader, fields: len(header)}, headerMap, nil
}

// next returns the following record, skipping rows with a mismatched field
// count.
func (r *csvRows) next() ([]string, error) {
	for {
		record, err := r.reader.Read()
		if err != nil {
			return nil, err
		}
		if len(record) != r.fields {
			continue
		}
		return record, nil
	}
}

func (r *csvRows) close() {
	r.file.Close()
}

// getField safely retrieves a field from a CSV record by header name
func getField(record []string, headerMap map[string]int, fieldName string) string {
	if idx, ok := headerMap[fieldName]; ok && idx < len(record) {
		return strings.Trim(strings.TrimSpace(record[idx]), "'\"")
	}
	return ""
}

func getFloatField(record []string, headerMap map[string]int, fieldName string) float64 {
	value, err := strconv.ParseFloat(getField(record, headerMap, fieldName), 64)
	if err != nil {
		return 0
	}
	return value
}
