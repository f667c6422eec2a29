package archive

import (
	"context"
	"fmt"
	"log/slog"

	"airgraph/internal/models"
)

// ReadingSource is the slice of the graph layer the exporter needs.
type ReadingSource interface {
	FindBySensor(ctx context.Context, sensorID string, limit int) ([]*models.Reading, error)
}

// Exporter pulls readings for a set of sensors out of the graph and writes
// them to the archive in per-sensor batches.
type Exporter struct {
	source  ReadingSource
	archive *Archive
	limit   int // readings fetched per sensor
}

// NewExporter creates an exporter fetching up to limit readings per sensor.
func NewExporter(source ReadingSource, archive *Archive, limit int) *Exporter {
	if limit <= 0 {
		limit = 1000
	}
	return &Exporter{source: source, archive: archive, limit: limit}
}

// Export archives the readings of every listed sensor and returns the total
// number of readings fetched. Already-archived readings are skipped inside
// the archive, so repeated exports only add new data.
func (e *Exporter) Export(ctx context.Context, sensorIDs []string) (int, error) {
	total := 0
	for _, sensorID := range sensorIDs {
		readings, err := e.source.FindBySensor(ctx, sensorID, e.limit)
		if err != nil {
			return total, fmt.Errorf("failed to fetch readings for %s: %w", sensorID, err)
		}
		if len(readings) == 0 {
			continue
		}

		if err := e.archive.InsertBatch(readings); err != nil {
			return total, fmt.Errorf("failed to archive readings for %s: %w", sensorID, err)
		}

		total += len(readings)
		slog.Info("Archived sensor readings", "sensor_id", sensorID, "count", len(readings))
	}
	return total, nil
}
