// Package archive keeps a local SQLite copy of sensor readings pulled from
// the graph, so time-series analysis can run offline without hammering
// Neo4j.
package archive

import (
	"database/sql"
	"fmt"

	"airgraph/internal/models"

	_ "github.com/mattn/go-sqlite3"
)

// Archive is a local SQLite store for sensor readings.
type Archive struct {
	db *sql.DB
}

// Open creates or opens the archive file and initializes its schema.
func Open(path string) (*Archive, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping archive: %w", err)
	}

	if err := tuneSQLite(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to tune archive: %w", err)
	}

	archive := &Archive{db: db}
	if err := archive.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize archive schema: %w", err)
	}

	return archive, nil
}

// tuneSQLite applies pragmas for fast batch writes on small hardware
func tuneSQLite(db *sql.DB) error {
	// WAL mode allows concurrent reads while a batch commit is in flight
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		return fmt.Errorf("failed to set synchronous mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA temp_store=MEMORY"); err != nil {
		return fmt.Errorf("failed to set temp_store: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return nil
}

// Close closes the archive file.
func (a *Archive) Close() error {
	return a.db.Close()
}

func (a *Archive) initSchema() error {
	schema := `CREATE TABLE IF NOT EXISTS readings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		reading_id TEXT NOT NULL,
		sensor_id TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		value REAL NOT NULL,
		archived_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(reading_id)
	);`

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_readings_sensor ON readings(sensor_id)`,
		`CREATE INDEX IF NOT EXISTS idx_readings_sensor_timestamp ON readings(sensor_id, timestamp)`,
	}

	if _, err := a.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create readings table: %w", err)
	}

	for _, idx := range indexes {
		if _, err := a.db.Exec(idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// InsertBatch archives readings in a single transaction. Readings whose
// reading_id is already archived are ignored, so re-exporting a sensor is
// safe.
func (a *Archive) InsertBatch(readings []*models.Reading) error {
	if len(readings) == 0 {
		return nil
	}

	tx, err := a.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO readings (
		reading_id, sensor_id, timestamp, value
	) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, reading := range readings {
		if _, err := stmt.Exec(
			reading.ReadingID,
			reading.SensorID,
			reading.Timestamp,
			reading.Value,
		); err != nil {
			return fmt.Errorf("failed to insert reading: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// CountBySensor returns how many readings are archived for a sensor.
func (a *Archive) CountBySensor(sensorID string) (int, error) {
	var count int
	err := a.db.QueryRow("SELECT count(*) FROM readings WHERE sensor_id = ?", sensorID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count readings: %w", err)
	}
	return count, nil
}

// ReadingsBySensor returns archived readings for a sensor, newest first.
func (a *Archive) ReadingsBySensor(sensorID string, limit int) ([]*models.Reading, error) {
	rows, err := a.db.Query(`SELECT reading_id, sensor_id, timestamp, value
		FROM readings WHERE sensor_id = ?
		ORDER BY timestamp DESC LIMIT ?`, sensorID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query readings: %w", err)
	}
	defer rows.Close()

	readings := make([]*models.Reading, 0, limit)
	for rows.Next() {
		reading := &models.Reading{}
		if err := rows.Scan(&reading.ReadingID, &reading.SensorID, &reading.Timestamp, &reading.Value); err != nil {
			return nil, fmt.Errorf("failed to scan reading: %w", err)
		}
		readings = append(readings, reading)
	}
	return readings, rows.Err()
}
