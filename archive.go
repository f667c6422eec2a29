package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"airgraph/internal/archive"
	"airgraph/internal/database"
)

func archiveCmd() *cobra.Command {
	var sensorIDs []string
	var systemID string
	var limit int
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Export sensor readings from the graph into a local SQLite archive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArchive(cmd, sensorIDs, systemID, limit, interval)
		},
	}
	cmd.Flags().StringArrayVar(&sensorIDs, "sensor", nil, "Sensor ID to archive (repeatable)")
	cmd.Flags().StringVar(&systemID, "system", "", "Archive every sensor of this system")
	cmd.Flags().IntVar(&limit, "limit", 1000, "Maximum readings fetched per sensor")
	cmd.Flags().DurationVar(&interval, "interval", 0, "Re-export on this interval until interrupted (0 runs once)")
	return cmd
}

func runArchive(cmd *cobra.Command, sensorIDs []string, systemID string, limit int, interval time.Duration) error {
	if len(sensorIDs) == 0 && systemID == "" {
		return fmt.Errorf("at least one --sensor or a --system is required")
	}

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

	if systemID != "" {
		sensors, err := database.NewSensorRepository(db).FindBySystem(ctx, systemID)
		if err != nil {
			return err
		}
		for _, sensor := range sensors {
			sensorIDs = append(sensorIDs, sensor.SensorID)
		}
	}
	if len(sensorIDs) == 0 {
		return fmt.Errorf("no sensors to archive")
	}

	store, err := archive.Open(cfg.Archive.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	exporter := archive.NewExporter(database.NewReadingRepository(db), store, limit)

	total, err := exporter.Export(ctx, sensorIDs)
	if err != nil {
		return err
	}
	slog.Info("Archive export complete", "sensors", len(sensorIDs), "readings", total, "path", cfg.Archive.Path)

	if interval <= 0 {
		return nil
	}

	// Watch mode: re-export on a fixed interval until interrupted.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("Watching for new readings", "interval", interval)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-sigChan:
			slog.Info("Received interrupt signal, shutting down...")
			return nil
		case <-ticker.C:
			total, err := exporter.Export(ctx, sensorIDs)
			if err != nil {
				slog.Error("Archive export failed", "error", err)
				continue
			}
			slog.Info("Archive export complete", "sensors", len(sensorIDs), "readings", total)
		}
	}
}
