package sim

import (
	"context"
	"fmt"
	"time"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"

	"radar-sim/internal/config"
	"radar-sim/internal/telemetry"
)

const greptimeWriteTimeout = 5 * time.Second

// greptimeClient is the subset of the ingester client used by the writer.
type greptimeClient interface {
	Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error)
}

// GreptimeDBWriter writes telemetry to GreptimeDB via the ingester client
type GreptimeDBWriter struct {
	client         greptimeClient
	targetTable    string
	detectionTable string
	stateTable     string
}

// NewGreptimeDBWriter connects to GreptimeDB using cfg.
func NewGreptimeDBWriter(cfg config.Greptime) (*GreptimeDBWriter, error) {
	gcfg := greptime.NewConfig(cfg.Host).WithPort(cfg.Port).WithDatabase(cfg.Database)
	client, err := greptime.NewClient(gcfg)
	if err != nil {
		return nil, fmt.Errorf("greptime client: %w", err)
	}
	return &GreptimeDBWriter{
		client:         client,
		targetTable:    cfg.TargetTable,
		detectionTable: cfg.DetectionTable,
		stateTable:     cfg.StateTable,
	}, nil
}

func (w *GreptimeDBWriter) send(name string, tbl *table.Table) error {
	ctx, cancel := context.WithTimeout(context.Background(), greptimeWriteTimeout)
	defer cancel()
	if _, err := w.client.Write(ctx, tbl); err != nil {
		return fmt.Errorf("greptime write %s: %w", name, err)
	}
	return nil
}

// Write inserts a single target row.
func (w *GreptimeDBWriter) Write(row telemetry.TargetRow) error {
	return w.WriteBatch([]telemetry.TargetRow{row})
}

// WriteBatch inserts multiple target rows.
func (w *GreptimeDBWriter) WriteBatch(rows []telemetry.TargetRow) error {
	if len(rows) == 0 {
		return nil
	}
	tbl, err := table.New(w.targetTable)
	if err != nil {
		return err
	}
	tbl.AddTagColumn("target_id", types.STRING)
	tbl.AddTagColumn("type", types.STRING)
	tbl.AddTagColumn("threat", types.STRING)
	tbl.AddFieldColumn("tick", types.INT64)
	tbl.AddFieldColumn("x", types.FLOAT64)
	tbl.AddFieldColumn("y", types.FLOAT64)
	tbl.AddFieldColumn("range_km", types.FLOAT64)
	tbl.AddFieldColumn("bearing_deg", types.FLOAT64)
	tbl.AddFieldColumn("altitude", types.INT64)
	tbl.AddFieldColumn("speed", types.INT64)
	tbl.AddFieldColumn("detected", types.BOOLEAN)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)

	for _, r := range rows {
		if err := tbl.AddRow(r.TargetID, r.Type, r.Threat, r.Tick, r.X, r.Y, r.RangeKm, r.BearingDeg,
			int64(r.Altitude), int64(r.Speed), r.Detected, r.Timestamp); err != nil {
			return err
		}
	}
	return w.send(w.targetTable, tbl)
}

// WriteDetection inserts a single detection row.
func (w *GreptimeDBWriter) WriteDetection(d telemetry.DetectionRow) error {
	return w.WriteDetections([]telemetry.DetectionRow{d})
}

// WriteDetections inserts multiple detection rows.
func (w *GreptimeDBWriter) WriteDetections(rows []telemetry.DetectionRow) error {
	if len(rows) == 0 {
		return nil
	}
	tbl, err := table.New(w.detectionTable)
	if err != nil {
		return err
	}
	tbl.AddTagColumn("target_id", types.STRING)
	tbl.AddFieldColumn("type", types.STRING)
	tbl.AddFieldColumn("threat", types.STRING)
	tbl.AddFieldColumn("tick", types.INT64)
	tbl.AddFieldColumn("sweep_deg", types.FLOAT64)
	tbl.AddFieldColumn("bearing_deg", types.FLOAT64)
	tbl.AddFieldColumn("range_km", types.FLOAT64)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)

	for _, d := range rows {
		if err := tbl.AddRow(d.TargetID, d.Type, d.Threat, d.Tick, d.SweepDeg, d.BearingDeg, d.RangeKm, d.Timestamp); err != nil {
			return err
		}
	}
	return w.send(w.detectionTable, tbl)
}

// WriteState inserts a simulation state row.
func (w *GreptimeDBWriter) WriteState(row telemetry.SimulationStateRow) error {
	tbl, err := table.New(w.stateTable)
	if err != nil {
		return err
	}
	tbl.AddFieldColumn("tick", types.INT64)
	tbl.AddFieldColumn("sweep_deg", types.FLOAT64)
	tbl.AddFieldColumn("scanning", types.BOOLEAN)
	tbl.AddFieldColumn("scan_speed", types.FLOAT64)
	tbl.AddFieldColumn("range_km", types.FLOAT64)
	tbl.AddFieldColumn("targets", types.INT64)
	tbl.AddFieldColumn("detected", types.INT64)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)

	if err := tbl.AddRow(row.Tick, row.SweepDeg, row.Scanning, row.ScanSpeed, row.RangeKm,
		int64(row.Targets), int64(row.Detected), row.Timestamp); err != nil {
		return err
	}
	return w.send(w.stateTable, tbl)
}
