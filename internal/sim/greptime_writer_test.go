package sim

import (
	"context"
	"errors"
	"testing"
	"time"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"

	"radar-sim/internal/telemetry"
)

type mockGreptimeClient struct {
	table *table.Table
	err   error
}

func (m *mockGreptimeClient) Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error) {
	if len(tables) > 0 {
		m.table = tables[0]
	}
	return &gpb.GreptimeResponse{}, m.err
}

func TestGreptimeWriterTargets(t *testing.T) {
	ts := time.Unix(10, 0).UTC()
	rows := []telemetry.TargetRow{
		{Tick: 30, TargetID: "a1", Type: "UAV", Threat: "High", RangeKm: 42.5, Altitude: 5000, Detected: true, Timestamp: ts},
		{Tick: 30, TargetID: "b2", Type: "Civilian", Threat: "Low", Timestamp: ts},
	}
	m := &mockGreptimeClient{}
	w := &GreptimeDBWriter{client: m, targetTable: "radar_targets"}

	if err := w.WriteBatch(rows); err != nil {
		t.Fatalf("WriteBatch: %v", err)
	}
	if m.table == nil {
		t.Fatalf("expected table to be captured")
	}
	got := m.table.GetRows()
	if len(got.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(got.Rows))
	}
	if len(got.Schema) != 12 {
		t.Fatalf("schema length = %d, want 12", len(got.Schema))
	}
	if got.Schema[0].SemanticType != gpb.SemanticType_TAG {
		t.Fatalf("target_id should be a tag column")
	}
	first := got.Rows[0].Values
	if id := first[0].GetStringValue(); id != "a1" {
		t.Fatalf("target_id = %s, want a1", id)
	}
	if r := first[6].GetF64Value(); r != 42.5 {
		t.Fatalf("range_km = %f, want 42.5", r)
	}
	if alt := first[8].GetI64Value(); alt != 5000 {
		t.Fatalf("altitude = %d, want 5000", alt)
	}
	if !first[10].GetBoolValue() {
		t.Fatalf("detected should be true")
	}
}

func TestGreptimeWriterDetections(t *testing.T) {
	m := &mockGreptimeClient{}
	w := &GreptimeDBWriter{client: m, detectionTable: "radar_detections"}
	d := telemetry.DetectionRow{Tick: 4, TargetID: "c3", SweepDeg: 90, Timestamp: time.Unix(0, 0)}
	if err := w.WriteDetection(d); err != nil {
		t.Fatalf("WriteDetection: %v", err)
	}
	vals := m.table.GetRows().Rows[0].Values
	if vals[0].GetStringValue() != "c3" || vals[4].GetF64Value() != 90 {
		t.Fatalf("unexpected detection values %v", vals)
	}
}

func TestGreptimeWriterError(t *testing.T) {
	m := &mockGreptimeClient{err: errors.New("unavailable")}
	w := &GreptimeDBWriter{client: m, stateTable: "radar_state"}
	if err := w.WriteState(telemetry.SimulationStateRow{Tick: 1}); err == nil {
		t.Fatalf("expected error from client")
	}
}

func TestGreptimeWriterEmptyBatch(t *testing.T) {
	m := &mockGreptimeClient{}
	w := &GreptimeDBWriter{client: m, targetTable: "radar_targets"}
	if err := w.WriteBatch(nil); err != nil {
		t.Fatalf("WriteBatch(nil): %v", err)
	}
	if m.table != nil {
		t.Fatalf("empty batch should not reach the client")
	}
}
