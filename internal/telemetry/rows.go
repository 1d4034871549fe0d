package telemetry

import (
	"math"
	"time"

	"radar-sim/internal/sweep"
	"radar-sim/internal/target"
)

// NewTargetRow converts a target into an export row. rangeKm scales the
// normalized distance to kilometres.
func NewTargetRow(tick int64, t target.Target, rangeKm float64, ts time.Time) TargetRow {
	return TargetRow{
		Tick:       tick,
		TargetID:   t.ID,
		Type:       string(t.Type),
		Threat:     string(t.ThreatLevel),
		X:          t.X,
		Y:          t.Y,
		RangeKm:    math.Hypot(t.X, t.Y) * rangeKm,
		BearingDeg: sweep.Degrees(sweep.Bearing(t.X, t.Y)),
		Altitude:   t.Altitude,
		Speed:      t.Speed,
		Detected:   t.Detected,
		Timestamp:  ts.UTC(),
	}
}

// NewDetectionRow records the beam at sweepAngle first catching t.
func NewDetectionRow(tick int64, t target.Target, sweepAngle, rangeKm float64, ts time.Time) DetectionRow {
	return DetectionRow{
		Tick:       tick,
		TargetID:   t.ID,
		Type:       string(t.Type),
		Threat:     string(t.ThreatLevel),
		SweepDeg:   sweep.Degrees(sweepAngle),
		BearingDeg: sweep.Degrees(sweep.Bearing(t.X, t.Y)),
		RangeKm:    math.Hypot(t.X, t.Y) * rangeKm,
		Timestamp:  ts.UTC(),
	}
}
