package telemetry

import "time"

// SimulationStateRow captures scope-wide state at an export tick.
type SimulationStateRow struct {
	Tick      int64     `json:"tick"`
	SweepDeg  float64   `json:"sweep_deg"`
	Scanning  bool      `json:"scanning"`
	ScanSpeed float64   `json:"scan_speed"`
	RangeKm   float64   `json:"range_km"`
	Targets   int       `json:"targets"`
	Detected  int       `json:"detected"`
	Timestamp time.Time `json:"ts"`
}
