// Telemetry rows exported by the simulator
package telemetry

import "time"

// Default table names used when writing to GreptimeDB.
const (
	DefaultTargetTable    = "radar_targets"
	DefaultDetectionTable = "radar_detections"
	DefaultStateTable     = "radar_state"
)

// TargetRow is one periodic sample of a live target.
type TargetRow struct {
	Tick       int64     `json:"tick"`
	TargetID   string    `json:"target_id"` // TAG
	Type       string    `json:"type"`      // TAG
	Threat     string    `json:"threat"`    // TAG
	X          float64   `json:"x"`
	Y          float64   `json:"y"`
	RangeKm    float64   `json:"range_km"`
	BearingDeg float64   `json:"bearing_deg"`
	Altitude   int       `json:"altitude"`
	Speed      int       `json:"speed"`
	Detected   bool      `json:"detected"`
	Timestamp  time.Time `json:"ts"` // TIME INDEX
}

// DetectionRow is emitted the first time the beam illuminates a target.
type DetectionRow struct {
	Tick       int64     `json:"tick"`
	TargetID   string    `json:"target_id"` // TAG
	Type       string    `json:"type"`
	Threat     string    `json:"threat"`
	SweepDeg   float64   `json:"sweep_deg"`
	BearingDeg float64   `json:"bearing_deg"`
	RangeKm    float64   `json:"range_km"`
	Timestamp  time.Time `json:"ts"`
}
