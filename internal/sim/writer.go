package sim

import "radar-sim/internal/telemetry"

// TelemetryWriter is an interface to support different output writers.
type TelemetryWriter interface {
	Write(telemetry.TargetRow) error
}

// Optional: Writers can also support batch mode
type batchWriter interface {
	WriteBatch([]telemetry.TargetRow) error
}

// DetectionWriter handles first-illumination events.
type DetectionWriter interface {
	WriteDetection(telemetry.DetectionRow) error
}

// Optional: Detection writers may support batch mode
type batchDetectionWriter interface {
	WriteDetections([]telemetry.DetectionRow) error
}

// StateWriter handles simulation state rows.
type StateWriter interface {
	WriteState(telemetry.SimulationStateRow) error
}
