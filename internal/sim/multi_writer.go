package sim

import "radar-sim/internal/telemetry"

// MultiWriter fans the simulator's three output streams out to several
// sinks: track rows, detections and scope state. Each stream has its own
// sink list, so a sink may subscribe to any subset. Delivery stops at the
// first sink error.
type MultiWriter struct {
	tracks     []TelemetryWriter
	detections []DetectionWriter
	state      []StateWriter
}

// NewMultiWriter returns a MultiWriter over the given per-stream sinks.
func NewMultiWriter(tracks []TelemetryWriter, detections []DetectionWriter, state []StateWriter) *MultiWriter {
	return &MultiWriter{tracks: tracks, detections: detections, state: state}
}

// Write delivers one track row.
func (mw *MultiWriter) Write(row telemetry.TargetRow) error {
	for _, w := range mw.tracks {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteBatch delivers the track rows of one export tick, handing the whole
// batch to sinks that accept batches.
func (mw *MultiWriter) WriteBatch(rows []telemetry.TargetRow) error {
	for _, w := range mw.tracks {
		if err := writeTracks(w, rows); err != nil {
			return err
		}
	}
	return nil
}

func writeTracks(w TelemetryWriter, rows []telemetry.TargetRow) error {
	if bw, ok := w.(batchWriter); ok {
		return bw.WriteBatch(rows)
	}
	for _, r := range rows {
		if err := w.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteDetection delivers one detection.
func (mw *MultiWriter) WriteDetection(row telemetry.DetectionRow) error {
	for _, w := range mw.detections {
		if err := w.WriteDetection(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteDetections delivers the detections of one tick.
func (mw *MultiWriter) WriteDetections(rows []telemetry.DetectionRow) error {
	for _, w := range mw.detections {
		if err := writeDetections(w, rows); err != nil {
			return err
		}
	}
	return nil
}

func writeDetections(w DetectionWriter, rows []telemetry.DetectionRow) error {
	if bw, ok := w.(batchDetectionWriter); ok {
		return bw.WriteDetections(rows)
	}
	for _, r := range rows {
		if err := w.WriteDetection(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteState delivers one scope state row.
func (mw *MultiWriter) WriteState(row telemetry.SimulationStateRow) error {
	for _, w := range mw.state {
		if err := w.WriteState(row); err != nil {
			return err
		}
	}
	return nil
}
