package sim

import (
	"encoding/json"
	"fmt"
	"os"

	"radar-sim/internal/telemetry"
)

// jsonlLog is one append-only JSON-lines file. A nil *jsonlLog discards.
type jsonlLog struct {
	f   *os.File
	enc *json.Encoder
}

func createLog(path string) (*jsonlLog, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return &jsonlLog{f: f, enc: json.NewEncoder(f)}, nil
}

func (l *jsonlLog) put(v any) error {
	if l == nil {
		return nil
	}
	return l.enc.Encode(v)
}

func (l *jsonlLog) close() error {
	if l == nil {
		return nil
	}
	return l.f.Close()
}

// FileWriter records a radar session as three JSONL logs: the periodic
// target track export, first-illumination detections and per-tick scope
// state. The track log is required; the other two are optional.
type FileWriter struct {
	tracks     *jsonlLog
	detections *jsonlLog
	state      *jsonlLog
}

// NewFileWriter opens the logs. An empty detectionPath or statePath
// disables that log.
func NewFileWriter(trackPath, detectionPath, statePath string) (*FileWriter, error) {
	if trackPath == "" {
		return nil, fmt.Errorf("track log path is required")
	}
	fw := &FileWriter{}
	var err error
	if fw.tracks, err = createLog(trackPath); err != nil {
		return nil, err
	}
	if fw.detections, err = createLog(detectionPath); err != nil {
		fw.Close()
		return nil, err
	}
	if fw.state, err = createLog(statePath); err != nil {
		fw.Close()
		return nil, err
	}
	return fw, nil
}

// Write appends one target track row.
func (f *FileWriter) Write(row telemetry.TargetRow) error {
	return f.tracks.put(row)
}

// WriteBatch appends the track rows of one export tick.
func (f *FileWriter) WriteBatch(rows []telemetry.TargetRow) error {
	for _, r := range rows {
		if err := f.tracks.put(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteDetection appends a first-illumination record.
func (f *FileWriter) WriteDetection(d telemetry.DetectionRow) error {
	return f.detections.put(d)
}

// WriteDetections appends the detections raised during one tick.
func (f *FileWriter) WriteDetections(rows []telemetry.DetectionRow) error {
	for _, d := range rows {
		if err := f.detections.put(d); err != nil {
			return err
		}
	}
	return nil
}

// WriteState appends a scope state row.
func (f *FileWriter) WriteState(row telemetry.SimulationStateRow) error {
	return f.state.put(row)
}

// Close closes all logs and returns the first error.
func (f *FileWriter) Close() error {
	var first error
	for _, l := range []*jsonlLog{f.tracks, f.detections, f.state} {
		if err := l.close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
