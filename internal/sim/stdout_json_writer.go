package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"radar-sim/internal/telemetry"
)

// JSONStdoutWriter prints rows as JSON lines to STDOUT.
type JSONStdoutWriter struct {
	out io.Writer
}

// NewJSONStdoutWriter creates a JSONStdoutWriter writing to os.Stdout.
func NewJSONStdoutWriter() *JSONStdoutWriter {
	return &JSONStdoutWriter{out: os.Stdout}
}

func (w *JSONStdoutWriter) emit(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w.out, string(data))
	return err
}

// Write outputs a target row in JSON format.
func (w *JSONStdoutWriter) Write(row telemetry.TargetRow) error {
	return w.emit(row)
}

// WriteDetection outputs a detection event in JSON format.
func (w *JSONStdoutWriter) WriteDetection(d telemetry.DetectionRow) error {
	return w.emit(d)
}

// WriteState outputs a simulation state row in JSON format.
func (w *JSONStdoutWriter) WriteState(row telemetry.SimulationStateRow) error {
	return w.emit(row)
}
