// Package tui implements the terminal radar dashboard.
package tui

import (
	"sync"

	"radar-sim/internal/telemetry"
)

const maxDetections = 8

// Writer collects simulator output for the dashboard. The simulator
// steps inside the program's update loop, so nothing here sends to the
// program; the model polls the writer every frame instead.
type Writer struct {
	mu    sync.Mutex
	queue []telemetry.DetectionRow
	admin bool
}

// NewWriter returns an empty writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write implements sim.TelemetryWriter. Target rows are already visible
// on screen, so they are dropped.
func (w *Writer) Write(telemetry.TargetRow) error { return nil }

// WriteDetection implements sim.DetectionWriter.
func (w *Writer) WriteDetection(d telemetry.DetectionRow) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.queue = append(w.queue, d)
	if len(w.queue) > maxDetections {
		w.queue = w.queue[len(w.queue)-maxDetections:]
	}
	return nil
}

// Drain returns and clears queued detections.
func (w *Writer) Drain() []telemetry.DetectionRow {
	w.mu.Lock()
	defer w.mu.Unlock()
	q := w.queue
	w.queue = nil
	return q
}

// SetAdminStatus updates the admin server indicator.
func (w *Writer) SetAdminStatus(active bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.admin = active
}

// AdminActive reports the last admin server status.
func (w *Writer) AdminActive() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.admin
}
