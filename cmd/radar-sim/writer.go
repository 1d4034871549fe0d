package main

import (
	"fmt"

	"radar-sim/internal/config"
	"radar-sim/internal/sim"
)

// newSink builds the telemetry writer selected by c.Telemetry.Sink. The
// writer is nil for the none sink. cleanup releases any open files.
func newSink(c *config.Config) (sim.TelemetryWriter, func(), error) {
	cleanup := func() {}
	switch c.Telemetry.Sink {
	case "", config.SinkNone:
		return nil, cleanup, nil
	case config.SinkStdout:
		return sim.NewJSONStdoutWriter(), cleanup, nil
	case config.SinkColor:
		return sim.NewColorStdoutWriter(c), cleanup, nil
	case config.SinkFile:
		path := c.Telemetry.File
		fw, err := sim.NewFileWriter(path, path+".detections", path+".state")
		if err != nil {
			return nil, nil, fmt.Errorf("open telemetry file: %w", err)
		}
		return fw, func() { fw.Close() }, nil
	case config.SinkGreptime:
		w, err := sim.NewGreptimeDBWriter(c.Telemetry.Greptime)
		if err != nil {
			return nil, nil, fmt.Errorf("init GreptimeDB writer: %w", err)
		}
		return w, cleanup, nil
	default:
		return nil, nil, fmt.Errorf("unknown telemetry sink %q", c.Telemetry.Sink)
	}
}

// combine fans rows out to every non-nil writer. Detection and state
// rows go to the writers that accept them.
func combine(writers ...sim.TelemetryWriter) sim.TelemetryWriter {
	var (
		tws []sim.TelemetryWriter
		dws []sim.DetectionWriter
		sws []sim.StateWriter
	)
	for _, w := range writers {
		if w == nil {
			continue
		}
		tws = append(tws, w)
		if dw, ok := w.(sim.DetectionWriter); ok {
			dws = append(dws, dw)
		}
		if sw, ok := w.(sim.StateWriter); ok {
			sws = append(sws, sw)
		}
	}
	switch len(tws) {
	case 0:
		return nil
	case 1:
		return tws[0]
	}
	return sim.NewMultiWriter(tws, dws, sws)
}
