package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"radar-sim/internal/config"
	"radar-sim/internal/sim"
	"radar-sim/internal/telemetry"
	"radar-sim/internal/tui"
)

func TestNewSinkKinds(t *testing.T) {
	cases := []struct {
		sink  string
		check func(sim.TelemetryWriter) bool
	}{
		{config.SinkNone, func(w sim.TelemetryWriter) bool { return w == nil }},
		{config.SinkStdout, func(w sim.TelemetryWriter) bool { _, ok := w.(*sim.JSONStdoutWriter); return ok }},
		{config.SinkColor, func(w sim.TelemetryWriter) bool { _, ok := w.(*sim.ColorStdoutWriter); return ok }},
	}
	for _, c := range cases {
		cfg := config.Default()
		cfg.Telemetry.Sink = c.sink
		w, cleanup, err := newSink(cfg)
		if err != nil {
			t.Fatalf("%s: newSink returned error: %v", c.sink, err)
		}
		cleanup()
		if !c.check(w) {
			t.Fatalf("%s: unexpected writer %T", c.sink, w)
		}
	}

	cfg := config.Default()
	cfg.Telemetry.Sink = "kafka"
	if _, _, err := newSink(cfg); err == nil {
		t.Fatalf("expected error for unknown sink")
	}
}

func TestNewSinkFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "targets.jsonl")
	cfg := config.Default()
	cfg.Telemetry.Sink = config.SinkFile
	cfg.Telemetry.File = path

	w, cleanup, err := newSink(cfg)
	if err != nil {
		t.Fatalf("newSink returned error: %v", err)
	}
	fw, ok := w.(*sim.FileWriter)
	if !ok {
		t.Fatalf("expected *sim.FileWriter, got %T", w)
	}
	if err := fw.Write(telemetry.TargetRow{TargetID: "t1", Timestamp: time.Unix(0, 0).UTC()}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := fw.WriteDetection(telemetry.DetectionRow{TargetID: "t1"}); err != nil {
		t.Fatalf("write detection: %v", err)
	}
	cleanup()

	for _, p := range []string{path, path + ".detections", path + ".state"} {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("expected %s to exist: %v", p, err)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil || len(data) == 0 {
		t.Fatalf("telemetry file empty: %v", err)
	}
}

func TestCombine(t *testing.T) {
	if combine(nil, nil) != nil {
		t.Fatalf("combine of nils should be nil")
	}
	tw := tui.NewWriter()
	if got := combine(nil, tw); got != tw {
		t.Fatalf("single writer should pass through, got %T", got)
	}

	js := sim.NewJSONStdoutWriter()
	mw, ok := combine(js, tw).(*sim.MultiWriter)
	if !ok {
		t.Fatalf("expected *sim.MultiWriter")
	}
	if err := mw.WriteDetection(telemetry.DetectionRow{TargetID: "x"}); err != nil {
		t.Fatalf("write detection: %v", err)
	}
	if len(tw.Drain()) != 1 {
		t.Fatalf("detection not fanned out to the dashboard writer")
	}
}
