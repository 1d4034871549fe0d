package stats

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"radar-sim/internal/sim"
	"radar-sim/internal/target"
)

func testSnapshot() sim.Snapshot {
	return sim.Snapshot{
		Tick: 42,
		Targets: []target.Target{
			{ID: "aaaa0001", Type: target.TypeUAV, Speed: 400, Altitude: 2000, ThreatLevel: target.ThreatHigh, Detected: true},
			{ID: "aaaa0002", Type: target.TypeCivilian, Speed: 800, Altitude: 4000, ThreatLevel: target.ThreatLow},
			{ID: "aaaa0003", Type: target.TypeUAV, Speed: 1200, Altitude: 6000, ThreatLevel: target.ThreatLow, Detected: true},
		},
	}
}

func TestSummarize(t *testing.T) {
	got := Summarize(testSnapshot())
	want := Summary{
		Tick:         42,
		Count:        3,
		Detected:     2,
		MeanSpeed:    800,
		MaxSpeed:     1200,
		MeanAltitude: 4000,
		StdAltitude:  math.Sqrt(8e6 / 3),
		ByThreat:     map[target.ThreatLevel]int{target.ThreatHigh: 1, target.ThreatLow: 2},
		ByType:       map[target.Type]int{target.TypeUAV: 2, target.TypeCivilian: 1},
	}
	approx := cmp.Comparer(func(a, b float64) bool { return math.Abs(a-b) < 1e-6 })
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	got := Summarize(sim.Snapshot{})
	if got.Count != 0 || got.MeanSpeed != 0 || got.MaxSpeed != 0 {
		t.Fatalf("unexpected summary for empty snapshot: %+v", got)
	}
}

func TestRenderPage(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderPage(&buf, testSnapshot()); err != nil {
		t.Fatalf("RenderPage: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Radar Statistics", "Velocity Matrix", "Altitude Profile", "aaaa0002"} {
		if !strings.Contains(out, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestRenderFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	if err := RenderFiles(dir, testSnapshot()); err != nil {
		t.Fatalf("RenderFiles: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, PageFile)); err != nil {
		t.Fatalf("stats page missing: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(dir, SummaryFile))
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	var s Summary
	if err := json.Unmarshal(b, &s); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if s.Count != 3 || s.ByThreat[target.ThreatLow] != 2 {
		t.Fatalf("unexpected summary %+v", s)
	}
}
