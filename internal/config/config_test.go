package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "radar.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.InitialTargets != 5 || cfg.ScanSpeed != 0.02 || cfg.RangeKm != 200 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.Analysis.Debounce != 2*time.Second {
		t.Fatalf("debounce = %s", cfg.Analysis.Debounce)
	}
	if cfg.TickInterval() != time.Second/30 {
		t.Fatalf("tick interval = %s", cfg.TickInterval())
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
initial_targets: 12
range_km: 300
analysis:
  debounce: 500ms
telemetry:
  sink: file
  file: out.jsonl
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.InitialTargets != 12 || cfg.RangeKm != 300 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.ScanSpeed != 0.02 {
		t.Fatalf("scan speed default lost: %f", cfg.ScanSpeed)
	}
	if cfg.Analysis.Debounce != 500*time.Millisecond {
		t.Fatalf("debounce = %s", cfg.Analysis.Debounce)
	}
	if cfg.Analysis.Model == "" {
		t.Fatalf("nested default lost")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"scan speed": "scan_speed: 0.5\n",
		"range":      "range_km: 10\n",
		"sink":       "telemetry:\n  sink: kafka\n",
		"file sink":  "telemetry:\n  sink: file\n",
		"frame rate": "frame_rate: 0\n",
		"bad yaml":   "initial_targets: [\n",
	}
	for name, body := range cases {
		if _, err := Load(writeConfig(t, body)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil || !strings.Contains(err.Error(), "cannot read config") {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestAPIKey(t *testing.T) {
	t.Setenv("RADAR_TEST_KEY", "secret")
	a := Analysis{APIKeyEnv: "RADAR_TEST_KEY"}
	if a.APIKey() != "secret" {
		t.Fatalf("APIKey = %q", a.APIKey())
	}
	if (Analysis{}).APIKey() != "" {
		t.Fatalf("empty env name should yield no key")
	}
}

func TestLoadBundledConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "config", "radar.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *cfg != *Default() {
		t.Fatalf("bundled config drifted from defaults: %+v", cfg)
	}
}
