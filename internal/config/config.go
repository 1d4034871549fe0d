// YAML config loader with CUE validation integration
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Analysis configures the assessment service.
type Analysis struct {
	Endpoint  string        `yaml:"endpoint" json:"endpoint"`
	Model     string        `yaml:"model" json:"model"`
	APIKeyEnv string        `yaml:"api_key_env" json:"api_key_env"`
	Debounce  time.Duration `yaml:"debounce" json:"debounce"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout"`
}

// APIKey resolves the key from the configured environment variable.
func (a Analysis) APIKey() string {
	if a.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(a.APIKeyEnv)
}

// Admin configures the HTTP admin server.
type Admin struct {
	Addr string `yaml:"addr" json:"addr"`
}

// Greptime holds GreptimeDB connection settings.
type Greptime struct {
	Host           string `yaml:"host" json:"host"`
	Port           int    `yaml:"port" json:"port"`
	Database       string `yaml:"database" json:"database"`
	TargetTable    string `yaml:"target_table" json:"target_table"`
	DetectionTable string `yaml:"detection_table" json:"detection_table"`
	StateTable     string `yaml:"state_table" json:"state_table"`
}

// Telemetry selects where exported rows go.
type Telemetry struct {
	Sink     string   `yaml:"sink" json:"sink"`
	File     string   `yaml:"file" json:"file"`
	Greptime Greptime `yaml:"greptime" json:"greptime"`
}

// Sink names.
const (
	SinkNone     = "none"
	SinkStdout   = "stdout"
	SinkColor    = "color"
	SinkFile     = "file"
	SinkGreptime = "greptime"
)

// Config is the root configuration of the radar simulator.
type Config struct {
	InitialTargets int       `yaml:"initial_targets" json:"initial_targets"`
	ScanSpeed      float64   `yaml:"scan_speed" json:"scan_speed"`
	RangeKm        float64   `yaml:"range_km" json:"range_km"`
	FrameRate      int       `yaml:"frame_rate" json:"frame_rate"`
	Seed           int64     `yaml:"seed" json:"seed"`
	ExportEvery    int       `yaml:"export_every" json:"export_every"`
	Analysis       Analysis  `yaml:"analysis" json:"analysis"`
	Admin          Admin     `yaml:"admin" json:"admin"`
	Telemetry      Telemetry `yaml:"telemetry" json:"telemetry"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		InitialTargets: 5,
		ScanSpeed:      0.02,
		RangeKm:        200,
		FrameRate:      30,
		ExportEvery:    30,
		Analysis: Analysis{
			Endpoint:  "https://generativelanguage.googleapis.com/v1beta",
			Model:     "gemini-3-flash-preview",
			APIKeyEnv: "API_KEY",
			Debounce:  2 * time.Second,
			Timeout:   30 * time.Second,
		},
		Admin: Admin{Addr: ":8080"},
		Telemetry: Telemetry{
			Sink: SinkNone,
			Greptime: Greptime{
				Host:           "127.0.0.1",
				Port:           4001,
				Database:       "public",
				TargetTable:    "radar_targets",
				DetectionTable: "radar_detections",
				StateTable:     "radar_state",
			},
		},
	}
}

// TickInterval is the duration of one simulation frame.
func (c *Config) TickInterval() time.Duration {
	if c.FrameRate <= 0 {
		return time.Second
	}
	return time.Second / time.Duration(c.FrameRate)
}

// Load reads a YAML file over the defaults and validates the result.
// An empty path yields the validated defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("cannot read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("cannot unmarshal YAML config: %w", err)
		}
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
