// Simulator owning radar state and applying operator commands
package sim

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"radar-sim/internal/config"
	"radar-sim/internal/render"
	"radar-sim/internal/sweep"
	"radar-sim/internal/target"
)

// ErrTargetNotFound is returned when a command names an unknown target.
var ErrTargetNotFound = errors.New("target not found")

// Control bounds.
const (
	MinScanSpeed = 0.005
	MaxScanSpeed = 0.05
	MinRangeKm   = 50
	MaxRangeKm   = 500
	RangeStepKm  = 10
)

// Snapshot is an immutable copy of the radar state.
type Snapshot struct {
	Tick       int64           `json:"tick"`
	SweepAngle float64         `json:"sweep_angle"`
	Scanning   bool            `json:"scanning"`
	ScanSpeed  float64         `json:"scan_speed"`
	RangeKm    float64         `json:"range_km"`
	SelectedID string          `json:"selected_id,omitempty"`
	Targets    []target.Target `json:"targets"`
}

// Selected returns the selected target, if any.
func (s Snapshot) Selected() (target.Target, bool) {
	if s.SelectedID == "" {
		return target.Target{}, false
	}
	for _, t := range s.Targets {
		if t.ID == s.SelectedID {
			return t, true
		}
	}
	return target.Target{}, false
}

// DetectedCount returns how many targets have been illuminated.
func (s Snapshot) DetectedCount() int {
	n := 0
	for _, t := range s.Targets {
		if t.Detected {
			n++
		}
	}
	return n
}

// Frame converts the snapshot into render input.
func (s Snapshot) Frame() render.Frame {
	return render.Frame{
		Sweep:      s.SweepAngle,
		RangeKm:    s.RangeKm,
		SelectedID: s.SelectedID,
		Targets:    s.Targets,
	}
}

// Simulator owns the target set and the sweep. All mutation goes
// through its methods.
type Simulator struct {
	mu              sync.Mutex
	rand            *rand.Rand
	gen             *target.Generator
	sweep           sweep.Sweep
	targets         []target.Target
	scanning        bool
	scanSpeed       float64
	rangeKm         float64
	selected        string
	tick            int64
	tickInterval    time.Duration
	exportEvery     int
	writer          TelemetryWriter
	detectionWriter DetectionWriter
	stateWriter     StateWriter
	listeners       []func(count int)
	events          []Event
	now             func() time.Time
}

// NewSimulator creates a scanning simulator seeded with cfg.InitialTargets
// targets. writer may be nil; if it also implements DetectionWriter or
// StateWriter those rows are sent to it too.
func NewSimulator(cfg *config.Config, writer TelemetryWriter, r *rand.Rand) *Simulator {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s := &Simulator{
		rand:         r,
		gen:          target.NewGenerator(r),
		scanning:     true,
		scanSpeed:    clampScanSpeed(cfg.ScanSpeed),
		rangeKm:      clampRange(cfg.RangeKm),
		tickInterval: cfg.TickInterval(),
		exportEvery:  cfg.ExportEvery,
		writer:       writer,
		now:          time.Now,
	}
	if dw, ok := writer.(DetectionWriter); ok {
		s.detectionWriter = dw
	}
	if sw, ok := writer.(StateWriter); ok {
		s.stateWriter = sw
	}
	for i := 0; i < cfg.InitialTargets; i++ {
		s.targets = append(s.targets, s.newTargetLocked())
	}
	return s
}

// OnTargetsChanged registers fn to be called with the new target count
// after every add or remove. fn runs outside the simulator lock.
func (s *Simulator) OnTargetsChanged(fn func(count int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Snapshot returns a deep copy of the current state.
func (s *Simulator) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	targets := make([]target.Target, len(s.targets))
	for i, t := range s.targets {
		targets[i] = t.Clone()
	}
	return Snapshot{
		Tick:       s.tick,
		SweepAngle: s.sweep.Angle,
		Scanning:   s.scanning,
		ScanSpeed:  s.scanSpeed,
		RangeKm:    s.rangeKm,
		SelectedID: s.selected,
		Targets:    targets,
	}
}

// TickInterval returns the configured frame duration.
func (s *Simulator) TickInterval() time.Duration {
	return s.tickInterval
}

func (s *Simulator) newTargetLocked() target.Target {
	t := s.gen.New()
	for s.indexLocked(t.ID) >= 0 {
		t.ID = s.gen.NewID()
	}
	return t
}

func (s *Simulator) indexLocked(id string) int {
	for i := range s.targets {
		if s.targets[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Simulator) notify(listeners []func(int), count int) {
	for _, fn := range listeners {
		fn(count)
	}
}

func clampScanSpeed(v float64) float64 {
	if v < MinScanSpeed {
		return MinScanSpeed
	}
	if v > MaxScanSpeed {
		return MaxScanSpeed
	}
	return v
}

func clampRange(km float64) float64 {
	km = float64(int64(km/RangeStepKm+0.5)) * RangeStepKm
	if km < MinRangeKm {
		return MinRangeKm
	}
	if km > MaxRangeKm {
		return MaxRangeKm
	}
	return km
}
