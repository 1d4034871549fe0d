package sim

import (
	"fmt"
	"math"

	"radar-sim/internal/target"
)

// AddTarget generates a new target and returns a copy of it.
func (s *Simulator) AddTarget() target.Target {
	s.mu.Lock()
	t := s.newTargetLocked()
	s.targets = append(s.targets, t)
	count := len(s.targets)
	listeners := s.listeners
	s.logEventLocked(EventAdd, t.ID)
	s.mu.Unlock()

	s.notify(listeners, count)
	return t.Clone()
}

// RemoveTarget deletes the target with id. Removing the selected target
// clears the selection.
func (s *Simulator) RemoveTarget(id string) error {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("remove %q: %w", id, ErrTargetNotFound)
	}
	s.targets = append(s.targets[:idx], s.targets[idx+1:]...)
	if s.selected == id {
		s.selected = ""
	}
	count := len(s.targets)
	listeners := s.listeners
	s.logEventLocked(EventRemove, id)
	s.mu.Unlock()

	s.notify(listeners, count)
	return nil
}

// Select marks id as the selected target. An empty id clears the selection.
func (s *Simulator) Select(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != "" && s.indexLocked(id) < 0 {
		return fmt.Errorf("select %q: %w", id, ErrTargetNotFound)
	}
	s.selected = id
	s.logEventLocked(EventSelect, id)
	return nil
}

// SelectNext moves the selection by delta positions through the target
// list, wrapping at both ends, and returns the new selection.
func (s *Simulator) SelectNext(delta int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.targets)
	if n == 0 {
		s.selected = ""
		return ""
	}
	idx := s.indexLocked(s.selected)
	if idx < 0 {
		if delta < 0 {
			idx = 0
		} else {
			idx = -1
		}
	}
	idx = ((idx+delta)%n + n) % n
	s.selected = s.targets[idx].ID
	s.logEventLocked(EventSelect, s.selected)
	return s.selected
}

// SetScanning pauses or resumes the sweep and target motion.
func (s *Simulator) SetScanning(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scanning = on
	s.logEventLocked(EventScan, fmt.Sprintf("%t", on))
}

// ToggleScanning flips scanning and returns the new state.
func (s *Simulator) ToggleScanning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scanning = !s.scanning
	s.logEventLocked(EventScan, fmt.Sprintf("%t", s.scanning))
	return s.scanning
}

// SetScanSpeed sets the sweep rate in radians per tick, clamped to
// [MinScanSpeed, MaxScanSpeed]. NaN and infinities are ignored. It returns
// the applied value.
func (s *Simulator) SetScanSpeed(v float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !finite(v) {
		return s.scanSpeed
	}
	s.scanSpeed = clampScanSpeed(v)
	s.logEventLocked(EventScanSpeed, fmt.Sprintf("%.3f", s.scanSpeed))
	return s.scanSpeed
}

// SetRange sets the display range in km, rounded to RangeStepKm and
// clamped to [MinRangeKm, MaxRangeKm]. NaN and infinities are ignored.
// It returns the applied value.
func (s *Simulator) SetRange(km float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !finite(km) {
		return s.rangeKm
	}
	s.rangeKm = clampRange(km)
	s.logEventLocked(EventRange, fmt.Sprintf("%.0f", s.rangeKm))
	return s.rangeKm
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
