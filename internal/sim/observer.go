package sim

import "time"

// maxEvents bounds the operator event log.
const maxEvents = 200

// Operator event types.
const (
	EventAdd       = "add"
	EventRemove    = "remove"
	EventSelect    = "select"
	EventScan      = "scan"
	EventScanSpeed = "scan_speed"
	EventRange     = "range"
)

// Event records one operator command applied to the simulator.
type Event struct {
	Timestamp time.Time `json:"ts"`
	Tick      int64     `json:"tick"`
	Type      string    `json:"type"`
	Details   string    `json:"details"`
}

// Events returns a copy of the recorded operator events, oldest first.
func (s *Simulator) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	return events
}

func (s *Simulator) logEventLocked(t, details string) {
	s.events = append(s.events, Event{Timestamp: s.now().UTC(), Tick: s.tick, Type: t, Details: details})
	if len(s.events) > maxEvents {
		s.events = s.events[len(s.events)-maxEvents:]
	}
}
