// Package stats summarizes and charts the current target set.
package stats

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"radar-sim/internal/sim"
	"radar-sim/internal/target"
)

// Summary aggregates one snapshot.
type Summary struct {
	Tick         int64                      `json:"tick"`
	Count        int                        `json:"count"`
	Detected     int                        `json:"detected"`
	MeanSpeed    float64                    `json:"mean_speed_kmh"`
	MaxSpeed     float64                    `json:"max_speed_kmh"`
	MeanAltitude float64                    `json:"mean_altitude_m"`
	StdAltitude  float64                    `json:"std_altitude_m"`
	ByThreat     map[target.ThreatLevel]int `json:"by_threat"`
	ByType       map[target.Type]int        `json:"by_type"`
}

// Summarize computes aggregate figures for snap.
func Summarize(snap sim.Snapshot) Summary {
	s := Summary{
		Tick:     snap.Tick,
		Count:    len(snap.Targets),
		ByThreat: map[target.ThreatLevel]int{},
		ByType:   map[target.Type]int{},
	}
	if s.Count == 0 {
		return s
	}
	speeds := make([]float64, 0, s.Count)
	alts := make([]float64, 0, s.Count)
	for _, t := range snap.Targets {
		speeds = append(speeds, float64(t.Speed))
		alts = append(alts, float64(t.Altitude))
		s.ByThreat[t.ThreatLevel]++
		s.ByType[t.Type]++
		if t.Detected {
			s.Detected++
		}
	}
	s.MeanSpeed = stat.Mean(speeds, nil)
	s.MaxSpeed = floats.Max(speeds)
	s.MeanAltitude, s.StdAltitude = stat.PopMeanStdDev(alts, nil)
	return s
}
