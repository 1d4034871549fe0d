package sim

import (
	"context"
	"time"

	"radar-sim/internal/logging"
	"radar-sim/internal/sweep"
	"radar-sim/internal/target"
	"radar-sim/internal/telemetry"
)

// Run drives Step from a ticker until the context is done.
func (s *Simulator) Run(ctx context.Context) {
	log := logging.FromContext(ctx)
	log.Info("starting simulator", "tick_interval", s.tickInterval)
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Step(ctx)
		case <-ctx.Done():
			log.Info("stopping simulator")
			return
		}
	}
}

// Step advances the simulation by one tick. It is a no-op while paused.
//
// Targets move first. Each is then tested against the beam angle held
// before this tick's rotation, after which the beam advances.
func (s *Simulator) Step(ctx context.Context) {
	var (
		rows       []telemetry.TargetRow
		detections []telemetry.DetectionRow
		state      *telemetry.SimulationStateRow
	)

	s.mu.Lock()
	if !s.scanning {
		s.mu.Unlock()
		return
	}
	s.tick++
	now := s.now()
	beam := s.sweep.Angle
	for i := range s.targets {
		t := &s.targets[i]
		target.Step(t, s.rand)
		if !t.Detected && sweep.Illuminated(t.X, t.Y, beam) {
			t.Detected = true
			detections = append(detections, telemetry.NewDetectionRow(s.tick, *t, beam, s.rangeKm, now))
		}
	}
	s.sweep.Advance(s.scanSpeed)

	if s.exportEvery > 0 && s.tick%int64(s.exportEvery) == 0 {
		detected := 0
		for _, t := range s.targets {
			rows = append(rows, telemetry.NewTargetRow(s.tick, t, s.rangeKm, now))
			if t.Detected {
				detected++
			}
		}
		state = &telemetry.SimulationStateRow{
			Tick:      s.tick,
			SweepDeg:  s.sweep.Degrees(),
			Scanning:  s.scanning,
			ScanSpeed: s.scanSpeed,
			RangeKm:   s.rangeKm,
			Targets:   len(s.targets),
			Detected:  detected,
			Timestamp: now.UTC(),
		}
	}
	s.mu.Unlock()

	s.flush(ctx, rows, detections, state)
}

// flush hands rows to the configured writers. Failures are logged and
// never interrupt the simulation.
func (s *Simulator) flush(ctx context.Context, rows []telemetry.TargetRow, detections []telemetry.DetectionRow, state *telemetry.SimulationStateRow) {
	log := logging.FromContext(ctx)

	if len(rows) > 0 && s.writer != nil {
		// Batch support if writer implements WriteBatch
		if bw, ok := s.writer.(batchWriter); ok {
			if err := bw.WriteBatch(rows); err != nil {
				log.Error("batch write failed", "err", err)
			}
		} else {
			for _, row := range rows {
				if err := s.writer.Write(row); err != nil {
					log.Error("write failed", "target_id", row.TargetID, "err", err)
				}
			}
		}
	}

	if len(detections) > 0 && s.detectionWriter != nil {
		if bw, ok := s.detectionWriter.(batchDetectionWriter); ok {
			if err := bw.WriteDetections(detections); err != nil {
				log.Error("detection batch write failed", "err", err)
			}
		} else {
			for _, d := range detections {
				if err := s.detectionWriter.WriteDetection(d); err != nil {
					log.Error("detection write failed", "target_id", d.TargetID, "err", err)
				}
			}
		}
	}

	if state != nil && s.stateWriter != nil {
		if err := s.stateWriter.WriteState(*state); err != nil {
			log.Error("state write failed", "err", err)
		}
	}
}
