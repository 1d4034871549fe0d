// ColorStdoutWriter prints human-friendly, colorized telemetry to STDOUT.
package sim

import (
	"fmt"
	"io"
	"os"
	"sync"
	"text/tabwriter"
	"time"

	"radar-sim/internal/config"
	"radar-sim/internal/telemetry"
)

const (
	colorReset   = "\x1b[0m"
	colorRed     = "\x1b[31m"
	colorGreen   = "\x1b[32m"
	colorYellow  = "\x1b[33m"
	colorBlue    = "\x1b[34m"
	colorMagenta = "\x1b[35m"
	colorCyan    = "\x1b[36m"
	colorGray    = "\x1b[90m"
)

var threatColors = map[string]string{
	"High":   colorRed,
	"Medium": colorYellow,
	"Low":    colorGreen,
}

// ColorStdoutWriter prints rows using ANSI colors.
type ColorStdoutWriter struct {
	cfg  *config.Config
	out  io.Writer
	once sync.Once
}

// NewColorStdoutWriter creates a ColorStdoutWriter writing to os.Stdout.
func NewColorStdoutWriter(cfg *config.Config) *ColorStdoutWriter {
	return &ColorStdoutWriter{cfg: cfg, out: os.Stdout}
}

func (w *ColorStdoutWriter) printOverview() {
	if w.cfg == nil {
		return
	}

	fmt.Fprintln(w.out, "Radar Configuration:")
	tw := tabwriter.NewWriter(w.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Initial Targets:\t%d\n", w.cfg.InitialTargets)
	fmt.Fprintf(tw, "Scan Speed (rad/tick):\t%.3f\n", w.cfg.ScanSpeed)
	fmt.Fprintf(tw, "Range (km):\t%.0f\n", w.cfg.RangeKm)
	fmt.Fprintf(tw, "Frame Rate (Hz):\t%d\n", w.cfg.FrameRate)
	fmt.Fprintf(tw, "Export Every (ticks):\t%d\n", w.cfg.ExportEvery)
	tw.Flush()
	fmt.Fprintln(w.out)
}

func threatColor(level string) string {
	if c, ok := threatColors[level]; ok {
		return c
	}
	return colorReset
}

// Write outputs a single target row in colorized format.
func (w *ColorStdoutWriter) Write(row telemetry.TargetRow) error {
	w.once.Do(w.printOverview)

	detected := colorGray + "-" + colorReset
	if row.Detected {
		detected = colorGreen + "●" + colorReset
	}
	fmt.Fprintf(w.out, "%s[%s]%s ", colorGray, row.Timestamp.Format(time.RFC3339), colorReset)
	fmt.Fprintf(w.out, "%stick=%d%s ", colorBlue, row.Tick, colorReset)
	fmt.Fprintf(w.out, "target=%s ", row.TargetID)
	fmt.Fprintf(w.out, "%stype=%s%s ", colorCyan, row.Type, colorReset)
	fmt.Fprintf(w.out, "%sthreat=%s%s ", threatColor(row.Threat), row.Threat, colorReset)
	fmt.Fprintf(w.out, "%srange=%.1fkm%s ", colorGreen, row.RangeKm, colorReset)
	fmt.Fprintf(w.out, "%sbearing=%.1f°%s ", colorYellow, row.BearingDeg, colorReset)
	fmt.Fprintf(w.out, "%salt=%dm%s ", colorMagenta, row.Altitude, colorReset)
	fmt.Fprintf(w.out, "speed=%dkm/h detected=%s\n", row.Speed, detected)
	return nil
}

// WriteDetection prints a first-illumination event to STDOUT.
func (w *ColorStdoutWriter) WriteDetection(d telemetry.DetectionRow) error {
	w.once.Do(w.printOverview)
	fmt.Fprintf(w.out, "%s[%s]%s %sDETECTION%s target=%s type=%s threat=%s%s%s sweep=%.1f° bearing=%.1f° range=%.1fkm\n",
		colorGray, d.Timestamp.Format(time.RFC3339), colorReset,
		colorRed, colorReset, d.TargetID, d.Type,
		threatColor(d.Threat), d.Threat, colorReset,
		d.SweepDeg, d.BearingDeg, d.RangeKm)
	return nil
}

// WriteState prints scope state to STDOUT.
func (w *ColorStdoutWriter) WriteState(row telemetry.SimulationStateRow) error {
	w.once.Do(w.printOverview)
	fmt.Fprintf(w.out, "%s[%s]%s %sSTATE%s tick=%d sweep=%.1f° scanning=%t speed=%.3f range=%.0fkm targets=%d detected=%d\n",
		colorGray, row.Timestamp.Format(time.RFC3339), colorReset,
		colorBlue, colorReset, row.Tick, row.SweepDeg, row.Scanning,
		row.ScanSpeed, row.RangeKm, row.Targets, row.Detected)
	return nil
}
