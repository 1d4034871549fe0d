package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"radar-sim/internal/sim"
)

// Output file names written by RenderFiles.
const (
	PageFile    = "stats.html"
	SummaryFile = "summary.json"
)

const (
	speedColor    = "#10b981"
	altitudeColor = "#3b82f6"
)

func ids(snap sim.Snapshot) []string {
	out := make([]string, len(snap.Targets))
	for i, t := range snap.Targets {
		out[i] = t.ID
	}
	return out
}

// SpeedChart plots the speed of every target as bars.
func SpeedChart(snap sim.Snapshot) *charts.Bar {
	data := make([]opts.BarData, len(snap.Targets))
	for i, t := range snap.Targets {
		data[i] = opts.BarData{Name: t.ID, Value: t.Speed}
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: "dark", Width: "100%", Height: "320px"}),
		charts.WithTitleOpts(opts.Title{Title: "Velocity Matrix", Subtitle: fmt.Sprintf("tick=%d targets=%d", snap.Tick, len(snap.Targets))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "km/h"}),
	)
	bar.SetXAxis(ids(snap)).
		AddSeries("speed", data, charts.WithItemStyleOpts(opts.ItemStyle{Color: speedColor}))
	return bar
}

// AltitudeChart plots target altitudes as a filled line.
func AltitudeChart(snap sim.Snapshot) *charts.Line {
	data := make([]opts.LineData, len(snap.Targets))
	for i, t := range snap.Targets {
		data[i] = opts.LineData{Name: t.ID, Value: t.Altitude}
	}
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: "dark", Width: "100%", Height: "320px"}),
		charts.WithTitleOpts(opts.Title{Title: "Altitude Profile"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "m"}),
	)
	line.SetXAxis(ids(snap)).
		AddSeries("altitude", data,
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: altitudeColor}),
			charts.WithAreaStyleOpts(opts.AreaStyle{Color: altitudeColor, Opacity: opts.Float(0.3)}),
		)
	return line
}

// RenderPage writes an HTML page holding both charts.
func RenderPage(w io.Writer, snap sim.Snapshot) error {
	page := components.NewPage()
	page.SetPageTitle("Radar Statistics")
	page.AddCharts(SpeedChart(snap), AltitudeChart(snap))
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render stats page: %w", err)
	}
	return nil
}

// RenderFiles writes the chart page and the JSON summary into dir.
func RenderFiles(dir string, snap sim.Snapshot) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(dir, PageFile))
	if err != nil {
		return err
	}
	if err := RenderPage(f, snap); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(Summarize(snap), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, SummaryFile), data, 0o644)
}
