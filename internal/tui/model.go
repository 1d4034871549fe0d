package tui

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"radar-sim/internal/analysis"
	"radar-sim/internal/logging"
	"radar-sim/internal/render"
	"radar-sim/internal/sim"
	"radar-sim/internal/sweep"
	"radar-sim/internal/telemetry"
	"radar-sim/internal/target"
)

// frameMsg drives one simulation step and redraw.
type frameMsg time.Time

// analyst is the part of the analysis coordinator the dashboard uses.
type analyst interface {
	Request()
	Result() (string, bool)
}

const (
	scanSpeedStep = 0.005
	rangeStep     = 50
	panelWidth    = 58
	analysisLines = 6
	defaultCols   = 60
	defaultRows   = 30
)

var (
	green     = lipgloss.Color("#10b981")
	red       = lipgloss.Color("#ef4444")
	amber     = lipgloss.Color("#f59e0b")
	gray      = lipgloss.Color("8")
	titleSt   = lipgloss.NewStyle().Foreground(green).Bold(true)
	dimSt     = lipgloss.NewStyle().Foreground(gray)
	panelSt   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#064e3b")).Padding(0, 1)
	threatSts = map[target.ThreatLevel]lipgloss.Style{
		target.ThreatHigh:   lipgloss.NewStyle().Foreground(red).Bold(true),
		target.ThreatMedium: lipgloss.NewStyle().Foreground(amber),
		target.ThreatLow:    lipgloss.NewStyle().Foreground(green),
	}
)

// Model is the bubbletea model of the dashboard.
type Model struct {
	ctx        context.Context
	sim        *sim.Simulator
	analyst    analyst
	writer     *Writer
	renderer   *render.Renderer
	interval   time.Duration
	snap       sim.Snapshot
	table      table.Model
	vp         viewport.Model
	analysis   string
	busy       bool
	detections []string
	admin      bool
	help       bool
	width      int
	height     int
}

// NewModel returns a dashboard driving s at the given frame interval.
// a and w may be nil.
func NewModel(ctx context.Context, s *sim.Simulator, a analyst, w *Writer, interval time.Duration) Model {
	cols := []table.Column{
		{Title: "ID", Width: 8},
		{Title: "Type", Width: 8},
		{Title: "Alt m", Width: 6},
		{Title: "km/h", Width: 5},
		{Title: "Threat", Width: 6},
		{Title: "Det", Width: 3},
	}
	t := table.New(table.WithColumns(cols), table.WithHeight(8), table.WithFocused(true))
	st := table.DefaultStyles()
	st.Header = st.Header.Foreground(green).BorderForeground(gray).BorderBottom(true).Bold(true)
	st.Selected = st.Selected.Foreground(lipgloss.Color("#000000")).Background(green)
	t.SetStyles(st)

	m := Model{
		ctx:      ctx,
		sim:      s,
		analyst:  a,
		writer:   w,
		renderer: render.NewRenderer(),
		interval: interval,
		table:    t,
		vp:       viewport.New(panelWidth-4, analysisLines),
		analysis: analysis.StatusInitializing,
	}
	if a != nil {
		m.analysis, m.busy = a.Result()
	}
	m.refresh()
	m.refreshAnalysis()
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(3, msg.Height-analysisLines-16))
	case frameMsg:
		m.sim.Step(m.ctx)
		if m.writer != nil {
			for _, d := range m.writer.Drain() {
				m.addDetection(d)
			}
			m.admin = m.writer.AdminActive()
		}
		m.refresh()
		m.pollAnalysis()
		return m, m.tick()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.sim.ToggleScanning()
	case "a":
		m.sim.AddTarget()
	case "x", "delete":
		if m.snap.SelectedID != "" {
			if err := m.sim.RemoveTarget(m.snap.SelectedID); err != nil {
				logging.FromContext(m.ctx).Debug("remove target", "id", m.snap.SelectedID, "err", err)
			}
		}
	case "up", "k":
		m.sim.SelectNext(-1)
	case "down", "j":
		m.sim.SelectNext(1)
	case "enter":
		if row := m.table.SelectedRow(); len(row) > 0 {
			if err := m.sim.Select(row[0]); err != nil {
				logging.FromContext(m.ctx).Debug("select target", "id", row[0], "err", err)
			}
		}
	case "+", "=":
		m.sim.SetScanSpeed(m.snap.ScanSpeed + scanSpeedStep)
	case "-", "_":
		m.sim.SetScanSpeed(m.snap.ScanSpeed - scanSpeedStep)
	case "]":
		m.sim.SetRange(m.snap.RangeKm + rangeStep)
	case "[":
		m.sim.SetRange(m.snap.RangeKm - rangeStep)
	case "r":
		if m.analyst != nil {
			m.analyst.Request()
			m.pollAnalysis()
		}
	case "?", "h":
		m.help = !m.help
	default:
		return m, nil
	}
	m.refresh()
	return m, nil
}

func (m *Model) addDetection(d telemetry.DetectionRow) {
	line := fmt.Sprintf("%s %s %s %s brg %03.0f° %3.0fkm",
		d.Timestamp.Format("15:04:05"), d.TargetID, d.Type, d.Threat, d.BearingDeg, d.RangeKm)
	m.detections = append([]string{line}, m.detections...)
	if len(m.detections) > maxDetections {
		m.detections = m.detections[:maxDetections]
	}
}

// refresh re-reads the simulator state and rebuilds the manifest.
func (m *Model) refresh() {
	m.snap = m.sim.Snapshot()
	rows := make([]table.Row, len(m.snap.Targets))
	cursor := 0
	for i, t := range m.snap.Targets {
		det := ""
		if t.Detected {
			det = "●"
		}
		rows[i] = table.Row{t.ID, string(t.Type), fmt.Sprintf("%d", t.Altitude), fmt.Sprintf("%d", t.Speed), string(t.ThreatLevel), det}
		if t.ID == m.snap.SelectedID {
			cursor = i
		}
	}
	m.table.SetRows(rows)
	m.table.SetCursor(cursor)
}

// pollAnalysis picks up a changed assessment from the analyst.
func (m *Model) pollAnalysis() {
	if m.analyst == nil {
		return
	}
	text, busy := m.analyst.Result()
	if text == m.analysis && busy == m.busy {
		return
	}
	m.analysis, m.busy = text, busy
	m.refreshAnalysis()
}

func (m *Model) refreshAnalysis() {
	text := m.analysis
	if m.busy {
		text = "[analyzing] " + text
	}
	m.vp.SetContent(wordwrap.String(text, m.vp.Width))
}

func (m Model) radarSize() (int, int) {
	if m.width == 0 || m.height == 0 {
		return defaultCols, defaultRows
	}
	rows := m.height - 2
	cols := rows * 2
	if avail := m.width - panelWidth - 2; cols > avail {
		cols = avail
		rows = cols / 2
	}
	return max(cols, 0), max(rows, 0)
}

func (m Model) renderRadar() string {
	cols, rows := m.radarSize()
	cs := render.NewCellSurface(cols, rows)
	m.renderer.Draw(cs, m.snap.Frame())
	return cs.String()
}

func (m Model) renderDetail() string {
	t, ok := m.snap.Selected()
	if !ok {
		return dimSt.Render("no target selected")
	}
	bearing := sweep.Degrees(sweep.Bearing(t.X, t.Y))
	rangeKm := math.Hypot(t.X, t.Y) * m.snap.RangeKm
	threat := threatSts[t.ThreatLevel].Render(string(t.ThreatLevel))
	return fmt.Sprintf("%s %s  %s\nthreat %s  bearing %05.1f°  range %.0fkm\nalt %dm  speed %dkm/h  detected %t",
		titleSt.Render("TRACK"), t.ID, t.Type, threat, bearing, rangeKm, t.Altitude, t.Speed, t.Detected)
}

func (m Model) renderStatus() string {
	scan := lipgloss.NewStyle().Foreground(green).Render("● ACTIVE")
	if !m.snap.Scanning {
		scan = lipgloss.NewStyle().Foreground(red).Render("● PAUSED")
	}
	adminColor := red
	if m.admin {
		adminColor = green
	}
	admin := lipgloss.NewStyle().Foreground(adminColor).Render("●")
	return fmt.Sprintf("SCAN %s | sweep %05.1f° | speed %.3f rad/tick | range %.0fkm | targets %d (%d detected) | Admin %s | ? help",
		scan, sweep.Degrees(m.snap.SweepAngle), m.snap.ScanSpeed, m.snap.RangeKm,
		len(m.snap.Targets), m.snap.DetectedCount(), admin)
}

func (m Model) renderHelp() string {
	lines := []string{
		"Key Bindings:",
		" space    toggle scanning",
		" a        add target",
		" x/del    remove selected target",
		" ↑↓ / jk  move selection",
		" enter    select highlighted row",
		" + / -    scan speed",
		" ] / [    range",
		" r        re-analyze",
		" ? / h    toggle this help",
		" q        quit",
	}
	return strings.Join(lines, "\n")
}

func (m Model) View() string {
	if m.help {
		return panelSt.Render(m.renderHelp())
	}
	var det string
	if len(m.detections) == 0 {
		det = dimSt.Render("no detections yet")
	} else {
		det = strings.Join(m.detections, "\n")
	}
	side := lipgloss.JoinVertical(lipgloss.Left,
		panelSt.Width(panelWidth).Render(titleSt.Render("TARGET MANIFEST")+"\n"+m.table.View()),
		panelSt.Width(panelWidth).Render(m.renderDetail()),
		panelSt.Width(panelWidth).Render(titleSt.Render("AI ANALYST")+"\n"+m.vp.View()),
		panelSt.Width(panelWidth).Render(titleSt.Render("DETECTIONS")+"\n"+det),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderRadar(), " ", side)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatus())
}
