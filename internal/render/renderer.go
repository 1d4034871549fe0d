package render

import (
	"fmt"
	"math"

	"radar-sim/internal/sweep"
	"radar-sim/internal/target"
)

const (
	ringCount      = 4
	tickStepDeg    = 30
	tickLength     = 5
	coneSpan       = 0.5
	coneAlpha      = 0.4
	sweepLineAlpha = 0.8
	trailAlpha     = 0.3
	glyphRadius    = 4
	selectedRadius = 6
	selectRing     = 10
	labelOffset    = 12
)

// Palette holds the scope colours.
type Palette struct {
	Grid      Color
	Nominal   Color
	Alert     Color
	Selection Color
}

// DefaultPalette is the emerald-on-black scope look.
var DefaultPalette = Palette{
	Grid:      Color{R: 16, G: 185, B: 129},
	Nominal:   Color{R: 16, G: 185, B: 129},
	Alert:     Color{R: 239, G: 68, B: 68},
	Selection: Color{R: 255, G: 255, B: 255},
}

// Frame is the immutable input of one render pass.
type Frame struct {
	Sweep      float64
	RangeKm    float64
	SelectedID string
	Targets    []target.Target
}

// Renderer draws frames onto a Surface.
type Renderer struct {
	Palette Palette
	// ConeSlices controls how finely the sweep fade is stepped.
	ConeSlices int
}

// NewRenderer returns a renderer with the default palette.
func NewRenderer() *Renderer {
	return &Renderer{Palette: DefaultPalette, ConeSlices: 12}
}

// Draw renders f onto s. A nil surface skips the frame.
func (r *Renderer) Draw(s Surface, f Frame) {
	if s == nil {
		return
	}
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}
	p := NewProjector(w, h)
	r.drawGrid(s, p, f.RangeKm)
	r.drawSweep(s, p, f.Sweep)
	for i := range f.Targets {
		r.drawTarget(s, p, &f.Targets[i], f.Sweep, f.Targets[i].ID == f.SelectedID)
	}
}

func (r *Renderer) drawGrid(s Surface, p Projector, rangeKm float64) {
	line := Style{Color: r.Palette.Grid, Alpha: 0.2, Width: 1}
	label := Style{Color: r.Palette.Grid, Alpha: 0.4}
	c := p.Center
	for i := 1; i <= ringCount; i++ {
		rr := p.Radius / ringCount * float64(i)
		s.Circle(c, rr, line)
		km := math.Round(rangeKm / ringCount * float64(i))
		s.Text(Vec{X: c.X + 5, Y: c.Y - rr - 5}, fmt.Sprintf("%.0fkm", km), label)
	}

	s.Line(Vec{X: c.X - p.Radius, Y: c.Y}, Vec{X: c.X + p.Radius, Y: c.Y}, line)
	s.Line(Vec{X: c.X, Y: c.Y - p.Radius}, Vec{X: c.X, Y: c.Y + p.Radius}, line)

	for deg := 0; deg < 360; deg += tickStepDeg {
		a := float64(deg) * math.Pi / 180
		outer := p.Polar(a, p.Radius+tickLength)
		s.Line(p.Polar(a, p.Radius), outer, line)
		at := Vec{X: outer.X + math.Cos(a)*10 - 10, Y: outer.Y + math.Sin(a)*10 + 5}
		s.Text(at, fmt.Sprintf("%d°", deg), label)
	}
}

func (r *Renderer) drawSweep(s Surface, p Projector, angle float64) {
	n := r.ConeSlices
	if n < 1 {
		n = 1
	}
	step := coneSpan / float64(n)
	start := angle - coneSpan
	for i := 0; i < n; i++ {
		from := start + float64(i)*step
		alpha := coneAlpha * float64(i+1) / float64(n)
		s.Wedge(p.Center, p.Radius, from, from+step, Style{Color: r.Palette.Grid, Alpha: alpha, Fill: true})
	}
	s.Line(p.Center, p.Polar(angle, p.Radius), Style{Color: r.Palette.Grid, Alpha: sweepLineAlpha, Width: 2})
}

func (r *Renderer) drawTarget(s Surface, p Projector, t *target.Target, sweepAngle float64, selected bool) {
	intensity := sweep.Intensity(t.X, t.Y, sweepAngle)
	if intensity <= 0 {
		return
	}
	col := r.Palette.Nominal
	if t.ThreatLevel == target.ThreatHigh {
		col = r.Palette.Alert
	}

	if len(t.History) > 0 {
		pts := make([]Vec, len(t.History))
		for i, hp := range t.History {
			pts[i] = p.Project(hp.X, hp.Y)
		}
		s.Polyline(pts, Style{Color: col, Alpha: intensity * trailAlpha, Width: 1})
	}

	at := p.Project(t.X, t.Y)
	radius := float64(glyphRadius)
	if selected {
		radius = selectedRadius
	}
	s.Circle(at, radius, Style{Color: col, Alpha: intensity, Fill: true})

	if !selected {
		return
	}
	white := Style{Color: r.Palette.Selection, Alpha: 1, Width: 1}
	s.Circle(at, selectRing, white)
	s.Text(Vec{X: at.X + labelOffset, Y: at.Y - labelOffset}, "ID: "+t.ID, white)
	s.Text(Vec{X: at.X + labelOffset, Y: at.Y}, fmt.Sprintf("%dkm/h", t.Speed), white)
}
