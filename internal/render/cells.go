package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"radar-sim/internal/sweep"
)

// Virtual pixels per terminal cell. Cells are roughly twice as tall as
// they are wide, so rows get twice the pixels of columns.
const (
	cellW = 4.0
	cellH = 8.0
)

const (
	rankWedge = iota
	rankStroke
	rankMark
)

type cell struct {
	ch    rune
	color Color
	alpha float64
	rank  int
	set   bool
}

// CellSurface rasterizes primitives onto a character grid rendered
// with lipgloss colours.
type CellSurface struct {
	cols, rows int
	cells      []cell
	styles     map[string]lipgloss.Style
}

// NewCellSurface returns a blank grid of cols x rows cells.
func NewCellSurface(cols, rows int) *CellSurface {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	return &CellSurface{
		cols:   cols,
		rows:   rows,
		cells:  make([]cell, cols*rows),
		styles: make(map[string]lipgloss.Style),
	}
}

func (s *CellSurface) Size() (float64, float64) {
	return float64(s.cols) * cellW, float64(s.rows) * cellH
}

func (s *CellSurface) put(v Vec, ch rune, st Style, rank int) {
	col := int(math.Floor(v.X / cellW))
	row := int(math.Floor(v.Y / cellH))
	s.putCell(col, row, ch, st, rank)
}

func (s *CellSurface) putCell(col, row int, ch rune, st Style, rank int) {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return
	}
	c := &s.cells[row*s.cols+col]
	if c.set && c.rank > rank {
		return
	}
	*c = cell{ch: ch, color: st.Color, alpha: st.Alpha, rank: rank, set: true}
}

func strokeRune(st Style) rune {
	if st.Width >= 2 {
		return '•'
	}
	return '·'
}

func (s *CellSurface) Circle(c Vec, r float64, st Style) {
	if st.Fill {
		s.put(c, '●', st, rankMark)
		return
	}
	steps := int(math.Max(16, 2*math.Pi*r/2))
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		s.put(Vec{X: c.X + math.Cos(a)*r, Y: c.Y + math.Sin(a)*r}, strokeRune(st), st, rankStroke)
	}
}

func (s *CellSurface) Line(a, b Vec, st Style) {
	n := int(math.Max(math.Abs(b.X-a.X)/cellW, math.Abs(b.Y-a.Y)/cellH)*2) + 1
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		s.put(Vec{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}, strokeRune(st), st, rankStroke)
	}
}

func (s *CellSurface) Polyline(pts []Vec, st Style) {
	for i := 1; i < len(pts); i++ {
		s.Line(pts[i-1], pts[i], st)
	}
}

func (s *CellSurface) Wedge(c Vec, r, from, to float64, st Style) {
	span := to - from
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			x := (float64(col)+0.5)*cellW - c.X
			y := (float64(row)+0.5)*cellH - c.Y
			if math.Hypot(x, y) > r {
				continue
			}
			if sweep.NormalizeAngle(math.Atan2(y, x)-from) > span {
				continue
			}
			idx := row*s.cols + col
			if s.cells[idx].set {
				continue
			}
			s.putCell(col, row, '░', st, rankWedge)
		}
	}
}

func (s *CellSurface) Text(at Vec, str string, st Style) {
	col := int(math.Floor(at.X / cellW))
	row := int(math.Floor(at.Y/cellH)) - 1
	for i, ch := range []rune(str) {
		s.putCell(col+i, row, ch, st, rankMark)
	}
}

// Shade scales c towards black by alpha.
func Shade(c Color, alpha float64) string {
	a := math.Max(0, math.Min(1, alpha))
	return fmt.Sprintf("#%02x%02x%02x",
		uint8(math.Round(float64(c.R)*a)),
		uint8(math.Round(float64(c.G)*a)),
		uint8(math.Round(float64(c.B)*a)))
}

func (s *CellSurface) style(c cell) lipgloss.Style {
	key := Shade(c.color, math.Max(c.alpha, 0.15))
	st, ok := s.styles[key]
	if !ok {
		st = lipgloss.NewStyle().Foreground(lipgloss.Color(key))
		s.styles[key] = st
	}
	return st
}

// Rune returns the character at a cell, or a space when blank.
func (s *CellSurface) Rune(col, row int) rune {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return ' '
	}
	c := s.cells[row*s.cols+col]
	if !c.set {
		return ' '
	}
	return c.ch
}

// String renders the grid with one line per row.
func (s *CellSurface) String() string {
	var sb strings.Builder
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			c := s.cells[row*s.cols+col]
			if !c.set {
				sb.WriteByte(' ')
				continue
			}
			sb.WriteString(s.style(c).Render(string(c.ch)))
		}
		if row < s.rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
