package render

import (
	"image"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/font/liberation"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgimg"
)

// arcSegments is the number of straight segments per full turn when
// wedges are flattened into polygons.
const arcSegments = 96

func init() {
	font.DefaultCache.Add(liberation.Collection())
}

// ImageSurface rasterizes primitives with gonum's vgimg canvas.
// Surface coordinates are flipped onto vg's y-up space.
type ImageSurface struct {
	canvas *vgimg.Canvas
	size   float64
	face   font.Face
}

// NewImageSurface returns a black square canvas of size pixels.
func NewImageSurface(size int) *ImageSurface {
	l := vg.Length(size)
	c := vgimg.NewWith(
		vgimg.UseWH(l, l),
		vgimg.UseDPI(72),
		vgimg.UseBackgroundColor(color.Black),
	)
	face := font.DefaultCache.Lookup(font.Font{Typeface: "Liberation", Variant: "Mono"}, vg.Points(10))
	return &ImageSurface{canvas: c, size: float64(size), face: face}
}

func (s *ImageSurface) Size() (float64, float64) { return s.size, s.size }

func (s *ImageSurface) pt(v Vec) vg.Point {
	return vg.Point{X: vg.Length(v.X), Y: vg.Length(s.size - v.Y)}
}

func (s *ImageSurface) apply(st Style) {
	s.canvas.SetColor(rgba(st))
	w := st.Width
	if w <= 0 {
		w = 1
	}
	s.canvas.SetLineWidth(vg.Length(w))
}

func (s *ImageSurface) paint(p vg.Path, st Style) {
	s.apply(st)
	if st.Fill {
		s.canvas.Fill(p)
		return
	}
	s.canvas.Stroke(p)
}

func (s *ImageSurface) Circle(c Vec, r float64, st Style) {
	var p vg.Path
	p.Move(s.pt(Vec{X: c.X + r, Y: c.Y}))
	p.Arc(s.pt(c), vg.Length(r), 0, 2*math.Pi)
	p.Close()
	s.paint(p, st)
}

func (s *ImageSurface) Line(a, b Vec, st Style) {
	s.Polyline([]Vec{a, b}, st)
}

func (s *ImageSurface) Polyline(pts []Vec, st Style) {
	if len(pts) < 2 {
		return
	}
	var p vg.Path
	p.Move(s.pt(pts[0]))
	for _, v := range pts[1:] {
		p.Line(s.pt(v))
	}
	s.paint(p, st)
}

func (s *ImageSurface) Wedge(c Vec, r, from, to float64, st Style) {
	n := int(math.Ceil(math.Abs(to-from) / (2 * math.Pi) * arcSegments))
	if n < 1 {
		n = 1
	}
	var p vg.Path
	p.Move(s.pt(c))
	for i := 0; i <= n; i++ {
		a := from + (to-from)*float64(i)/float64(n)
		p.Line(s.pt(Vec{X: c.X + math.Cos(a)*r, Y: c.Y + math.Sin(a)*r}))
	}
	p.Close()
	s.paint(p, st)
}

// Text draws s with its baseline at at.
func (s *ImageSurface) Text(at Vec, str string, st Style) {
	if s.face.Face == nil {
		return
	}
	s.canvas.SetColor(rgba(st))
	s.canvas.FillString(s.face, s.pt(at), str)
}

// WritePNG encodes the canvas as PNG.
func (s *ImageSurface) WritePNG(w io.Writer) error {
	_, err := vgimg.PngCanvas{Canvas: s.canvas}.WriteTo(w)
	return err
}

func rgba(st Style) color.NRGBA {
	a := math.Max(0, math.Min(1, st.Alpha))
	return color.NRGBA{R: st.Color.R, G: st.Color.G, B: st.Color.B, A: uint8(math.Round(a * 255))}
}

// Image returns the backing raster.
func (s *ImageSurface) Image() image.Image {
	return s.canvas.Image()
}
