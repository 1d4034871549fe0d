package render

import "math"

// scopeFill is the share of the half-size used by the outer ring.
const scopeFill = 0.9

// Projector maps the normalized disk onto a square surface area.
type Projector struct {
	Center Vec
	Radius float64
}

// NewProjector centres the scope in the largest square that fits w x h.
func NewProjector(w, h float64) Projector {
	c := math.Min(w, h) / 2
	return Projector{Center: Vec{X: c, Y: c}, Radius: c * scopeFill}
}

// Project maps a normalized position to surface coordinates.
func (p Projector) Project(x, y float64) Vec {
	return Vec{X: p.Center.X + x*p.Radius, Y: p.Center.Y + y*p.Radius}
}

// Polar returns the point at angle a and distance r from the centre.
func (p Projector) Polar(a, r float64) Vec {
	return Vec{X: p.Center.X + math.Cos(a)*r, Y: p.Center.Y + math.Sin(a)*r}
}
