package sweep

import "math"

const (
	// DetectionWidth is the angular half-width in radians of the beam.
	DetectionWidth = 0.1
	// AfterglowSpan is how far behind the beam a target stays visible.
	AfterglowSpan = math.Pi / 2
)

// Sweep is the rotating beam state.
type Sweep struct {
	Angle float64 // radians in [0, 2π)
}

// Advance rotates the beam by speed radians, wrapping at 2π.
func (s *Sweep) Advance(speed float64) {
	s.Angle = NormalizeAngle(s.Angle + speed)
}

// Degrees returns the current beam angle in degrees.
func (s Sweep) Degrees() float64 {
	return Degrees(s.Angle)
}

// Illuminated reports whether the beam at sweepAngle covers (x, y).
func Illuminated(x, y, sweepAngle float64) bool {
	diff := math.Abs(Bearing(x, y) - sweepAngle)
	return diff < DetectionWidth || diff > TwoPi-DetectionWidth
}

// Lag returns how far the beam has rotated past (x, y), in [0, 2π).
func Lag(x, y, sweepAngle float64) float64 {
	return NormalizeAngle(sweepAngle - Bearing(x, y))
}

// Intensity returns the afterglow in [0, 1] for a target at (x, y).
// It is 1 directly under the beam and falls linearly to 0 a quarter
// turn behind it.
func Intensity(x, y, sweepAngle float64) float64 {
	return IntensityAt(Lag(x, y, sweepAngle))
}

// IntensityAt maps a beam lag in radians to an afterglow value.
func IntensityAt(lag float64) float64 {
	v := 1 - lag/AfterglowSpan
	if v < 0 {
		return 0
	}
	return v
}
