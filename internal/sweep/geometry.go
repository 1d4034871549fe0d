package sweep

import "math"

// TwoPi is one full rotation in radians.
const TwoPi = 2 * math.Pi

// NormalizeAngle wraps an angle to [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	if a >= TwoPi {
		a = 0
	}
	return a
}

// Bearing returns the polar angle of (x, y) in [0, 2π), counterclockwise from +x.
func Bearing(x, y float64) float64 {
	a := math.Atan2(y, x)
	if a < 0 {
		a += TwoPi
	}
	return a
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
