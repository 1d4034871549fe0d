package target

// TrailLength bounds the number of past positions kept per target.
const TrailLength = 20

// pushTrail prepends p to h and drops entries beyond TrailLength.
// The most recent position is always at index 0.
func pushTrail(h []Point, p Point) []Point {
	if len(h) < TrailLength {
		h = append(h, Point{})
	}
	copy(h[1:], h[:len(h)-1])
	h[0] = p
	return h
}
