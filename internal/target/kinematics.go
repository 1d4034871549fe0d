package target

import (
	"math"
	"math/rand"
)

// BoundaryRadiusSq is the squared radius a target may not move beyond.
const BoundaryRadiusSq = 0.95

// Step advances t by one tick. A move that would cross the boundary
// is cancelled and the heading is deflected by π/2 plus a jitter drawn
// from r. The pre-move position is recorded in the trail either way.
func Step(t *Target, r *rand.Rand) {
	prev := t.Position()
	nx := t.X + math.Cos(t.Angle)*t.Velocity
	ny := t.Y + math.Sin(t.Angle)*t.Velocity
	if nx*nx+ny*ny > BoundaryRadiusSq {
		t.Angle += math.Pi/2 + r.Float64()
	} else {
		t.X, t.Y = nx, ny
	}
	t.History = pushTrail(t.History, prev)
}
