package target

import (
	"math"
	"math/rand"
	"testing"
)

func TestStepMoves(t *testing.T) {
	tg := Target{X: 0.1, Y: 0.2, Velocity: 0.01, Angle: 0}
	Step(&tg, rand.New(rand.NewSource(1)))
	if math.Abs(tg.X-0.11) > 1e-12 || tg.Y != 0.2 {
		t.Fatalf("unexpected position (%f, %f)", tg.X, tg.Y)
	}
	if len(tg.History) != 1 || tg.History[0] != (Point{X: 0.1, Y: 0.2}) {
		t.Fatalf("history = %v", tg.History)
	}
}

func TestStepBounce(t *testing.T) {
	tg := Target{X: 0.99, Y: 0, Velocity: 0.001, Angle: 0}
	r := rand.New(rand.NewSource(9))
	want := math.Pi/2 + rand.New(rand.NewSource(9)).Float64()
	Step(&tg, r)
	if tg.X != 0.99 || tg.Y != 0 {
		t.Fatalf("bounce tick moved target to (%f, %f)", tg.X, tg.Y)
	}
	if math.Abs(tg.Angle-want) > 1e-12 {
		t.Fatalf("angle = %f, want %f", tg.Angle, want)
	}
	if len(tg.History) != 1 {
		t.Fatalf("bounce tick should still record history")
	}
}

func TestStepStaysInDisk(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	g := NewGenerator(r)
	targets := make([]Target, 20)
	for i := range targets {
		targets[i] = g.New()
		targets[i].Velocity = 0.02
	}
	for tick := 0; tick < 2000; tick++ {
		for i := range targets {
			Step(&targets[i], r)
			p := targets[i]
			if p.X*p.X+p.Y*p.Y > 1 {
				t.Fatalf("tick %d: target %s escaped to (%f, %f)", tick, p.ID, p.X, p.Y)
			}
		}
	}
}

func TestTrailBounded(t *testing.T) {
	tg := Target{Velocity: 0.001, Angle: 1}
	r := rand.New(rand.NewSource(1))
	for i := 1; i <= 30; i++ {
		prev := tg.Position()
		Step(&tg, r)
		want := i
		if want > TrailLength {
			want = TrailLength
		}
		if len(tg.History) != want {
			t.Fatalf("after %d ticks len = %d, want %d", i, len(tg.History), want)
		}
		if tg.History[0] != prev {
			t.Fatalf("history[0] = %v, want %v", tg.History[0], prev)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	tg := Target{History: []Point{{X: 1}}}
	c := tg.Clone()
	c.History[0].X = 2
	if tg.History[0].X != 1 {
		t.Fatalf("clone shares history")
	}
}
