package target

import (
	"io"
	"math"
	"math/rand"

	"github.com/google/uuid"
)

// Generation ranges.
const (
	minSpawnDistance = 0.2
	maxSpawnDistance = 0.9
	minVelocity      = 0.0005
	maxVelocity      = 0.0020
	minAltitude      = 2000
	maxAltitude      = 12000
	minSpeed         = 300
	maxSpeed         = 1500

	idLength = 8
)

// Generator creates randomized targets from an injected random source.
type Generator struct {
	rand *rand.Rand
}

// NewGenerator returns a generator drawing from r.
func NewGenerator(r *rand.Rand) *Generator {
	return &Generator{rand: r}
}

// New returns a fresh target with an empty trail that has not been detected.
func (g *Generator) New() Target {
	theta := g.rand.Float64() * 2 * math.Pi
	dist := minSpawnDistance + g.rand.Float64()*(maxSpawnDistance-minSpawnDistance)
	return Target{
		ID:          g.NewID(),
		X:           math.Cos(theta) * dist,
		Y:           math.Sin(theta) * dist,
		Velocity:    minVelocity + g.rand.Float64()*(maxVelocity-minVelocity),
		Angle:       g.rand.Float64() * 2 * math.Pi,
		Altitude:    minAltitude + g.rand.Intn(maxAltitude-minAltitude+1),
		Speed:       minSpeed + g.rand.Intn(maxSpeed-minSpeed+1),
		Type:        Types[g.rand.Intn(len(Types))],
		ThreatLevel: g.threat(),
	}
}

// NewID returns a short identifier derived from a random UUID.
func (g *Generator) NewID() string {
	return shortID(g.rand)
}

// threat draws High with p=0.2, then Medium or Low evenly.
func (g *Generator) threat() ThreatLevel {
	if g.rand.Float64() > 0.8 {
		return ThreatHigh
	}
	if g.rand.Float64() > 0.5 {
		return ThreatMedium
	}
	return ThreatLow
}

func shortID(r io.Reader) string {
	u, err := uuid.NewRandomFromReader(r)
	if err != nil {
		u = uuid.New()
	}
	return u.String()[:idLength]
}
