// Package orbit places catalog items on a sphere and animates them.
//
// Layout uses the Fibonacci-sphere construction: points step down the Y axis
// linearly while their longitude advances by the golden angle, which spreads
// any number of points near-evenly with no two coincident. Each placement also
// gets its own randomized orbit and float profile so nodes never move in
// lockstep.
package orbit

import (
	"math"
	"math/rand/v2"

	"orbitfolio/internal/geom"
)

// GoldenAngle is π(3 − √5), about 2.39996 radians.
var GoldenAngle = math.Pi * (3 - math.Sqrt(5))

// Placement is the derived, never persisted, anchor and motion profile of
// one catalog item.
type Placement struct {
	Index          int
	Base           geom.Vec3
	OrbitSpeed     float64 // radians per second
	OrbitRadius    float64 // scene units
	OrbitPhase     float64 // radians
	FloatSpeed     float64 // radians per second
	FloatAmplitude float64 // scene units
}

// Range is a closed-open interval [Min, Max) for uniform draws.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

func (r Range) draw(rng *rand.Rand) float64 {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Valid reports whether the range is strictly positive and ordered.
func (r Range) Valid() bool {
	return r.Min > 0 && r.Max >= r.Min && !math.IsInf(r.Max, 0)
}

// Ranges bounds the per-node motion parameters. OrbitRadius and
// FloatAmplitude are fractions of the layout radius so the motion envelope
// scales with the sphere.
type Ranges struct {
	OrbitSpeed     Range `yaml:"orbit_speed"`
	OrbitRadius    Range `yaml:"orbit_radius"`
	OrbitPhase     Range `yaml:"orbit_phase"`
	FloatSpeed     Range `yaml:"float_speed"`
	FloatAmplitude Range `yaml:"float_amplitude"`
}

// MaxOrbitFraction caps OrbitRadius relative to the layout radius.
const MaxOrbitFraction = 0.10

// DefaultRanges are tuned for a layout radius around 4.
func DefaultRanges() Ranges {
	return Ranges{
		OrbitSpeed:     Range{Min: 0.10, Max: 0.30},
		OrbitRadius:    Range{Min: 0.025, Max: 0.075},
		OrbitPhase:     Range{Min: 0.01, Max: 2 * math.Pi},
		FloatSpeed:     Range{Min: 0.50, Max: 1.50},
		FloatAmplitude: Range{Min: 0.025, Max: 0.06},
	}
}

// Valid reports whether every range is strictly positive and the orbit
// radius stays within MaxOrbitFraction.
func (r Ranges) Valid() bool {
	for _, rg := range []Range{r.OrbitSpeed, r.OrbitRadius, r.OrbitPhase, r.FloatSpeed, r.FloatAmplitude} {
		if !rg.Valid() {
			return false
		}
	}
	return r.OrbitRadius.Max <= MaxOrbitFraction
}

// FibonacciSphere returns count base positions on a sphere of the given
// radius. Zero yields nil; one yields the single point (radius, 0, 0).
func FibonacciSphere(count int, radius float64) []geom.Vec3 {
	switch {
	case count <= 0:
		return nil
	case count == 1:
		return []geom.Vec3{{X: radius}}
	}

	pts := make([]geom.Vec3, count)
	span := float64(count - 1)
	for i := 0; i < count; i++ {
		y := 1 - (float64(i)/span)*2
		ry := math.Sqrt(math.Max(0, 1-y*y))
		theta := float64(i) * GoldenAngle
		pts[i] = geom.Vec3{
			X: math.Cos(theta) * ry,
			Y: y,
			Z: math.Sin(theta) * ry,
		}.Scale(radius)
	}
	return pts
}

// Generate builds count placements. Base positions depend only on count and
// radius; the motion profile is drawn from rng on every call, so callers
// should memoize (see LayoutCache).
func Generate(count int, radius float64, ranges Ranges, rng *rand.Rand) []Placement {
	bases := FibonacciSphere(count, radius)
	if len(bases) == 0 {
		return []Placement{}
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	out := make([]Placement, len(bases))
	for i, b := range bases {
		out[i] = Placement{
			Index:          i,
			Base:           b,
			OrbitSpeed:     ranges.OrbitSpeed.draw(rng),
			OrbitRadius:    ranges.OrbitRadius.draw(rng) * radius,
			OrbitPhase:     ranges.OrbitPhase.draw(rng),
			FloatSpeed:     ranges.FloatSpeed.draw(rng),
			FloatAmplitude: ranges.FloatAmplitude.draw(rng) * radius,
		}
	}
	return out
}
