package orbit

import (
	"math"

	"orbitfolio/internal/geom"
)

// Position returns where p is at elapsed time t (seconds):
//
//	base + (cos(t·os + φ)·r, sin(t·fs)·a, sin(t·os + φ)·r)
//
// It is a pure function of (p, t) with no accumulated state, so the
// animation can resume from any t.
func Position(p Placement, t float64) geom.Vec3 {
	angle := t*p.OrbitSpeed + p.OrbitPhase
	return p.Base.Add(geom.Vec3{
		X: math.Cos(angle) * p.OrbitRadius,
		Y: math.Sin(t*p.FloatSpeed) * p.FloatAmplitude,
		Z: math.Sin(angle) * p.OrbitRadius,
	})
}

// Bound is the distance from the origin that Position never exceeds.
func Bound(p Placement) float64 {
	return p.Base.Len() + p.OrbitRadius + p.FloatAmplitude
}

// Positions evaluates every placement at t, reusing dst when it has room.
func Positions(dst []geom.Vec3, ps []Placement, t float64) []geom.Vec3 {
	if cap(dst) < len(ps) {
		dst = make([]geom.Vec3, len(ps))
	}
	dst = dst[:len(ps)]
	for i, p := range ps {
		dst[i] = Position(p, t)
	}
	return dst
}
