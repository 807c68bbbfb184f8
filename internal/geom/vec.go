// Package geom provides the small vector and curve utilities used by the
// orbital scene: 3-D vectors, quadratic Bézier sampling, and the connection
// link builder that never lets a non-finite vertex reach the renderer.
package geom

import "math"

// Vec3 is a point or direction in scene space.
type Vec3 struct {
	X, Y, Z float64
}

// Common axes.
var (
	Origin = Vec3{}
	AxisX  = Vec3{X: 1}
	AxisY  = Vec3{Y: 1}
	AxisZ  = Vec3{Z: 1}
)

func (a Vec3) Add(b Vec3) Vec3      { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3      { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a Vec3) Scale(s float64) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }
func (a Vec3) Dot(b Vec3) float64   { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }
func (a Vec3) LenSq() float64       { return a.Dot(a) }
func (a Vec3) Len() float64         { return math.Sqrt(a.LenSq()) }
func (a Vec3) Dist(b Vec3) float64  { return b.Sub(a).Len() }
func (a Vec3) Midpoint(b Vec3) Vec3 { return a.Add(b).Scale(0.5) }

// Lerp moves from a toward b by fraction t.
func (a Vec3) Lerp(b Vec3, t float64) Vec3 {
	return a.Add(b.Sub(a).Scale(t))
}

// Cross returns the cross product a × b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Norm returns the unit vector in the direction of a. The second result is
// false when a has no usable direction (zero length or non-finite).
func (a Vec3) Norm() (Vec3, bool) {
	l := a.Len()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return Vec3{}, false
	}
	return a.Scale(1 / l), true
}

// IsFinite reports whether every component is a finite number.
func (a Vec3) IsFinite() bool {
	return isFinite(a.X) && isFinite(a.Y) && isFinite(a.Z)
}

// ApproxEqual compares component-wise within eps.
func (a Vec3) ApproxEqual(b Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps && math.Abs(a.Z-b.Z) <= eps
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
