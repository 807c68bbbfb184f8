package geom

// QuadraticBezier evaluates B(t) = (1-t)²·p0 + 2(1-t)t·p1 + t²·p2.
func QuadraticBezier(p0, p1, p2 Vec3, t float64) Vec3 {
	u := 1 - t
	return p0.Scale(u * u).Add(p1.Scale(2 * u * t)).Add(p2.Scale(t * t))
}

// SampleQuadratic returns n points evenly spaced in t along the curve, with
// the first point exactly p0 and the last exactly p2. n below 2 is raised to 2.
func SampleQuadratic(p0, p1, p2 Vec3, n int) []Vec3 {
	if n < 2 {
		n = 2
	}
	pts := make([]Vec3, n)
	last := n - 1
	for i := 0; i <= last; i++ {
		pts[i] = QuadraticBezier(p0, p1, p2, float64(i)/float64(last))
	}
	// Pin the endpoints so float error never moves them.
	pts[0] = p0
	pts[last] = p2
	return pts
}
