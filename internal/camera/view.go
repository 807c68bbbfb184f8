package camera

import (
	"math"

	"orbitfolio/internal/geom"
)

// CellAspect is the height/width ratio of a terminal cell.
const CellAspect = 2.0

const nearPlane = 0.1

// View is a frozen camera pose used to project scene points.
type View struct {
	Eye    geom.Vec3
	LookAt geom.Vec3
	FOV    float64
}

// Project maps p to screen coordinates on a width×height cell grid. Depth is
// the distance along the view axis. ok is false for points behind the near
// plane or when the pose is unusable.
func (v View) Project(p geom.Vec3, width, height int) (x, y, depth float64, ok bool) {
	if width <= 0 || height <= 0 {
		return 0, 0, 0, false
	}
	forward, ok := v.LookAt.Sub(v.Eye).Norm()
	if !ok {
		return 0, 0, 0, false
	}
	right, ok := forward.Cross(geom.AxisY).Norm()
	if !ok {
		return 0, 0, 0, false
	}
	up := right.Cross(forward)

	rel := p.Sub(v.Eye)
	depth = rel.Dot(forward)
	if depth < nearPlane || math.IsNaN(depth) {
		return 0, 0, 0, false
	}

	fov := v.FOV
	if fov <= 0 {
		fov = math.Pi / 3
	}
	focal := 1 / math.Tan(fov/2)
	half := float64(height) / 2

	x = float64(width)/2 + rel.Dot(right)/depth*focal*half*CellAspect
	y = half - rel.Dot(up)/depth*focal*half
	if math.IsNaN(x) || math.IsNaN(y) {
		return 0, 0, 0, false
	}
	return x, y, depth, true
}
