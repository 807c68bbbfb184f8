package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3_Cross(t *testing.T) {
	assert.Equal(t, AxisZ, AxisX.Cross(AxisY))
	assert.Equal(t, AxisX, AxisY.Cross(AxisZ))
	assert.Equal(t, Vec3{}, AxisY.Cross(AxisY))
}

func TestVec3_Norm(t *testing.T) {
	n, ok := Vec3{X: 3, Y: 4}.Norm()
	assert.True(t, ok)
	assert.InDelta(t, 1, n.Len(), 1e-12)

	_, ok = Vec3{}.Norm()
	assert.False(t, ok)

	_, ok = Vec3{X: math.NaN()}.Norm()
	assert.False(t, ok)
}

func TestVec3_IsFinite(t *testing.T) {
	assert.True(t, Vec3{X: 1, Y: -2, Z: 3}.IsFinite())
	assert.False(t, Vec3{Y: math.Inf(1)}.IsFinite())
	assert.False(t, Vec3{Z: math.NaN()}.IsFinite())
}

func TestVec3_Lerp(t *testing.T) {
	a, b := Vec3{}, Vec3{X: 10, Y: -10}
	assert.Equal(t, Vec3{X: 2, Y: -2}, a.Lerp(b, 0.2))
	assert.Equal(t, b, a.Lerp(b, 1))
}

func TestSampleQuadratic_PinsEndpoints(t *testing.T) {
	p0, p1, p2 := Vec3{X: 0.1}, Vec3{Y: 7}, Vec3{Z: 0.3}
	pts := SampleQuadratic(p0, p1, p2, 1)
	assert.Len(t, pts, 2)
	assert.Equal(t, p0, pts[0])
	assert.Equal(t, p2, pts[1])
}
