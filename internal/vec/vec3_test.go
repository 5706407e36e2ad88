package vec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3Arithmetic(t *testing.T) {
	a := Vec3{X: 1, Y: 2, Z: 3}
	b := Vec3{X: 4, Y: 6, Z: 3}

	assert.Equal(t, Vec3{X: 5, Y: 8, Z: 6}, a.Add(b))
	assert.Equal(t, Vec3{X: -3, Y: -4, Z: 0}, a.Sub(b))
	assert.Equal(t, Vec3{X: 2, Y: 4, Z: 6}, a.Mul(2))
	assert.Equal(t, 25.0, a.DistanceSqrTo(b))
	assert.Equal(t, 5.0, a.DistanceTo(b))
	assert.Equal(t, 3.0, a.DistanceXZTo(b))
	assert.Equal(t, Vec3{X: 0, Y: 0, Z: 1}, Vec3{X: 1}.Cross(Vec3{Y: 1}))
}

func TestVec3LerpMinMax(t *testing.T) {
	a := Vec3{X: 0, Y: 10, Z: -2}
	b := Vec3{X: 4, Y: 0, Z: 2}

	assert.Equal(t, a, a.Lerp(b, 0))
	assert.Equal(t, b, a.Lerp(b, 1))
	assert.Equal(t, Vec3{X: 2, Y: 5, Z: 0}, a.Lerp(b, 0.5))
	assert.Equal(t, Vec3{X: 0, Y: 0, Z: -2}, a.Min(b))
	assert.Equal(t, Vec3{X: 4, Y: 10, Z: 2}, a.Max(b))
	assert.True(t, a.Equals(Vec3{X: 0, Y: 10, Z: -2}))
	assert.False(t, a.Equals(b))
}
