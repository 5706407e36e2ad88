package terrain

import (
	"testing"

	"github.com/annel0/navmesh-editor/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateShape(t *testing.T) {
	p := DefaultParams()
	p.Width, p.Depth = 4, 3
	m := Generate(p)

	assert.Len(t, m.Verts(), 5*4)
	assert.Len(t, m.Tris(), 4*3*2)

	bmin, bmax := m.Bounds()
	assert.InDelta(t, 0, bmin.X, 1e-9)
	assert.InDelta(t, 4, bmax.X, 1e-9)
	assert.InDelta(t, 3, bmax.Z, 1e-9)
	assert.GreaterOrEqual(t, bmin.Y, 0.0)
	assert.LessOrEqual(t, bmax.Y, p.Amplitude)
}

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(DefaultParams())
	b := Generate(DefaultParams())
	assert.Equal(t, a.Verts(), b.Verts())
}

func TestVerticalRayHitsTerrain(t *testing.T) {
	p := DefaultParams()
	m := Generate(p)

	s := vec.Vec3{X: 10.3, Y: p.Amplitude + 10, Z: 7.7}
	e := vec.Vec3{X: 10.3, Y: -10, Z: 7.7}
	_, ok := m.Raycast(s, e)
	require.True(t, ok)
}

func TestGenerateEmpty(t *testing.T) {
	m := Generate(Params{})
	assert.Empty(t, m.Verts())
}
