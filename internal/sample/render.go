package sample

import (
	"math"

	"github.com/annel0/navmesh-editor/internal/draw"
	"github.com/annel0/navmesh-editor/internal/geom"
	"github.com/annel0/navmesh-editor/internal/vec"
)

// renderGeom рисует треугольники входной геометрии, затеняя их по наклону,
// и контуры выпуклых объёмов цветом их области.
func renderGeom(dd draw.DebugDraw, g geom.Provider) {
	verts := g.Verts()
	tris := g.Tris()

	if len(tris) > 0 {
		dd.DepthMask(true)
		dd.Begin(draw.Tris, 1)
		for _, t := range tris {
			a, b, c := verts[t[0]], verts[t[1]], verts[t[2]]
			col := slopeColor(a, b, c)
			dd.Vertex(a, col)
			dd.Vertex(b, col)
			dd.Vertex(c, col)
		}
		dd.End()
	}

	dd.DepthMask(false)
	for _, v := range g.Volumes() {
		col := draw.TransCol(dd.AreaToCol(v.Area), 220)
		top := make([]vec.Vec3, len(v.Verts))
		for i, p := range v.Verts {
			top[i] = vec.Vec3{X: p.X, Y: v.HMax, Z: p.Z}
		}
		draw.Polyline(dd, top, col, 2, true)
	}
	dd.DepthMask(true)
}

// slopeColor светлее для горизонтальных треугольников
func slopeColor(a, b, c vec.Vec3) uint32 {
	n := b.Sub(a).Cross(c.Sub(a))
	l := n.Length()
	if l == 0 {
		return draw.RGBA(64, 64, 64, 255)
	}
	shade := uint8(64 + 160*math.Abs(n.Y/l))
	return draw.RGBA(shade, shade, shade, 255)
}
