// Package draw описывает поверхности отрисовки, которые инструменты получают от хоста:
// debug-draw для 3D примитивов, матрицы проекции для оверлея и простой immediate-mode UI.
package draw

import (
	"github.com/annel0/navmesh-editor/internal/area"
	"github.com/annel0/navmesh-editor/internal/vec"
)

// Primitive: тип примитива debug-draw
type Primitive int

const (
	Points Primitive = iota
	Lines
	Tris
	Quads
)

func (p Primitive) String() string {
	switch p {
	case Points:
		return "points"
	case Lines:
		return "lines"
	case Tris:
		return "tris"
	case Quads:
		return "quads"
	default:
		return "unknown"
	}
}

// DebugDraw: контракт бэкенда отрисовки
type DebugDraw interface {
	DepthMask(state bool)
	Texture(state bool)
	// Begin начинает серию примитивов; size применяется к точкам и линиям.
	Begin(prim Primitive, size float64)
	Vertex(pos vec.Vec3, color uint32)
	End()
	// AreaToCol возвращает цвет для тега области.
	AreaToCol(tag area.Tag) uint32
}

// RGBA упаковывает цвет
func RGBA(r, g, b, a uint8) uint32 {
	return area.RGBA(r, g, b, a)
}

// TransCol меняет альфу цвета
func TransCol(c uint32, a uint8) uint32 {
	return (c & 0x00ffffff) | uint32(a)<<24
}

// Box рисует каркас коробки линиями
func Box(dd DebugDraw, minV, maxV vec.Vec3, color uint32, lineWidth float64) {
	c := [8]vec.Vec3{
		{X: minV.X, Y: minV.Y, Z: minV.Z},
		{X: maxV.X, Y: minV.Y, Z: minV.Z},
		{X: maxV.X, Y: minV.Y, Z: maxV.Z},
		{X: minV.X, Y: minV.Y, Z: maxV.Z},
		{X: minV.X, Y: maxV.Y, Z: minV.Z},
		{X: maxV.X, Y: maxV.Y, Z: minV.Z},
		{X: maxV.X, Y: maxV.Y, Z: maxV.Z},
		{X: minV.X, Y: maxV.Y, Z: maxV.Z},
	}
	edges := [12][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}
	dd.Begin(Lines, lineWidth)
	for _, e := range edges {
		dd.Vertex(c[e[0]], color)
		dd.Vertex(c[e[1]], color)
	}
	dd.End()
}

// Polyline рисует ломаную
func Polyline(dd DebugDraw, pts []vec.Vec3, color uint32, lineWidth float64, closed bool) {
	if len(pts) < 2 {
		return
	}
	dd.Begin(Lines, lineWidth)
	for i := 0; i+1 < len(pts); i++ {
		dd.Vertex(pts[i], color)
		dd.Vertex(pts[i+1], color)
	}
	if closed && len(pts) > 2 {
		dd.Vertex(pts[len(pts)-1], color)
		dd.Vertex(pts[0], color)
	}
	dd.End()
}

// Cross рисует крестик-маркер в точке
func Cross(dd DebugDraw, p vec.Vec3, size float64, color uint32) {
	dd.Begin(Lines, 2)
	dd.Vertex(vec.Vec3{X: p.X - size, Y: p.Y, Z: p.Z}, color)
	dd.Vertex(vec.Vec3{X: p.X + size, Y: p.Y, Z: p.Z}, color)
	dd.Vertex(vec.Vec3{X: p.X, Y: p.Y - size, Z: p.Z}, color)
	dd.Vertex(vec.Vec3{X: p.X, Y: p.Y + size, Z: p.Z}, color)
	dd.Vertex(vec.Vec3{X: p.X, Y: p.Y, Z: p.Z - size}, color)
	dd.Vertex(vec.Vec3{X: p.X, Y: p.Y, Z: p.Z + size}, color)
	dd.End()
}
