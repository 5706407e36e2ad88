// Package terrain генерирует тестовую входную геометрию: карту высот на шуме Перлина.
package terrain

import (
	"math"

	"github.com/annel0/navmesh-editor/internal/geom"
	"github.com/annel0/navmesh-editor/internal/vec"
	"github.com/aquilax/go-perlin"
)

// Params параметры генерации
type Params struct {
	Width     int     // Количество ячеек по X
	Depth     int     // Количество ячеек по Z
	CellSize  float64 // Размер ячейки в мировых единицах
	Amplitude float64 // Максимальная высота рельефа
	Frequency float64 // Масштаб шума
	Seed      int64
}

// DefaultParams возвращает параметры небольшого холмистого участка
func DefaultParams() Params {
	return Params{
		Width:     32,
		Depth:     32,
		CellSize:  1.0,
		Amplitude: 4.0,
		Frequency: 0.08,
		Seed:      12345,
	}
}

// Generate строит сетку (Width+1)x(Depth+1) вершин, по два треугольника на ячейку
func Generate(p Params) *geom.Mesh {
	if p.Width <= 0 || p.Depth <= 0 {
		return geom.NewMesh(nil, nil)
	}

	alpha := 2.0  // Сглаживание шума
	beta := 2.0   // Частота шума
	n := int32(3) // Количество октав
	noise := perlin.NewPerlin(alpha, beta, n, p.Seed)

	cols := p.Width + 1
	verts := make([]vec.Vec3, 0, cols*(p.Depth+1))
	for z := 0; z <= p.Depth; z++ {
		for x := 0; x <= p.Width; x++ {
			// Шум в диапазоне [-1,1] переводим в [0,1]
			h := (noise.Noise2D(float64(x)*p.Frequency, float64(z)*p.Frequency) + 1.0) / 2.0
			h = math.Max(0, math.Min(1, h))
			verts = append(verts, vec.Vec3{
				X: float64(x) * p.CellSize,
				Y: h * p.Amplitude,
				Z: float64(z) * p.CellSize,
			})
		}
	}

	tris := make([][3]int, 0, p.Width*p.Depth*2)
	for z := 0; z < p.Depth; z++ {
		for x := 0; x < p.Width; x++ {
			i0 := z*cols + x
			i1 := i0 + 1
			i2 := i0 + cols
			i3 := i2 + 1
			tris = append(tris, [3]int{i0, i2, i1}, [3]int{i1, i2, i3})
		}
	}
	return geom.NewMesh(verts, tris)
}
