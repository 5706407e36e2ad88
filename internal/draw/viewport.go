package draw

import "github.com/annel0/navmesh-editor/internal/vec"

// Viewport: матрицы проекции и вида (column-major, как в OpenGL) и прямоугольник окна
type Viewport struct {
	Proj  [16]float64
	Model [16]float64
	View  [4]int
}

// Identity возвращает единичную матрицу
func Identity() [16]float64 {
	return [16]float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// NewViewport создаёт вьюпорт с единичными матрицами
func NewViewport(width, height int) Viewport {
	return Viewport{
		Proj:  Identity(),
		Model: Identity(),
		View:  [4]int{0, 0, width, height},
	}
}

func mulVec4(m [16]float64, in [4]float64) [4]float64 {
	var out [4]float64
	for i := 0; i < 4; i++ {
		out[i] = m[i]*in[0] + m[4+i]*in[1] + m[8+i]*in[2] + m[12+i]*in[3]
	}
	return out
}

// Project переводит мировую точку в оконные координаты (семантика gluProject).
// ok == false, если точка лежит в плоскости камеры.
func (v Viewport) Project(p vec.Vec3) (x, y, depth float64, ok bool) {
	in := [4]float64{p.X, p.Y, p.Z, 1}
	eye := mulVec4(v.Model, in)
	clip := mulVec4(v.Proj, eye)
	if clip[3] == 0 {
		return 0, 0, 0, false
	}
	ndcX := clip[0] / clip[3]
	ndcY := clip[1] / clip[3]
	ndcZ := clip[2] / clip[3]

	x = float64(v.View[0]) + float64(v.View[2])*(ndcX*0.5+0.5)
	y = float64(v.View[1]) + float64(v.View[3])*(ndcY*0.5+0.5)
	depth = ndcZ*0.5 + 0.5
	return x, y, depth, true
}
