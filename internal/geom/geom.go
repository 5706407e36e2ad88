// Package geom: входная геометрия, которую хост отдаёт инструментам только на чтение,
// плюс выпуклые объёмы, размечающие области навмеша.
package geom

import (
	"math"

	"github.com/annel0/navmesh-editor/internal/area"
	"github.com/annel0/navmesh-editor/internal/vec"
)

// MaxVolumes: предельное число выпуклых объёмов на геометрию
const MaxVolumes = 256

// ConvexVolume: призма, помечающая полигоны внутри себя тегом Area
type ConvexVolume struct {
	Verts []vec.Vec3
	HMin  float64
	HMax  float64
	Area  area.Tag
}

// Contains проверяет, лежит ли точка внутри объёма (по XZ-контуру и высоте)
func (cv ConvexVolume) Contains(p vec.Vec3) bool {
	if p.Y < cv.HMin || p.Y > cv.HMax {
		return false
	}
	return PointInPolyXZ(p, cv.Verts)
}

// Provider: контракт источника геометрии
type Provider interface {
	Verts() []vec.Vec3
	Tris() [][3]int
	Bounds() (minV, maxV vec.Vec3)
	// Raycast возвращает параметр t пересечения отрезка s→p с геометрией.
	Raycast(s, p vec.Vec3) (float64, bool)
	Volumes() []ConvexVolume
	AddVolume(cv ConvexVolume) bool
	DeleteVolume(i int)
}

// Mesh: треугольная сетка в памяти
type Mesh struct {
	verts   []vec.Vec3
	tris    [][3]int
	bmin    vec.Vec3
	bmax    vec.Vec3
	volumes []ConvexVolume
}

// NewMesh создаёт сетку и считает её границы
func NewMesh(verts []vec.Vec3, tris [][3]int) *Mesh {
	m := &Mesh{verts: verts, tris: tris}
	if len(verts) > 0 {
		m.bmin, m.bmax = verts[0], verts[0]
		for _, v := range verts[1:] {
			m.bmin = m.bmin.Min(v)
			m.bmax = m.bmax.Max(v)
		}
	}
	return m
}

func (m *Mesh) Verts() []vec.Vec3 { return m.verts }

func (m *Mesh) Tris() [][3]int { return m.tris }

func (m *Mesh) Bounds() (vec.Vec3, vec.Vec3) { return m.bmin, m.bmax }

func (m *Mesh) Volumes() []ConvexVolume { return m.volumes }

// AddVolume добавляет объём; false, если достигнут MaxVolumes или контур вырожден
func (m *Mesh) AddVolume(cv ConvexVolume) bool {
	if len(m.volumes) >= MaxVolumes || len(cv.Verts) < 3 {
		return false
	}
	m.volumes = append(m.volumes, cv)
	return true
}

// DeleteVolume удаляет объём по индексу; некорректный индекс игнорируется
func (m *Mesh) DeleteVolume(i int) {
	if i < 0 || i >= len(m.volumes) {
		return
	}
	m.volumes = append(m.volumes[:i], m.volumes[i+1:]...)
}

// Raycast ищет ближайшее пересечение отрезка s→p с треугольниками
func (m *Mesh) Raycast(s, p vec.Vec3) (float64, bool) {
	dir := p.Sub(s)
	best := math.MaxFloat64
	hit := false
	for _, tri := range m.tris {
		t, ok := intersectSegmentTriangle(s, dir, m.verts[tri[0]], m.verts[tri[1]], m.verts[tri[2]])
		if ok && t < best {
			best = t
			hit = true
		}
	}
	if !hit {
		return 0, false
	}
	return best, true
}

// intersectSegmentTriangle: тест Мёллера–Трумбора, t ограничен отрезком [0,1]
func intersectSegmentTriangle(s, dir, a, b, c vec.Vec3) (float64, bool) {
	const eps = 1e-9
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	h := dir.Cross(e2)
	det := e1.Dot(h)
	if math.Abs(det) < eps {
		return 0, false
	}
	inv := 1.0 / det
	sv := s.Sub(a)
	u := sv.Dot(h) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := sv.Cross(e1)
	v := dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(q) * inv
	if t < 0 || t > 1 {
		return 0, false
	}
	return t, true
}

// PointInPolyXZ проверяет попадание точки в многоугольник в плоскости XZ
func PointInPolyXZ(p vec.Vec3, verts []vec.Vec3) bool {
	inside := false
	for i, j := 0, len(verts)-1; i < len(verts); j, i = i, i+1 {
		vi, vj := verts[i], verts[j]
		if (vi.Z > p.Z) != (vj.Z > p.Z) &&
			p.X < (vj.X-vi.X)*(p.Z-vi.Z)/(vj.Z-vi.Z)+vi.X {
			inside = !inside
		}
	}
	return inside
}

// VolumeAt возвращает индекс первого объёма, содержащего точку, или -1
func VolumeAt(g Provider, p vec.Vec3) int {
	for i, v := range g.Volumes() {
		if v.Contains(p) {
			return i
		}
	}
	return -1
}

// ConvexHullXZ строит выпуклую оболочку точек в плоскости XZ обходом
// "заворачивания подарка". Возвращает индексы вершин оболочки.
func ConvexHullXZ(pts []vec.Vec3) []int {
	if len(pts) == 0 {
		return nil
	}
	// Самая левая точка гарантированно на оболочке
	start := 0
	for i := 1; i < len(pts); i++ {
		if lessXZ(pts[i], pts[start]) {
			start = i
		}
	}

	var hull []int
	cur := start
	for len(hull) <= len(pts) {
		hull = append(hull, cur)
		end := 0
		for j := 1; j < len(pts); j++ {
			if cur == end || leftXZ(pts[cur], pts[end], pts[j]) {
				end = j
			}
		}
		cur = end
		if cur == start {
			break
		}
	}
	return hull
}

func lessXZ(a, b vec.Vec3) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Z < b.Z
}

// leftXZ: лежит ли c слева от направления a→b
func leftXZ(a, b, c vec.Vec3) bool {
	u1 := b.X - a.X
	v1 := b.Z - a.Z
	u2 := c.X - a.X
	v2 := c.Z - a.Z
	return u1*v2-v1*u2 < 0
}
