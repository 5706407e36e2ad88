package draw

import (
	"github.com/annel0/navmesh-editor/internal/area"
	"github.com/annel0/navmesh-editor/internal/vec"
)

// Vertex: записанная вершина
type Vertex struct {
	Pos   vec.Vec3
	Color uint32
}

// Batch: серия примитивов между Begin и End
type Batch struct {
	Prim     Primitive
	Size     float64
	Vertices []Vertex
}

// Recorder реализует DebugDraw, складывая примитивы в память.
// Используется headless-хостом и в тестах.
type Recorder struct {
	Batches []Batch
	depth   bool
	texture bool
	open    *Batch
}

// NewRecorder создаёт пустой рекордер
func NewRecorder() *Recorder {
	return &Recorder{depth: true}
}

func (r *Recorder) DepthMask(state bool) { r.depth = state }

func (r *Recorder) Texture(state bool) { r.texture = state }

func (r *Recorder) Begin(prim Primitive, size float64) {
	r.open = &Batch{Prim: prim, Size: size}
}

// Vertex добавляет вершину; вне Begin/End вершина отбрасывается
func (r *Recorder) Vertex(pos vec.Vec3, color uint32) {
	if r.open == nil {
		return
	}
	r.open.Vertices = append(r.open.Vertices, Vertex{Pos: pos, Color: color})
}

func (r *Recorder) End() {
	if r.open == nil {
		return
	}
	r.Batches = append(r.Batches, *r.open)
	r.open = nil
}

func (r *Recorder) AreaToCol(tag area.Tag) uint32 {
	return area.Color(tag)
}

// VertexCount возвращает общее число записанных вершин
func (r *Recorder) VertexCount() int {
	n := 0
	for _, b := range r.Batches {
		n += len(b.Vertices)
	}
	return n
}

// Reset очищает записанное (вызывается хостом в начале кадра)
func (r *Recorder) Reset() {
	r.Batches = r.Batches[:0]
	r.open = nil
}
