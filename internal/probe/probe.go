// Package probe: простейший "навмеш" для headless-режима: маршрут ищется
// прямым отрезком по поверхности входной геометрии.
package probe

import (
	"context"
	"fmt"
	"math"

	"github.com/annel0/navmesh-editor/internal/area"
	"github.com/annel0/navmesh-editor/internal/buildctx"
	"github.com/annel0/navmesh-editor/internal/filter"
	"github.com/annel0/navmesh-editor/internal/geom"
	"github.com/annel0/navmesh-editor/internal/sample"
	"github.com/annel0/navmesh-editor/internal/settings"
	"github.com/annel0/navmesh-editor/internal/tools"
	"github.com/annel0/navmesh-editor/internal/vec"
)

// Query ищет путь прямым отрезком, разбитым на шаги размером step.
// Каждый шаг опускается на поверхность лучом сверху; шаг без опоры или
// отвергнутый фильтром означает отсутствие пути.
type Query struct {
	geom   geom.Provider
	step   float64
	climb  float64
	height float64
}

// NewQuery создаёт запрос над геометрией g
func NewQuery(g geom.Provider, step, climb float64) *Query {
	if step <= 0 {
		step = 1
	}
	_, bmax := g.Bounds()
	return &Query{geom: g, step: step, climb: climb, height: bmax.Y + 1}
}

// FindPath реализует tools.PathQuery
func (q *Query) FindPath(start, end vec.Vec3, f filter.Filter) ([]vec.Vec3, []filter.Surface, error) {
	n := int(math.Ceil(start.DistanceXZTo(end) / q.step))
	if n < 1 {
		n = 1
	}

	points := make([]vec.Vec3, 0, n+1)
	surfaces := make([]filter.Surface, 0, n)
	var prev vec.Vec3
	for i := 0; i <= n; i++ {
		p, ok := q.ground(start.Lerp(end, float64(i)/float64(n)))
		if !ok {
			return nil, nil, fmt.Errorf("%w: нет опоры в %v", tools.ErrNoPath, p)
		}
		if i > 0 && q.climb > 0 && math.Abs(p.Y-prev.Y) > q.climb {
			return nil, nil, fmt.Errorf("%w: перепад %.2f", tools.ErrNoPath, p.Y-prev.Y)
		}
		if i > 0 {
			s := filter.Surface{Ref: uint64(i), Tag: q.tagAt(prev.Lerp(p, 0.5))}
			if !f.PassFilter(s) {
				return nil, nil, fmt.Errorf("%w: область %s отвергнута", tools.ErrNoPath, s.Tag)
			}
			surfaces = append(surfaces, s)
		}
		points = append(points, p)
		prev = p
	}
	return points, surfaces, nil
}

// ground опускает точку на поверхность
func (q *Query) ground(p vec.Vec3) (vec.Vec3, bool) {
	bmin, _ := q.geom.Bounds()
	top := vec.Vec3{X: p.X, Y: q.height, Z: p.Z}
	bottom := vec.Vec3{X: p.X, Y: bmin.Y - 1, Z: p.Z}
	t, ok := q.geom.Raycast(top, bottom)
	if !ok {
		return p, false
	}
	return top.Lerp(bottom, t), true
}

func (q *Query) tagAt(p vec.Vec3) area.Tag {
	if i := geom.VolumeAt(q.geom, p); i >= 0 {
		return q.geom.Volumes()[i].Area
	}
	return area.Ground
}

// Builder "строит" навмеш: проверяет геометрию, замеряет этапы и
// возвращает Query в качестве запроса пути.
type Builder struct{}

// Build реализует sample.Builder
func (Builder) Build(ctx context.Context, bctx *buildctx.Context, g geom.Provider, s settings.BuildSettings) (sample.BuildResult, error) {
	if err := ctx.Err(); err != nil {
		return sample.BuildResult{}, err
	}
	if len(g.Tris()) == 0 {
		return sample.BuildResult{}, fmt.Errorf("нет треугольников во входной геометрии")
	}

	if _, err := bctx.SampleMemory("build:start"); err != nil {
		bctx.Log(buildctx.Warning, "memory sample: %v", err)
	}

	bmin, bmax := g.Bounds()
	gw := int((bmax.X-bmin.X)/s.CellSize + 0.5)
	gh := int((bmax.Z-bmin.Z)/s.CellSize + 0.5)
	bctx.Log(buildctx.Progress, "Building navigation:")
	bctx.Log(buildctx.Progress, " - %d x %d cells", gw, gh)
	bctx.Log(buildctx.Progress, " - %.1fK verts, %.1fK tris", float64(len(g.Verts()))/1000, float64(len(g.Tris()))/1000)

	bctx.StartTimer(buildctx.TimerRasterizeTris)
	walkable := 0
	slope := math.Cos(s.AgentMaxSlope / 180 * math.Pi)
	verts := g.Verts()
	for _, t := range g.Tris() {
		n := verts[t[1]].Sub(verts[t[0]]).Cross(verts[t[2]].Sub(verts[t[0]]))
		if l := n.Length(); l > 0 && math.Abs(n.Y/l) >= slope {
			walkable++
		}
	}
	bctx.StopTimer(buildctx.TimerRasterizeTris)

	bctx.StartTimer(buildctx.TimerMarkConvexArea)
	volumes := len(g.Volumes())
	bctx.StopTimer(buildctx.TimerMarkConvexArea)

	bctx.Log(buildctx.Progress, " - %d walkable tris, %d convex volumes", walkable, volumes)
	if walkable == 0 {
		return sample.BuildResult{}, fmt.Errorf("нет проходимых треугольников (max slope %.0f)", s.AgentMaxSlope)
	}

	if _, err := bctx.SampleMemory("build:end"); err != nil {
		bctx.Log(buildctx.Warning, "memory sample: %v", err)
	}

	q := NewQuery(g, s.CellSize*float64(s.WalkableRadius()+1), s.AgentMaxClimb*4)
	return sample.BuildResult{NavMesh: g, NavMeshQuery: q}, nil
}
