package probe

import (
	"context"
	"errors"
	"testing"

	"github.com/annel0/navmesh-editor/internal/area"
	"github.com/annel0/navmesh-editor/internal/buildctx"
	"github.com/annel0/navmesh-editor/internal/filter"
	"github.com/annel0/navmesh-editor/internal/geom"
	"github.com/annel0/navmesh-editor/internal/sample"
	"github.com/annel0/navmesh-editor/internal/settings"
	"github.com/annel0/navmesh-editor/internal/terrain"
	"github.com/annel0/navmesh-editor/internal/tools"
	"github.com/annel0/navmesh-editor/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flat() *geom.Mesh {
	return geom.NewMesh(
		[]vec.Vec3{{X: 0, Z: 0}, {X: 20, Z: 0}, {X: 20, Z: 20}, {X: 0, Z: 20}},
		[][3]int{{0, 2, 1}, {0, 3, 2}},
	)
}

func TestQueryStraightPath(t *testing.T) {
	q := NewQuery(flat(), 1, 0)
	points, surfaces, err := q.FindPath(vec.Vec3{X: 1, Y: 3, Z: 7.5}, vec.Vec3{X: 5, Y: 3, Z: 7.5}, filter.NewQueryFilter())
	require.NoError(t, err)

	require.Len(t, points, 5)
	assert.Len(t, surfaces, 4)
	for _, p := range points {
		assert.InDelta(t, 0, p.Y, 1e-9, "точки опущены на поверхность")
	}
	assert.InDelta(t, 4.0, filter.PathCost(filter.NewQueryFilter(), points, surfaces), 1e-9)
}

func TestQueryRejectsFilteredArea(t *testing.T) {
	m := flat()
	require.True(t, m.AddVolume(geom.ConvexVolume{
		Verts: []vec.Vec3{{X: 2, Z: 0}, {X: 4, Z: 0}, {X: 4, Z: 20}, {X: 2, Z: 20}},
		HMin:  -1, HMax: 1,
		Area: area.Water,
	}))
	q := NewQuery(m, 0.5, 0)

	f := filter.NewQueryFilter(filter.WithExclude(uint32(area.Water)))
	_, _, err := q.FindPath(vec.Vec3{X: 1, Z: 5.3}, vec.Vec3{X: 8, Z: 5.3}, f)
	assert.True(t, errors.Is(err, tools.ErrNoPath))

	points, _, err := q.FindPath(vec.Vec3{X: 1, Z: 5.3}, vec.Vec3{X: 8, Z: 5.3}, filter.NewQueryFilter())
	require.NoError(t, err)
	assert.NotEmpty(t, points)
}

func TestQueryOffMesh(t *testing.T) {
	q := NewQuery(flat(), 1, 0)
	_, _, err := q.FindPath(vec.Vec3{X: 1, Z: 1.5}, vec.Vec3{X: 40, Z: 1.5}, filter.NewQueryFilter())
	assert.True(t, errors.Is(err, tools.ErrNoPath))
}

func TestBuilderWithSample(t *testing.T) {
	bctx := buildctx.New()
	s := sample.New(sample.WithBuilder(Builder{}))
	s.SetContext(bctx)
	defer s.Close()

	s.HandleMeshChanged(terrain.Generate(terrain.DefaultParams()))
	require.True(t, s.HandleBuild(context.Background()))

	_, ok := s.NavMeshQuery().(tools.PathQuery)
	assert.True(t, ok)
	assert.GreaterOrEqual(t, int64(bctx.AccumulatedTime(buildctx.TimerRasterizeTris)), int64(0))
	assert.Len(t, bctx.MemorySamples(), 2)

	// Тестер подхватывает запрос хоста
	nt := tools.NewNavMeshTesterTool(nil)
	s.SetTool(nt)
	s.HandleClick(vec.Vec3{}, vec.Vec3{X: 2.3, Z: 2.6}, true)
	s.HandleClick(vec.Vec3{}, vec.Vec3{X: 5.4, Z: 3.2}, false)
	path, ok := nt.Path()
	require.True(t, ok)
	assert.GreaterOrEqual(t, len(path), 2)
}

func TestBuilderErrors(t *testing.T) {
	bctx := buildctx.New()
	_, err := Builder{}.Build(context.Background(), bctx, geom.NewMesh(nil, nil), settings.Defaults())
	assert.Error(t, err)

	// Вертикальная стена непроходима
	wall := geom.NewMesh(
		[]vec.Vec3{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 5, Y: 5}},
		[][3]int{{0, 1, 2}},
	)
	_, err = Builder{}.Build(context.Background(), bctx, wall, settings.Defaults())
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Builder{}.Build(ctx, bctx, flat(), settings.Defaults())
	assert.ErrorIs(t, err, context.Canceled)
}
