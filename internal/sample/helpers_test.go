package sample

import (
	"context"
	"errors"
	"fmt"

	"github.com/annel0/navmesh-editor/internal/buildctx"
	"github.com/annel0/navmesh-editor/internal/draw"
	"github.com/annel0/navmesh-editor/internal/geom"
	"github.com/annel0/navmesh-editor/internal/settings"
	"github.com/annel0/navmesh-editor/internal/tool"
	"github.com/annel0/navmesh-editor/internal/vec"
)

type journal struct {
	calls []string
}

func (j *journal) add(format string, args ...interface{}) {
	j.calls = append(j.calls, fmt.Sprintf(format, args...))
}

// stubTool записывает вызовы активного инструмента
type stubTool struct {
	tool.BaseTool
	kind  tool.Kind
	log   *journal
	inits int
}

func (t *stubTool) Kind() tool.Kind { return t.kind }
func (t *stubTool) Init(host tool.Host) {
	t.BaseTool.Init(host)
	t.inits++
	t.log.add("tool.init")
}
func (t *stubTool) Reset()                { t.log.add("tool.reset") }
func (t *stubTool) HandleMenu(ui draw.UI) { ui.Label(t.kind.Description()) }
func (t *stubTool) HandleClick(_, p vec.Vec3, shift bool) {
	t.log.add("tool.click(%g,%v)", p.X, shift)
}
func (t *stubTool) HandleToggle()                     { t.log.add("tool.toggle") }
func (t *stubTool) HandleStep()                       { t.log.add("tool.step") }
func (t *stubTool) HandleUpdate(dt float64)           { t.log.add("tool.update") }
func (t *stubTool) HandleRender()                     { t.log.add("tool.render") }
func (t *stubTool) HandleRenderOverlay(draw.Viewport) { t.log.add("tool.overlay") }
func (t *stubTool) Close() error {
	t.log.add("tool.close")
	return nil
}

// stubState записывает вызовы состояния режима
type stubState struct {
	tool.BaseState
	name string
	log  *journal
}

func (s *stubState) Init(host tool.Host) {
	s.BaseState.Init(host)
	s.log.add("%s.init", s.name)
}
func (s *stubState) Reset()                            { s.log.add("%s.reset", s.name) }
func (s *stubState) HandleUpdate(float64)              { s.log.add("%s.update", s.name) }
func (s *stubState) HandleRender()                     { s.log.add("%s.render", s.name) }
func (s *stubState) HandleRenderOverlay(draw.Viewport) { s.log.add("%s.overlay", s.name) }
func (s *stubState) Close() error {
	s.log.add("%s.close", s.name)
	return nil
}

// stubBuilder возвращает заранее заданный результат
type stubBuilder struct {
	result BuildResult
	err    error
	calls  int
	seen   settings.BuildSettings
}

func (b *stubBuilder) Build(_ context.Context, bctx *buildctx.Context, _ geom.Provider, s settings.BuildSettings) (BuildResult, error) {
	b.calls++
	b.seen = s
	bctx.Log(buildctx.Progress, "stub build")
	return b.result, b.err
}

var errBuildFailed = errors.New("voxelization failed")

// quad: два треугольника 10x10 на высоте 0
func quad() *geom.Mesh {
	return geom.NewMesh(
		[]vec.Vec3{{X: 0, Z: 0}, {X: 10, Z: 0}, {X: 10, Z: 10}, {X: 0, Z: 10}},
		[][3]int{{0, 2, 1}, {0, 3, 2}},
	)
}
