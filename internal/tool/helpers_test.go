package tool

import (
	"errors"
	"fmt"

	"github.com/annel0/navmesh-editor/internal/buildctx"
	"github.com/annel0/navmesh-editor/internal/draw"
	"github.com/annel0/navmesh-editor/internal/geom"
	"github.com/annel0/navmesh-editor/internal/vec"
)

// journal: общий журнал вызовов для подставных инструментов и состояний
type journal struct {
	calls []string
}

func (j *journal) add(format string, args ...interface{}) {
	j.calls = append(j.calls, fmt.Sprintf(format, args...))
}

type fakeHost struct {
	states *StateRegistry
}

func (h *fakeHost) InputGeom() geom.Provider          { return nil }
func (h *fakeHost) NavMesh() any                      { return nil }
func (h *fakeHost) NavMeshQuery() any                 { return nil }
func (h *fakeHost) Crowd() any                        { return nil }
func (h *fakeHost) BuildContext() *buildctx.Context   { return nil }
func (h *fakeHost) DebugDraw() draw.DebugDraw         { return nil }
func (h *fakeHost) UI() draw.UI                       { return nil }
func (h *fakeHost) AgentRadius() float64              { return 0.6 }
func (h *fakeHost) AgentHeight() float64              { return 2 }
func (h *fakeHost) AgentClimb() float64               { return 0.9 }
func (h *fakeHost) SetToolState(kind Kind, s State)   { h.states.Set(kind, s) }
func (h *fakeHost) ToolState(kind Kind) (State, bool) { return h.states.Get(kind) }

// recordingTool записывает каждый вызов в журнал
type recordingTool struct {
	kind     Kind
	log      *journal
	host     Host
	inits    int
	closes   int
	closeErr error
}

func newRecordingTool(kind Kind, log *journal) *recordingTool {
	return &recordingTool{kind: kind, log: log}
}

func (t *recordingTool) Kind() Kind { return t.kind }
func (t *recordingTool) Init(host Host) {
	t.inits++
	t.host = host
	t.log.add("%s.init", t.kind)
}
func (t *recordingTool) Reset()             { t.log.add("%s.reset", t.kind) }
func (t *recordingTool) HandleMenu(draw.UI) { t.log.add("%s.menu", t.kind) }
func (t *recordingTool) HandleClick(_, p vec.Vec3, shift bool) {
	t.log.add("%s.click(%g,%v)", t.kind, p.X, shift)
}
func (t *recordingTool) HandleRender()                     { t.log.add("%s.render", t.kind) }
func (t *recordingTool) HandleRenderOverlay(draw.Viewport) { t.log.add("%s.overlay", t.kind) }
func (t *recordingTool) HandleToggle()                     { t.log.add("%s.toggle", t.kind) }
func (t *recordingTool) HandleStep()                       { t.log.add("%s.step", t.kind) }
func (t *recordingTool) HandleUpdate(dt float64)           { t.log.add("%s.update(%g)", t.kind, dt) }
func (t *recordingTool) Close() error {
	t.closes++
	t.log.add("%s.close", t.kind)
	return t.closeErr
}

// plainTool не реализует io.Closer
type plainTool struct {
	BaseTool
	kind Kind
}

func (t *plainTool) Kind() Kind { return t.kind }

// recordingState записывает каждый вызов в журнал
type recordingState struct {
	kind   Kind
	log    *journal
	closes int
}

func (s *recordingState) Init(Host)                         { s.log.add("%s.state.init", s.kind) }
func (s *recordingState) Reset()                            { s.log.add("%s.state.reset", s.kind) }
func (s *recordingState) HandleRender()                     { s.log.add("%s.state.render", s.kind) }
func (s *recordingState) HandleRenderOverlay(draw.Viewport) { s.log.add("%s.state.overlay", s.kind) }
func (s *recordingState) HandleUpdate(dt float64)           { s.log.add("%s.state.update(%g)", s.kind, dt) }
func (s *recordingState) Close() error {
	s.closes++
	return errors.New("already released")
}
