// Package sample: хост редактора: владеет активным инструментом, слотами
// состояний режимов, параметрами сборки и поверхностями отрисовки.
package sample

import (
	"context"
	"fmt"
	"time"

	"github.com/annel0/navmesh-editor/internal/buildctx"
	"github.com/annel0/navmesh-editor/internal/draw"
	"github.com/annel0/navmesh-editor/internal/eventbus"
	"github.com/annel0/navmesh-editor/internal/geom"
	"github.com/annel0/navmesh-editor/internal/logging"
	"github.com/annel0/navmesh-editor/internal/observability"
	"github.com/annel0/navmesh-editor/internal/settings"
	"github.com/annel0/navmesh-editor/internal/tool"
	"github.com/annel0/navmesh-editor/internal/vec"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DrawFlags: флаги отладочной отрисовки навмеша
type DrawFlags uint8

const (
	DrawOffMeshConns DrawFlags = 1 << iota
	DrawClosedList
	DrawColorTiles
)

// BuildResult: то, что возвращает внешний построитель навмеша.
// Значения непрозрачны для хоста и передаются инструментам как есть.
type BuildResult struct {
	NavMesh      any
	NavMeshQuery any
	Crowd        any
}

// Builder строит навмеш по геометрии и параметрам
type Builder interface {
	Build(ctx context.Context, bctx *buildctx.Context, g geom.Provider, s settings.BuildSettings) (BuildResult, error)
}

// ToolFactory создаёт инструмент по режиму для панели выбора инструментов
type ToolFactory map[tool.Kind]func() tool.Tool

// Click: клик в кадре: луч s→p и модификатор
type Click struct {
	S, P  vec.Vec3
	Shift bool
}

// FrameInput: ввод одного кадра
type FrameInput struct {
	// Menus включает обработку панелей UI в фазе ввода.
	Menus  bool
	Clicks []Click
	Toggle bool
	Step   bool
	DT     float64
	View   draw.Viewport
}

// Sample реализует tool.Host.
// Копировать Sample нельзя: инструменты держат на него указатель.
type Sample struct {
	noCopy noCopy

	geom     geom.Provider
	navMesh  any
	navQuery any
	crowd    any

	navMeshDrawFlags DrawFlags
	settings         settings.BuildSettings

	controller *tool.Controller
	states     *tool.StateRegistry

	ctx     *buildctx.Context
	dd      draw.DebugDraw
	ui      draw.UI
	builder Builder
	tools   ToolFactory

	bus     eventbus.EventBus
	metrics *observability.EditorMetrics
	tracer  trace.Tracer
	logger  *logging.Logger
}

// Option настраивает Sample
type Option func(*Sample)

func WithDebugDraw(dd draw.DebugDraw) Option { return func(s *Sample) { s.dd = dd } }
func WithUI(ui draw.UI) Option               { return func(s *Sample) { s.ui = ui } }
func WithBuilder(b Builder) Option           { return func(s *Sample) { s.builder = b } }
func WithTools(f ToolFactory) Option         { return func(s *Sample) { s.tools = f } }
func WithEventBus(bus eventbus.EventBus) Option {
	return func(s *Sample) { s.bus = bus }
}
func WithMetrics(m *observability.EditorMetrics) Option {
	return func(s *Sample) { s.metrics = m }
}
func WithTracer(t trace.Tracer) Option { return func(s *Sample) { s.tracer = t } }

// WithNavMesh задаёт уже построенный навмеш (например, загруженный из файла)
func WithNavMesh(res BuildResult) Option {
	return func(s *Sample) {
		s.navMesh = res.NavMesh
		s.navQuery = res.NavMeshQuery
		s.crowd = res.Crowd
	}
}

// New создаёт хост с настройками по умолчанию и без активного инструмента
func New(opts ...Option) *Sample {
	s := &Sample{
		navMeshDrawFlags: DrawOffMeshConns | DrawClosedList,
		settings:         settings.Defaults(),
		states:           tool.NewStateRegistry(),
		dd:               draw.NewRecorder(),
		logger:           logging.GetEditorLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tracer == nil {
		s.tracer = observability.Tracer()
	}
	if s.ctx == nil {
		s.ctx = buildctx.New(buildctx.WithLogger(logging.GetBuildLogger()))
	}

	s.controller = tool.NewController(s)
	s.controller.OnSwitch(s.onToolSwitched)
	return s
}

func (s *Sample) onToolSwitched(prev, next tool.Kind) {
	s.metrics.ToolSwitched(prev.String(), next.String())
	s.emit(eventbus.TypeToolSwitched, eventbus.ToolSwitched{From: prev.String(), To: next.String()})
}

func (s *Sample) emit(eventType string, payload interface{}) {
	if err := eventbus.Emit(context.Background(), s.bus, eventType, 1, payload); err != nil {
		s.logger.Warn("publish %s: %v", eventType, err)
	}
}

// SetContext задаёт контекст сборки. nil оставляет текущий.
func (s *Sample) SetContext(ctx *buildctx.Context) {
	if ctx != nil {
		s.ctx = ctx
	}
}

// SetTool заменяет активный инструмент (см. tool.Controller.SetTool)
func (s *Sample) SetTool(t tool.Tool) {
	_, span := s.tracer.Start(context.Background(), "sample.SetTool")
	defer span.End()

	s.controller.SetTool(t)
	span.SetAttributes(attribute.String("tool.kind", s.controller.ActiveKind().String()))
}

// Tool возвращает активный инструмент
func (s *Sample) Tool() (tool.Tool, bool) { return s.controller.Active() }

// ActiveKind возвращает режим активного инструмента
func (s *Sample) ActiveKind() tool.Kind { return s.controller.ActiveKind() }

// Controller даёт доступ к контроллеру (подписка на смену инструмента)
func (s *Sample) Controller() *tool.Controller { return s.controller }

func (s *Sample) ToolState(kind tool.Kind) (tool.State, bool) {
	return s.states.Get(kind)
}

// SetToolState занимает слот состояния режима; nil освобождает его
func (s *Sample) SetToolState(kind tool.Kind, st tool.State) {
	s.states.Set(kind, st)
	s.metrics.StatesRegistered(s.states.Len())
	s.emit(eventbus.TypeToolStateChanged, eventbus.ToolStateChanged{Kind: kind.String(), Registered: st != nil})
}

func (s *Sample) DebugDraw() draw.DebugDraw { return s.dd }

func (s *Sample) UI() draw.UI { return s.ui }

func (s *Sample) BuildContext() *buildctx.Context { return s.ctx }

func (s *Sample) InputGeom() geom.Provider { return s.geom }

func (s *Sample) NavMesh() any { return s.navMesh }

func (s *Sample) NavMeshQuery() any { return s.navQuery }

func (s *Sample) Crowd() any { return s.crowd }

func (s *Sample) AgentRadius() float64 { return s.settings.AgentRadius }

func (s *Sample) AgentHeight() float64 { return s.settings.AgentHeight }

func (s *Sample) AgentClimb() float64 { return s.settings.AgentMaxClimb }

func (s *Sample) NavMeshDrawFlags() DrawFlags { return s.navMeshDrawFlags }

func (s *Sample) SetNavMeshDrawFlags(flags DrawFlags) { s.navMeshDrawFlags = flags }

// CollectSettings возвращает снимок текущих параметров сборки
func (s *Sample) CollectSettings() settings.BuildSettings {
	return s.settings
}

// ApplySettings заменяет параметры сборки
func (s *Sample) ApplySettings(bs settings.BuildSettings) {
	if bs == s.settings {
		return
	}
	s.settings = bs
	s.logger.Debug("Build settings applied (cell %.2f/%.2f, partition %s)", bs.CellSize, bs.CellHeight, bs.PartitionType)
	s.emit(eventbus.TypeSettingsApplied, bs)
}

// ResetCommonSettings возвращает параметры сборки к значениям по умолчанию
func (s *Sample) ResetCommonSettings() {
	s.ApplySettings(settings.Defaults())
}

// HandleClick передаёт клик активному инструменту
func (s *Sample) HandleClick(start, p vec.Vec3, shift bool) {
	s.metrics.Event("click")
	s.controller.HandleClick(start, p, shift)
}

func (s *Sample) HandleToggle() {
	s.metrics.Event("toggle")
	s.controller.HandleToggle()
}

func (s *Sample) HandleStep() {
	s.metrics.Event("step")
	s.controller.HandleStep()
}

// HandleUpdate обновляет активный инструмент, затем все состояния режимов
func (s *Sample) HandleUpdate(dt float64) {
	s.controller.HandleUpdate(dt)
	s.UpdateToolStates(dt)
}

// HandleRender рисует входную геометрию, её выпуклые объёмы и активный инструмент.
// Состояния режимов рисуются отдельно (RenderToolStates).
func (s *Sample) HandleRender() {
	if s.dd != nil && s.geom != nil {
		renderGeom(s.dd, s.geom)
	}
	s.controller.HandleRender()
}

func (s *Sample) HandleRenderOverlay(view draw.Viewport) {
	s.controller.HandleRenderOverlay(view)
}

// HandleMeshChanged подменяет входную геометрию. Навмеш прежней геометрии
// больше не действителен; инструменты и состояния сбрасываются и
// инициализируются заново.
func (s *Sample) HandleMeshChanged(g geom.Provider) {
	_, span := s.tracer.Start(context.Background(), "sample.HandleMeshChanged")
	defer span.End()

	s.geom = g
	s.navMesh, s.navQuery, s.crowd = nil, nil, nil

	s.controller.ResetActive()
	s.controller.InitActive()
	s.ResetToolStates()
	s.InitToolStates()

	verts := 0
	if g != nil {
		verts = len(g.Verts())
	}
	span.SetAttributes(attribute.Int("geom.verts", verts))
	s.emit(eventbus.TypeMeshChanged, map[string]int{"verts": verts})
}

// HandleBuild строит навмеш через внедрённый Builder.
// Без построителя или геометрии возвращает false.
func (s *Sample) HandleBuild(ctx context.Context) bool {
	if s.builder == nil {
		s.logger.Warn("HandleBuild: построитель навмеша не задан")
		return false
	}
	if s.geom == nil {
		s.ctx.Log(buildctx.Error, "buildNavigation: Input mesh is not specified.")
		return false
	}

	ctx, span := s.tracer.Start(ctx, "sample.HandleBuild")
	defer span.End()

	s.ctx.ResetTimers()
	s.ctx.StartTimer(buildctx.TimerTotal)
	res, err := s.builder.Build(ctx, s.ctx, s.geom, s.settings)
	s.ctx.StopTimer(buildctx.TimerTotal)
	elapsed := s.ctx.AccumulatedTime(buildctx.TimerTotal)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.ctx.Log(buildctx.Error, "buildNavigation: %v", err)
		s.emit(eventbus.TypeBuildFinished, eventbus.BuildFinished{OK: false, DurationMs: durationMs(elapsed)})
		return false
	}

	s.navMesh, s.navQuery, s.crowd = res.NavMesh, res.NavMeshQuery, res.Crowd
	s.ctx.Log(buildctx.Progress, ">> Navmesh built in %s", elapsed)

	s.controller.InitActive()
	s.InitToolStates()

	s.emit(eventbus.TypeBuildFinished, eventbus.BuildFinished{OK: true, DurationMs: durationMs(elapsed)})
	return true
}

func durationMs(d time.Duration) float64 {
	if d < 0 {
		return 0
	}
	return float64(d) / float64(time.Millisecond)
}

func (s *Sample) InitToolStates() { s.states.InitAll(s) }

func (s *Sample) ResetToolStates() { s.states.ResetAll() }

func (s *Sample) UpdateToolStates(dt float64) { s.states.UpdateAll(dt) }

func (s *Sample) RenderToolStates() { s.states.RenderAll() }

func (s *Sample) RenderOverlayToolStates(view draw.Viewport) { s.states.RenderOverlayAll(view) }

// Frame прогоняет один кадр: ввод, обновление, отрисовка, оверлей.
// На каждом шаге сначала активный инструмент, затем состояния режимов.
func (s *Sample) Frame(in FrameInput) {
	start := time.Now()
	defer func() { s.metrics.ObserveFrame(time.Since(start)) }()

	if in.Menus && s.ui != nil {
		s.HandleSettings(s.ui)
		s.HandleTools(s.ui)
		s.HandleDebugMode(s.ui)
	}
	for _, c := range in.Clicks {
		s.HandleClick(c.S, c.P, c.Shift)
	}
	if in.Toggle {
		s.HandleToggle()
	}
	if in.Step {
		s.HandleStep()
	}

	s.HandleUpdate(in.DT)

	s.HandleRender()
	s.RenderToolStates()

	s.HandleRenderOverlay(in.View)
	s.RenderOverlayToolStates(in.View)
}

// Close снимает активный инструмент и освобождает все состояния режимов
func (s *Sample) Close() error {
	s.controller.Close()
	s.states.Close()
	s.metrics.StatesRegistered(0)
	return nil
}

// String нужен для логов
func (s *Sample) String() string {
	return fmt.Sprintf("Sample{tool=%s states=%d}", s.controller.ActiveKind(), s.states.Len())
}

// noCopy помечает типы, которые нельзя копировать (go vet copylocks)
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
