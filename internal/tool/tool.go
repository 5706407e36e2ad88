// Package tool: каркас интерактивных инструментов редактора навмеша.
//
// В каждый момент активен не более одного Tool (Controller), при этом у каждого
// режима может быть своё пассивное состояние State (StateRegistry), которое
// обновляется и рисуется каждый кадр независимо от активного инструмента.
// Всё выполняется в одном потоке кадра.
package tool

import (
	"github.com/annel0/navmesh-editor/internal/buildctx"
	"github.com/annel0/navmesh-editor/internal/draw"
	"github.com/annel0/navmesh-editor/internal/geom"
	"github.com/annel0/navmesh-editor/internal/vec"
)

// Host: то, что инструменты получают от приложения при инициализации.
// Навмеш, запрос пути и симулятор толпы для каркаса непрозрачны.
type Host interface {
	InputGeom() geom.Provider
	NavMesh() any
	NavMeshQuery() any
	Crowd() any
	BuildContext() *buildctx.Context
	DebugDraw() draw.DebugDraw
	UI() draw.UI
	ToolState(kind Kind) (State, bool)
	SetToolState(kind Kind, s State)
	AgentRadius() float64
	AgentHeight() float64
	AgentClimb() float64
}

// Tool: интерактивный режим редактирования.
// Если Tool реализует io.Closer, Close вызывается при замене инструмента.
type Tool interface {
	Kind() Kind
	Init(host Host)
	Reset()
	HandleMenu(ui draw.UI)
	// HandleClick получает луч s→p и точку попадания p.
	HandleClick(s, p vec.Vec3, shift bool)
	HandleRender()
	HandleRenderOverlay(view draw.Viewport)
	HandleToggle()
	HandleStep()
	HandleUpdate(dt float64)
}

// State: пассивное состояние режима (кэш данных, визуализация).
// Кликов и меню у него нет. Если State реализует io.Closer, Close вызывается
// при замене слота и при закрытии реестра.
type State interface {
	Init(host Host)
	Reset()
	HandleRender()
	HandleRenderOverlay(view draw.Viewport)
	HandleUpdate(dt float64)
}

// BaseTool: встраиваемая реализация Tool с пустыми обработчиками.
// Kind встраивающий тип обязан определить сам.
type BaseTool struct {
	host Host
}

func (b *BaseTool) Init(host Host)                    { b.host = host }
func (b *BaseTool) Host() Host                        { return b.host }
func (b *BaseTool) Reset()                            {}
func (b *BaseTool) HandleMenu(draw.UI)                {}
func (b *BaseTool) HandleClick(_, _ vec.Vec3, _ bool) {}
func (b *BaseTool) HandleRender()                     {}
func (b *BaseTool) HandleRenderOverlay(draw.Viewport) {}
func (b *BaseTool) HandleToggle()                     {}
func (b *BaseTool) HandleStep()                       {}
func (b *BaseTool) HandleUpdate(float64)              {}

// BaseState: встраиваемая реализация State с пустыми обработчиками
type BaseState struct {
	host Host
}

func (b *BaseState) Init(host Host)                    { b.host = host }
func (b *BaseState) Host() Host                        { return b.host }
func (b *BaseState) Reset()                            {}
func (b *BaseState) HandleRender()                     {}
func (b *BaseState) HandleRenderOverlay(draw.Viewport) {}
func (b *BaseState) HandleUpdate(float64)              {}

// noCopy помечает типы, которые нельзя копировать (go vet copylocks)
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
