// Package tools: конкретные инструменты редактора поверх каркаса tool.
package tools

import (
	"fmt"
	"math"

	"github.com/annel0/navmesh-editor/internal/draw"
	"github.com/annel0/navmesh-editor/internal/tool"
	"github.com/annel0/navmesh-editor/internal/vec"
)

// DefaultTileSize: размер тайла в мировых единицах
const DefaultTileSize = 8.0

// TileCoord: координаты тайла в сетке над границами геометрии
type TileCoord struct {
	X, Y int
}

func (c TileCoord) String() string { return fmt.Sprintf("(%d,%d)", c.X, c.Y) }

// TileHighlightState продолжает рисовать выбранный тайл после смены инструмента
type TileHighlightState struct {
	tool.BaseState

	tile     TileCoord
	has      bool
	bmin     vec.Vec3
	bmax     vec.Vec3
	age      float64
	tileSize float64
}

// NewTileHighlightState создаёт состояние без выбранного тайла
func NewTileHighlightState() *TileHighlightState {
	return &TileHighlightState{tileSize: DefaultTileSize}
}

// Highlight выбирает тайл под точкой p
func (s *TileHighlightState) Highlight(p vec.Vec3, tileSize float64) {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	s.tileSize = tileSize

	var origin, top vec.Vec3
	if h := s.Host(); h != nil && h.InputGeom() != nil {
		origin, top = h.InputGeom().Bounds()
	}
	s.tile = TileCoord{
		X: int(math.Floor((p.X - origin.X) / tileSize)),
		Y: int(math.Floor((p.Z - origin.Z) / tileSize)),
	}
	s.bmin = vec.Vec3{
		X: origin.X + float64(s.tile.X)*tileSize,
		Y: origin.Y,
		Z: origin.Z + float64(s.tile.Y)*tileSize,
	}
	s.bmax = vec.Vec3{X: s.bmin.X + tileSize, Y: math.Max(top.Y, p.Y), Z: s.bmin.Z + tileSize}
	s.has = true
	s.age = 0
}

// Tile возвращает выбранный тайл
func (s *TileHighlightState) Tile() (TileCoord, bool) { return s.tile, s.has }

// Bounds возвращает границы выбранного тайла
func (s *TileHighlightState) Bounds() (vec.Vec3, vec.Vec3) { return s.bmin, s.bmax }

// Reset снимает выделение: после смены геометрии координаты недействительны
func (s *TileHighlightState) Reset() {
	s.has = false
	s.age = 0
}

func (s *TileHighlightState) HandleUpdate(dt float64) {
	if s.has {
		s.age += dt
	}
}

func (s *TileHighlightState) HandleRender() {
	if !s.has || s.Host() == nil || s.Host().DebugDraw() == nil {
		return
	}
	// Рамка мерцает с периодом в секунду
	alpha := uint8(128 + 127*math.Abs(math.Sin(s.age*math.Pi)))
	draw.Box(s.Host().DebugDraw(), s.bmin, s.bmax, draw.RGBA(255, 255, 255, alpha), 1)
}

func (s *TileHighlightState) HandleRenderOverlay(view draw.Viewport) {
	if !s.has || s.Host() == nil || s.Host().UI() == nil {
		return
	}
	center := s.bmin.Lerp(s.bmax, 0.5)
	center.Y = s.bmax.Y
	if x, y, _, ok := view.Project(center); ok {
		s.Host().UI().Text(x, y-25, "Tile "+s.tile.String(), draw.RGBA(0, 0, 0, 220))
	}
}

// TileHighlightTool выбирает тайл кликом. Само выделение живёт в
// TileHighlightState, чтобы оставаться видимым при других инструментах.
type TileHighlightTool struct {
	tool.BaseTool
	tileSize float64
	hitPos   vec.Vec3
	hit      bool
}

func NewTileHighlightTool() *TileHighlightTool {
	return &TileHighlightTool{tileSize: DefaultTileSize}
}

func (t *TileHighlightTool) Kind() tool.Kind { return tool.KindTileHighlight }

// Init регистрирует состояние режима, если его ещё нет
func (t *TileHighlightTool) Init(host tool.Host) {
	t.BaseTool.Init(host)
	if host == nil {
		return
	}
	if _, ok := host.ToolState(tool.KindTileHighlight); !ok {
		st := NewTileHighlightState()
		host.SetToolState(tool.KindTileHighlight, st)
		st.Init(host)
	}
}

func (t *TileHighlightTool) Reset() { t.hit = false }

func (t *TileHighlightTool) HandleMenu(ui draw.UI) {
	ui.Label("Tile Highlight")
	t.tileSize = ui.Slider("Tile Size", t.tileSize, 1, 64, 1)
	ui.Label("Click to highlight the tile under the cursor.")
}

func (t *TileHighlightTool) HandleClick(_, p vec.Vec3, _ bool) {
	t.hitPos = p
	t.hit = true
	if st := t.state(); st != nil {
		st.Highlight(p, t.tileSize)
	}
}

func (t *TileHighlightTool) HandleRender() {
	if !t.hit || t.Host() == nil || t.Host().DebugDraw() == nil {
		return
	}
	draw.Cross(t.Host().DebugDraw(), t.hitPos, 0.5, draw.RGBA(255, 255, 255, 255))
}

// TileSize возвращает размер тайла в мировых единицах
func (t *TileHighlightTool) TileSize() float64 { return t.tileSize }

func (t *TileHighlightTool) state() *TileHighlightState {
	if t.Host() == nil {
		return nil
	}
	st, ok := t.Host().ToolState(tool.KindTileHighlight)
	if !ok {
		return nil
	}
	hs, _ := st.(*TileHighlightState)
	return hs
}
