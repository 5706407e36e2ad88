package tools

import (
	"math"

	"github.com/annel0/navmesh-editor/internal/area"
	"github.com/annel0/navmesh-editor/internal/draw"
	"github.com/annel0/navmesh-editor/internal/geom"
	"github.com/annel0/navmesh-editor/internal/logging"
	"github.com/annel0/navmesh-editor/internal/tool"
	"github.com/annel0/navmesh-editor/internal/vec"
)

// Подписи меню объёмов
const (
	LabelShapeHeight  = "Shape Height"
	LabelShapeDescent = "Shape Descent"
	LabelClearShape   = "Clear Shape"
)

// closeDist: клик ближе этого к крайней точке замыкает контур
const closeDist = 0.2

// ConvexVolumeTool размечает области выпуклыми призмами.
// Клики собирают точки контура, клик по первой или последней точке
// (или Toggle) создаёт объём, shift-клик удаляет объём под курсором.
type ConvexVolumeTool struct {
	tool.BaseTool

	areaType    area.Tag
	flags       []area.Tag
	boxHeight   float64
	boxDescent  float64
	pts         []vec.Vec3
	hull        []int
	lastCreated bool

	logger *logging.Logger
}

func NewConvexVolumeTool() *ConvexVolumeTool {
	return &ConvexVolumeTool{
		areaType:   area.Grass,
		boxHeight:  6.0,
		boxDescent: 1.0,
		logger:     logging.GetToolsLogger(),
	}
}

func (t *ConvexVolumeTool) Kind() tool.Kind { return tool.KindConvexVolume }

// Reset отбрасывает недостроенный контур
func (t *ConvexVolumeTool) Reset() {
	t.pts = t.pts[:0]
	t.hull = t.hull[:0]
}

// SetArea выбирает тип области и флаги для новых объёмов
func (t *ConvexVolumeTool) SetArea(typ area.Tag, flags ...area.Tag) error {
	if _, err := area.Combine(typ, flags...); err != nil {
		return err
	}
	t.areaType = typ
	t.flags = append(t.flags[:0], flags...)
	return nil
}

// Tag возвращает тег, которым будет помечен следующий объём
func (t *ConvexVolumeTool) Tag() area.Tag {
	return area.MustCombine(t.areaType, t.flags...)
}

// Points возвращает точки недостроенного контура
func (t *ConvexVolumeTool) Points() []vec.Vec3 { return t.pts }

func (t *ConvexVolumeTool) HandleMenu(ui draw.UI) {
	t.boxHeight = ui.Slider(LabelShapeHeight, t.boxHeight, 0.1, 20, 0.1)
	t.boxDescent = ui.Slider(LabelShapeDescent, t.boxDescent, 0.1, 20, 0.1)

	ui.Separator()
	ui.Label("Area Type")
	for _, typ := range area.Types() {
		name := area.Name(typ)
		if ui.Checkbox(name, t.areaType == typ) && t.areaType != typ {
			t.areaType = typ
		}
	}

	ui.Separator()
	ui.Label("Flags")
	for _, f := range area.Flags() {
		on := t.hasFlag(f)
		if ui.Checkbox(area.FlagName(f), on) != on {
			t.toggleFlag(f)
		}
	}

	ui.Separator()
	if ui.Button(LabelClearShape) {
		t.Reset()
	}
}

func (t *ConvexVolumeTool) hasFlag(f area.Tag) bool {
	for _, have := range t.flags {
		if have == f {
			return true
		}
	}
	return false
}

func (t *ConvexVolumeTool) toggleFlag(f area.Tag) {
	for i, have := range t.flags {
		if have == f {
			t.flags = append(t.flags[:i], t.flags[i+1:]...)
			return
		}
	}
	t.flags = append(t.flags, f)
}

func (t *ConvexVolumeTool) inputGeom() geom.Provider {
	if t.Host() == nil {
		return nil
	}
	return t.Host().InputGeom()
}

func (t *ConvexVolumeTool) HandleClick(_, p vec.Vec3, shift bool) {
	g := t.inputGeom()
	if g == nil {
		return
	}

	if shift {
		if i := geom.VolumeAt(g, p); i >= 0 {
			g.DeleteVolume(i)
			t.logger.Debug("Convex volume %d deleted", i)
		}
		return
	}

	if n := len(t.pts); n > 0 {
		first, last := t.pts[0], t.pts[n-1]
		if p.DistanceSqrTo(last) < closeDist*closeDist || p.DistanceSqrTo(first) < closeDist*closeDist {
			t.closeShape(g)
			return
		}
	}

	t.pts = append(t.pts, p)
	t.hull = geom.ConvexHullXZ(t.pts)
}

// HandleToggle замыкает текущий контур
func (t *ConvexVolumeTool) HandleToggle() {
	if g := t.inputGeom(); g != nil {
		t.closeShape(g)
	}
}

// closeShape превращает оболочку в объём; меньше трёх точек просто сбрасываются
func (t *ConvexVolumeTool) closeShape(g geom.Provider) {
	defer t.Reset()
	t.lastCreated = false
	if len(t.hull) < 3 {
		return
	}

	verts := make([]vec.Vec3, len(t.hull))
	minh := math.MaxFloat64
	for i, idx := range t.hull {
		verts[i] = t.pts[idx]
		minh = math.Min(minh, verts[i].Y)
	}
	minh -= t.boxDescent

	tag, err := area.Combine(t.areaType, t.flags...)
	if err != nil {
		t.logger.Error("Convex volume area: %v", err)
		return
	}

	cv := geom.ConvexVolume{Verts: verts, HMin: minh, HMax: minh + t.boxHeight, Area: tag}
	if !g.AddVolume(cv) {
		t.logger.Warn("Convex volume rejected (limit %d)", geom.MaxVolumes)
		return
	}
	t.lastCreated = true
	t.logger.Debug("Convex volume added: %d verts, area %s", len(verts), tag)
}

func (t *ConvexVolumeTool) HandleRender() {
	h := t.Host()
	if h == nil || h.DebugDraw() == nil {
		return
	}
	dd := h.DebugDraw()

	// Последняя точка выделяется цветом
	for i, p := range t.pts {
		col := draw.RGBA(255, 255, 255, 255)
		if i == len(t.pts)-1 {
			col = draw.RGBA(240, 32, 16, 255)
		}
		draw.Cross(dd, p.Add(vec.Vec3{Y: 0.1}), 0.2, col)
	}

	if len(t.hull) > 1 {
		outline := make([]vec.Vec3, len(t.hull))
		for i, idx := range t.hull {
			outline[i] = t.pts[idx].Add(vec.Vec3{Y: 0.1})
		}
		draw.Polyline(dd, outline, dd.AreaToCol(t.Tag()), 2, true)
	}
}

func (t *ConvexVolumeTool) HandleRenderOverlay(view draw.Viewport) {
	h := t.Host()
	if h == nil || h.UI() == nil || len(t.pts) == 0 {
		return
	}
	if x, y, _, ok := view.Project(t.pts[len(t.pts)-1]); ok {
		h.UI().Text(x, y-25, "Click last point to create shape", draw.RGBA(255, 255, 255, 192))
	}
}
