package tools

import (
	"errors"
	"fmt"

	"github.com/annel0/navmesh-editor/internal/area"
	"github.com/annel0/navmesh-editor/internal/draw"
	"github.com/annel0/navmesh-editor/internal/filter"
	"github.com/annel0/navmesh-editor/internal/geom"
	"github.com/annel0/navmesh-editor/internal/logging"
	"github.com/annel0/navmesh-editor/internal/tool"
	"github.com/annel0/navmesh-editor/internal/vec"
)

// ErrNoPath возвращается движком, если маршрута нет
var ErrNoPath = errors.New("no path")

// PathQuery: внешний движок поиска пути.
// points[i]→points[i+1] лежит на surfaces[i].
type PathQuery interface {
	FindPath(start, end vec.Vec3, f filter.Filter) (points []vec.Vec3, surfaces []filter.Surface, err error)
}

// Подписи меню тестера
const (
	LabelAreaCosts    = "Area Costs"
	LabelSkipDisabled = "Skip Disabled"
	LabelResetFilter  = "Reset Filter"
)

// NavMeshTesterTool прокладывает маршрут между двумя точками с фильтром областей.
// Shift-клик ставит старт, обычный клик ставит финиш.
type NavMeshTesterTool struct {
	tool.BaseTool

	filter       *filter.QueryFilter
	costs        filter.AreaCosts
	useAreaCosts bool
	skipDisabled bool
	query        PathQuery

	start, end       vec.Vec3
	startSet, endSet bool

	path     []vec.Vec3
	surfaces []filter.Surface
	cost     float64
	found    bool

	logger *logging.Logger
}

// NewNavMeshTesterTool создаёт тестер с фильтром, пропускающим всё.
// query может быть nil: тогда берётся запрос хоста или прямой пробный луч.
func NewNavMeshTesterTool(query PathQuery) *NavMeshTesterTool {
	return &NavMeshTesterTool{
		filter:       filter.NewQueryFilter(),
		costs:        filter.DefaultAreaCosts(),
		skipDisabled: true,
		query:        query,
		logger:       logging.GetToolsLogger(),
	}
}

func (t *NavMeshTesterTool) Kind() tool.Kind { return tool.KindNavMeshTester }

func (t *NavMeshTesterTool) Init(host tool.Host) {
	t.BaseTool.Init(host)
	if t.query == nil && host != nil {
		if q, ok := host.NavMeshQuery().(PathQuery); ok {
			t.query = q
		}
	}
	t.recalc()
}

// Reset забывает концы маршрута
func (t *NavMeshTesterTool) Reset() {
	t.startSet, t.endSet = false, false
	t.clearPath()
}

// Filter возвращает фильтр запросов (его маски редактируются из меню)
func (t *NavMeshTesterTool) Filter() *filter.QueryFilter { return t.filter }

// SetPathQuery подменяет движок поиска пути
func (t *NavMeshTesterTool) SetPathQuery(q PathQuery) {
	t.query = q
	t.recalc()
}

// Path возвращает последний найденный маршрут
func (t *NavMeshTesterTool) Path() ([]vec.Vec3, bool) { return t.path, t.found }

// Cost возвращает стоимость последнего маршрута
func (t *NavMeshTesterTool) Cost() float64 { return t.cost }

func (t *NavMeshTesterTool) HandleMenu(ui draw.UI) {
	prevInclude, prevExclude := t.filter.IncludeFlags(), t.filter.ExcludeFlags()
	prevCosts, prevSkip := t.useAreaCosts, t.skipDisabled

	ui.Label("Include Flags")
	for _, typ := range area.Types() {
		mask := t.filter.IncludeFlags()
		t.filter.SetIncludeFlags(toggleMask(ui, "Include "+area.Name(typ), mask, uint32(typ)))
	}

	ui.Separator()
	ui.Label("Exclude Flags")
	for _, typ := range area.Types() {
		mask := t.filter.ExcludeFlags()
		t.filter.SetExcludeFlags(toggleMask(ui, "Exclude "+area.Name(typ), mask, uint32(typ)))
	}

	ui.Separator()
	t.useAreaCosts = ui.Checkbox(LabelAreaCosts, t.useAreaCosts)
	if t.useAreaCosts {
		t.filter.SetCost(t.costs.Cost)
	} else {
		t.filter.SetCost(nil)
	}
	t.skipDisabled = ui.Checkbox(LabelSkipDisabled, t.skipDisabled)

	if ui.Button(LabelResetFilter) {
		t.filter.Reset()
	}

	if t.filter.IncludeFlags() != prevInclude || t.filter.ExcludeFlags() != prevExclude ||
		t.useAreaCosts != prevCosts || t.skipDisabled != prevSkip {
		t.recalc()
	}
}

// toggleMask рисует чекбокс для битов bits и возвращает исправленную маску
func toggleMask(ui draw.UI, label string, mask, bits uint32) uint32 {
	on := mask&bits == bits
	if ui.Checkbox(label, on) == on {
		return mask
	}
	if on {
		return mask &^ bits
	}
	return mask | bits
}

func (t *NavMeshTesterTool) HandleClick(_, p vec.Vec3, shift bool) {
	if shift {
		t.start, t.startSet = p, true
	} else {
		t.end, t.endSet = p, true
	}
	t.recalc()
}

// HandleToggle меняет старт и финиш местами
func (t *NavMeshTesterTool) HandleToggle() {
	t.start, t.end = t.end, t.start
	t.startSet, t.endSet = t.endSet, t.startSet
	t.recalc()
}

// HandleStep пересчитывает маршрут (после пересборки навмеша или смены фильтра)
func (t *NavMeshTesterTool) HandleStep() { t.recalc() }

// activeFilter возвращает фильтр с учётом флага отключённых областей
func (t *NavMeshTesterTool) activeFilter() filter.Filter {
	if t.skipDisabled {
		return filter.NewFlagGate(t.filter, area.FlagDisabled)
	}
	return t.filter
}

func (t *NavMeshTesterTool) clearPath() {
	t.path, t.surfaces = nil, nil
	t.cost = 0
	t.found = false
}

func (t *NavMeshTesterTool) recalc() {
	t.clearPath()
	if !t.startSet || !t.endSet {
		return
	}

	f := t.activeFilter()
	if t.query != nil {
		points, surfaces, err := t.query.FindPath(t.start, t.end, f)
		if err != nil {
			if !errors.Is(err, ErrNoPath) {
				t.logger.Warn("FindPath %v -> %v: %v", t.start, t.end, err)
			}
			return
		}
		t.setPath(f, points, surfaces)
		return
	}

	// Без движка: прямой отрезок, каждый конец лежит на полигоне своей области
	from := filter.Surface{Ref: 1, Tag: t.tagAt(t.start)}
	to := filter.Surface{Ref: 2, Tag: t.tagAt(t.end)}
	if !f.PassFilter(from) || !f.PassFilter(to) {
		return
	}
	mid := t.start.Lerp(t.end, 0.5)
	t.setPath(f, []vec.Vec3{t.start, mid, t.end}, []filter.Surface{from, to})
}

func (t *NavMeshTesterTool) setPath(f filter.Filter, points []vec.Vec3, surfaces []filter.Surface) {
	if len(points) == 0 {
		return
	}
	t.path = points
	t.surfaces = surfaces
	t.cost = filter.PathCost(f, points, surfaces)
	t.found = true
}

// tagAt: тег области в точке: первый объём, иначе земля
func (t *NavMeshTesterTool) tagAt(p vec.Vec3) area.Tag {
	h := t.Host()
	if h == nil || h.InputGeom() == nil {
		return area.Ground
	}
	g := h.InputGeom()
	if i := geom.VolumeAt(g, p); i >= 0 {
		return g.Volumes()[i].Area
	}
	return area.Ground
}

func (t *NavMeshTesterTool) HandleRender() {
	h := t.Host()
	if h == nil || h.DebugDraw() == nil {
		return
	}
	dd := h.DebugDraw()
	radius := h.AgentRadius()

	if t.startSet {
		draw.Cross(dd, t.start, radius, draw.RGBA(128, 25, 0, 192))
	}
	if t.endSet {
		draw.Cross(dd, t.end, radius, draw.RGBA(51, 102, 0, 129))
	}
	if t.found {
		draw.Polyline(dd, t.path, draw.RGBA(64, 16, 0, 220), 2, false)
	}
}

func (t *NavMeshTesterTool) HandleRenderOverlay(view draw.Viewport) {
	h := t.Host()
	if !t.found || h == nil || h.UI() == nil {
		return
	}
	if x, y, _, ok := view.Project(t.end); ok {
		h.UI().Text(x, y-25, fmt.Sprintf("cost %.2f", t.cost), draw.RGBA(0, 0, 0, 220))
	}
}
