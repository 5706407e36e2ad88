package filter

import (
	"github.com/annel0/navmesh-editor/internal/area"
	"github.com/annel0/navmesh-editor/internal/vec"
)

// AreaCosts: таблица множителей стоимости по типу области.
// Отсутствующий тип считается со множителем 1.
type AreaCosts map[area.Tag]float64

// DefaultAreaCosts: типичная настройка: вода дорогая, дорога дешёвая
func DefaultAreaCosts() AreaCosts {
	return AreaCosts{
		area.Ground: 1.0,
		area.Water:  10.0,
		area.Road:   0.5,
		area.Grass:  2.0,
	}
}

// Multiplier возвращает множитель для типа области тега
func (c AreaCosts) Multiplier(tag area.Tag) float64 {
	if m, ok := c[area.TypeOf(tag)]; ok && m > 0 {
		return m
	}
	return 1.0
}

// Cost: CostFunc, масштабирующая расстояние множителем текущего полигона
func (c AreaCosts) Cost(a, b vec.Vec3, _, cur, _ Surface) float64 {
	return a.DistanceTo(b) * c.Multiplier(cur.Tag)
}

// FlagGate дополнительно отсекает полигоны с указанными флагами
// (например, area.FlagDisabled). Стоимость делегируется вложенному фильтру.
type FlagGate struct {
	Filter
	Reject area.Tag
}

// NewFlagGate оборачивает фильтр
func NewFlagGate(inner Filter, reject ...area.Tag) *FlagGate {
	g := &FlagGate{Filter: inner}
	for _, f := range reject {
		g.Reject |= f & area.FlagMask
	}
	return g
}

// PassFilter отклоняет полигон, если у него выставлен любой из запрещённых флагов
func (g *FlagGate) PassFilter(s Surface) bool {
	if area.FlagsOf(s.Tag)&g.Reject != 0 {
		return false
	}
	return g.Filter.PassFilter(s)
}

// PathCost суммирует стоимость ломаной по списку полигонов.
// points[i]→points[i+1] лежит на surfaces[i].
func PathCost(f Filter, points []vec.Vec3, surfaces []Surface) float64 {
	total := 0.0
	for i := 0; i+1 < len(points) && i < len(surfaces); i++ {
		var prev, next Surface
		if i > 0 {
			prev = surfaces[i-1]
		}
		if i+1 < len(surfaces) {
			next = surfaces[i+1]
		}
		total += f.GetCost(points[i], points[i+1], prev, surfaces[i], next)
	}
	return total
}
