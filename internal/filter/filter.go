// Package filter решает, какие полигоны навмеша допускаются поиском пути,
// и оценивает стоимость прохода по ним.
package filter

import (
	"github.com/annel0/navmesh-editor/internal/area"
	"github.com/annel0/navmesh-editor/internal/vec"
)

// Маски по умолчанию: пропускать всё, ничего не исключать
const (
	IncludeAll  uint32 = 0xffffffff
	ExcludeNone uint32 = 0
)

// Surface: полигон навмеша, как его видит фильтр: ссылка плюс тег области
type Surface struct {
	Ref uint64
	Tag area.Tag
}

// Filter: контракт, который потребляет внешний движок поиска пути
type Filter interface {
	PassFilter(s Surface) bool
	GetCost(a, b vec.Vec3, prev, cur, next Surface) float64
}

// CostFunc вычисляет стоимость сегмента a→b, лежащего на полигоне cur
type CostFunc func(a, b vec.Vec3, prev, cur, next Surface) float64

// DistanceCost: стратегия по умолчанию: евклидово расстояние без учёта типа области
func DistanceCost(a, b vec.Vec3, _, _, _ Surface) float64 {
	return a.DistanceTo(b)
}

// QueryFilter хранит маски включения/исключения типов областей.
// Не потокобезопасен: используется из одного потока кадра.
type QueryFilter struct {
	includeFlags uint32
	excludeFlags uint32
	cost         CostFunc
}

// Option настраивает QueryFilter при создании
type Option func(*QueryFilter)

// WithCost задаёт стратегию стоимости
func WithCost(cost CostFunc) Option {
	return func(f *QueryFilter) {
		if cost != nil {
			f.cost = cost
		}
	}
}

// WithInclude задаёт начальную маску включения
func WithInclude(mask uint32) Option {
	return func(f *QueryFilter) { f.includeFlags = mask }
}

// WithExclude задаёт начальную маску исключения
func WithExclude(mask uint32) Option {
	return func(f *QueryFilter) { f.excludeFlags = mask }
}

// NewQueryFilter создаёт фильтр, пропускающий все типы областей
func NewQueryFilter(opts ...Option) *QueryFilter {
	f := &QueryFilter{
		includeFlags: IncludeAll,
		excludeFlags: ExcludeNone,
		cost:         DistanceCost,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// PassFilter допускает полигон, если его тип пересекается с маской включения
// и не пересекается с маской исключения. Флаги здесь не учитываются.
func (f *QueryFilter) PassFilter(s Surface) bool {
	return f.PassTag(s.Tag)
}

// PassTag: то же правило для голого тега
func (f *QueryFilter) PassTag(tag area.Tag) bool {
	typ := uint32(area.TypeOf(tag))
	return typ&f.includeFlags != 0 && typ&f.excludeFlags == 0
}

// GetCost возвращает стоимость прохода сегмента a→b
func (f *QueryFilter) GetCost(a, b vec.Vec3, prev, cur, next Surface) float64 {
	cost := f.cost
	if cost == nil {
		cost = DistanceCost
	}
	return cost(a, b, prev, cur, next)
}

func (f *QueryFilter) IncludeFlags() uint32 { return f.includeFlags }

func (f *QueryFilter) SetIncludeFlags(flags uint32) { f.includeFlags = flags }

func (f *QueryFilter) ExcludeFlags() uint32 { return f.excludeFlags }

func (f *QueryFilter) SetExcludeFlags(flags uint32) { f.excludeFlags = flags }

// SetCost меняет стратегию стоимости; nil возвращает DistanceCost
func (f *QueryFilter) SetCost(cost CostFunc) {
	if cost == nil {
		cost = DistanceCost
	}
	f.cost = cost
}

// Reset возвращает маски к значениям по умолчанию
func (f *QueryFilter) Reset() {
	f.includeFlags = IncludeAll
	f.excludeFlags = ExcludeNone
}
