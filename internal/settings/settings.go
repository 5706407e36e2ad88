// Package settings хранит снимок параметров сборки навмеша, который хост
// собирает из UI и применяет обратно. Значения не валидируются.
package settings

import (
	"errors"
	"fmt"
	"strings"
)

// PartitionType: схема разбиения на регионы
type PartitionType int

const (
	PartitionWatershed PartitionType = iota
	PartitionMonotone
	PartitionLayers
)

// ErrUnknownPartition возвращается для нераспознанного имени схемы
var ErrUnknownPartition = errors.New("unknown partition type")

var partitionNames = [...]string{"watershed", "monotone", "layers"}

// String возвращает имя схемы
func (p PartitionType) String() string {
	if p < 0 || int(p) >= len(partitionNames) {
		return fmt.Sprintf("partition(%d)", int(p))
	}
	return partitionNames[p]
}

// Valid проверяет, что значение входит в распознаваемый набор
func (p PartitionType) Valid() bool {
	return p >= PartitionWatershed && p <= PartitionLayers
}

// ParsePartition разбирает имя схемы
func ParsePartition(name string) (PartitionType, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, pn := range partitionNames {
		if pn == n {
			return PartitionType(i), nil
		}
	}
	return PartitionWatershed, fmt.Errorf("%w: %q", ErrUnknownPartition, name)
}

// MarshalText позволяет писать схему именем в YAML/JSON
func (p PartitionType) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPartition, int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText разбирает схему из YAML/JSON
func (p *PartitionType) UnmarshalText(text []byte) error {
	v, err := ParsePartition(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// BuildSettings: параметры сборки навмеша
type BuildSettings struct {
	// Размер ячейки растеризации в мировых единицах
	CellSize float64 `yaml:"cell_size" json:"cell_size"`
	// Высота ячейки
	CellHeight float64 `yaml:"cell_height" json:"cell_height"`
	// Высота агента
	AgentHeight float64 `yaml:"agent_height" json:"agent_height"`
	// Радиус агента
	AgentRadius float64 `yaml:"agent_radius" json:"agent_radius"`
	// Максимальная высота ступени
	AgentMaxClimb float64 `yaml:"agent_max_climb" json:"agent_max_climb"`
	// Максимальный уклон, градусы
	AgentMaxSlope float64 `yaml:"agent_max_slope" json:"agent_max_slope"`
	// Минимальный размер региона, в ячейках
	RegionMinSize float64 `yaml:"region_min_size" json:"region_min_size"`
	// Размер региона, ниже которого регионы сливаются
	RegionMergeSize float64 `yaml:"region_merge_size" json:"region_merge_size"`
	// Максимальная длина ребра контура
	EdgeMaxLen float64 `yaml:"edge_max_len" json:"edge_max_len"`
	// Максимальное отклонение упрощённого контура
	EdgeMaxError float64 `yaml:"edge_max_error" json:"edge_max_error"`
	// Вершин на полигон
	VertsPerPoly float64 `yaml:"verts_per_poly" json:"verts_per_poly"`
	// Шаг выборки детального меша
	DetailSampleDist float64 `yaml:"detail_sample_dist" json:"detail_sample_dist"`
	// Максимальная ошибка детального меша
	DetailSampleMaxError float64 `yaml:"detail_sample_max_error" json:"detail_sample_max_error"`

	PartitionType PartitionType `yaml:"partition_type" json:"partition_type"`

	FilterLowHangingObstacles    bool `yaml:"filter_low_hanging_obstacles" json:"filter_low_hanging_obstacles"`
	FilterLedgeSpans             bool `yaml:"filter_ledge_spans" json:"filter_ledge_spans"`
	FilterWalkableLowHeightSpans bool `yaml:"filter_walkable_low_height_spans" json:"filter_walkable_low_height_spans"`
}

// Defaults возвращает общие настройки по умолчанию
func Defaults() BuildSettings {
	return BuildSettings{
		CellSize:                     0.3,
		CellHeight:                   0.2,
		AgentHeight:                  2.0,
		AgentRadius:                  0.6,
		AgentMaxClimb:                0.9,
		AgentMaxSlope:                45.0,
		RegionMinSize:                8,
		RegionMergeSize:              20,
		EdgeMaxLen:                   12.0,
		EdgeMaxError:                 1.3,
		VertsPerPoly:                 6.0,
		DetailSampleDist:             6.0,
		DetailSampleMaxError:         1.0,
		PartitionType:                PartitionWatershed,
		FilterLowHangingObstacles:    true,
		FilterLedgeSpans:             true,
		FilterWalkableLowHeightSpans: true,
	}
}

// WalkableHeight переводит высоту агента в ячейки
func (s BuildSettings) WalkableHeight() int {
	return ceilCells(s.AgentHeight, s.CellHeight)
}

// WalkableClimb переводит высоту ступени в ячейки (с округлением вниз)
func (s BuildSettings) WalkableClimb() int {
	if s.CellHeight <= 0 {
		return 0
	}
	return int(s.AgentMaxClimb / s.CellHeight)
}

// WalkableRadius переводит радиус агента в ячейки
func (s BuildSettings) WalkableRadius() int {
	return ceilCells(s.AgentRadius, s.CellSize)
}

func ceilCells(v, cell float64) int {
	if cell <= 0 {
		return 0
	}
	n := v / cell
	c := int(n)
	if float64(c) < n {
		c++
	}
	return c
}
