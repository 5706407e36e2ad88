package sample

import (
	"fmt"

	"github.com/annel0/navmesh-editor/internal/draw"
	"github.com/annel0/navmesh-editor/internal/settings"
	"github.com/annel0/navmesh-editor/internal/tool"
)

// Подписи виджетов общих настроек
const (
	LabelCellSize        = "Cell Size"
	LabelCellHeight      = "Cell Height"
	LabelAgentHeight     = "Height"
	LabelAgentRadius     = "Radius"
	LabelAgentMaxClimb   = "Max Climb"
	LabelAgentMaxSlope   = "Max Slope"
	LabelRegionMinSize   = "Min Region Size"
	LabelRegionMergeSize = "Merged Region Size"
	LabelEdgeMaxLen      = "Max Edge Length"
	LabelEdgeMaxError    = "Max Edge Error"
	LabelVertsPerPoly    = "Verts Per Poly"
	LabelDetailDist      = "Sample Distance"
	LabelDetailMaxError  = "Max Sample Error"
	LabelLowHanging      = "Low Hanging Obstacles"
	LabelLedgeSpans      = "Ledge Spans"
	LabelLowHeightSpans  = "Walkable Low Height Spans"
	LabelResetSettings   = "Reset Settings"
)

var partitionLabels = [...]struct {
	label string
	part  settings.PartitionType
}{
	{"Watershed", settings.PartitionWatershed},
	{"Monotone", settings.PartitionMonotone},
	{"Layers", settings.PartitionLayers},
}

var drawFlagLabels = [...]struct {
	label string
	flag  DrawFlags
}{
	{"Off-Mesh Connections", DrawOffMeshConns},
	{"Closed List", DrawClosedList},
	{"Color Tiles", DrawColorTiles},
}

// HandleSettings рисует панель общих параметров сборки и применяет изменения
func (s *Sample) HandleSettings(ui draw.UI) {
	bs := s.settings

	ui.Label("Rasterization")
	bs.CellSize = ui.Slider(LabelCellSize, bs.CellSize, 0.1, 1.0, 0.01)
	bs.CellHeight = ui.Slider(LabelCellHeight, bs.CellHeight, 0.1, 1.0, 0.01)

	if s.geom != nil {
		bmin, bmax := s.geom.Bounds()
		gw := int((bmax.X-bmin.X)/bs.CellSize + 0.5)
		gh := int((bmax.Z-bmin.Z)/bs.CellSize + 0.5)
		ui.Label(fmt.Sprintf("Voxels  %d x %d", gw, gh))
	}

	ui.Separator()
	ui.Label("Agent")
	bs.AgentHeight = ui.Slider(LabelAgentHeight, bs.AgentHeight, 0.1, 5.0, 0.1)
	bs.AgentRadius = ui.Slider(LabelAgentRadius, bs.AgentRadius, 0.0, 5.0, 0.1)
	bs.AgentMaxClimb = ui.Slider(LabelAgentMaxClimb, bs.AgentMaxClimb, 0.1, 5.0, 0.1)
	bs.AgentMaxSlope = ui.Slider(LabelAgentMaxSlope, bs.AgentMaxSlope, 0.0, 90.0, 1.0)

	ui.Separator()
	ui.Label("Region")
	bs.RegionMinSize = ui.Slider(LabelRegionMinSize, bs.RegionMinSize, 0.0, 150.0, 1.0)
	bs.RegionMergeSize = ui.Slider(LabelRegionMergeSize, bs.RegionMergeSize, 0.0, 150.0, 1.0)

	ui.Separator()
	ui.Label("Partitioning")
	for _, p := range partitionLabels {
		// Чекбоксы работают как радиокнопки: снять выбранный нельзя
		if ui.Checkbox(p.label, bs.PartitionType == p.part) && bs.PartitionType != p.part {
			bs.PartitionType = p.part
		}
	}

	ui.Separator()
	ui.Label("Filtering")
	bs.FilterLowHangingObstacles = ui.Checkbox(LabelLowHanging, bs.FilterLowHangingObstacles)
	bs.FilterLedgeSpans = ui.Checkbox(LabelLedgeSpans, bs.FilterLedgeSpans)
	bs.FilterWalkableLowHeightSpans = ui.Checkbox(LabelLowHeightSpans, bs.FilterWalkableLowHeightSpans)

	ui.Separator()
	ui.Label("Polygonization")
	bs.EdgeMaxLen = ui.Slider(LabelEdgeMaxLen, bs.EdgeMaxLen, 0.0, 50.0, 1.0)
	bs.EdgeMaxError = ui.Slider(LabelEdgeMaxError, bs.EdgeMaxError, 0.1, 3.0, 0.1)
	bs.VertsPerPoly = ui.Slider(LabelVertsPerPoly, bs.VertsPerPoly, 3.0, 12.0, 1.0)

	ui.Separator()
	ui.Label("Detail Mesh")
	bs.DetailSampleDist = ui.Slider(LabelDetailDist, bs.DetailSampleDist, 0.0, 16.0, 1.0)
	bs.DetailSampleMaxError = ui.Slider(LabelDetailMaxError, bs.DetailSampleMaxError, 0.0, 16.0, 1.0)

	if ui.Button(LabelResetSettings) {
		bs = settings.Defaults()
	}
	ui.Separator()

	s.ApplySettings(bs)
}

// HandleTools рисует выбор инструмента и меню активного инструмента.
// Режимы без фабрики в списке не показываются.
func (s *Sample) HandleTools(ui draw.UI) {
	active := s.controller.ActiveKind()
	for _, kind := range tool.Kinds() {
		create, ok := s.tools[kind]
		if !ok {
			continue
		}
		if ui.Checkbox(kind.Description(), active == kind) && active != kind {
			s.SetTool(create())
			active = s.controller.ActiveKind()
		}
	}

	ui.Separator()
	s.controller.HandleMenu(ui)
}

// HandleDebugMode рисует переключатели отладочной отрисовки навмеша
func (s *Sample) HandleDebugMode(ui draw.UI) {
	ui.Label("Draw")
	for _, f := range drawFlagLabels {
		on := s.navMeshDrawFlags&f.flag != 0
		if ui.Checkbox(f.label, on) != on {
			s.navMeshDrawFlags ^= f.flag
		}
	}
}
