package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/annel0/navmesh-editor/internal/area"
	"github.com/annel0/navmesh-editor/internal/settings"
	"github.com/annel0/navmesh-editor/internal/tool"
	"gopkg.in/yaml.v3"
)

// Переменные окружения
const (
	EnvConfigPath  = "NAVEDIT_CONFIG"
	EnvMetricsAddr = "NAVEDIT_METRICS_ADDR"
)

// DefaultMetricsAddr используется, если адрес метрик не задан ни в конфиге, ни в окружении
const DefaultMetricsAddr = ":2112"

// Config корневая структура конфигурации редактора.
type Config struct {
	Editor    EditorConfig           `yaml:"editor"`
	Build     settings.BuildSettings `yaml:"build"`
	Filter    FilterConfig           `yaml:"filter"`
	Storage   StorageConfig          `yaml:"storage"`
	Metrics   MetricsConfig          `yaml:"metrics"`
	Telemetry TelemetryConfig        `yaml:"telemetry"`
}

type EditorConfig struct {
	LogLevel  string  `yaml:"log_level"`
	StartTool string  `yaml:"start_tool"`
	Frames    int     `yaml:"frames"`
	DT        float64 `yaml:"dt"`
}

// FilterConfig задаёт маски фильтра запросов именами типов областей
type FilterConfig struct {
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
}

type StorageConfig struct {
	// Пустой путь означает хранилище в памяти
	Path        string `yaml:"path"`
	Compression bool   `yaml:"compression"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			LogLevel:  "INFO",
			StartTool: tool.KindNavMeshTester.String(),
			Frames:    60,
			DT:        1.0 / 30.0,
		},
		Build:   settings.Defaults(),
		Storage: StorageConfig{Path: "data", Compression: true},
		Telemetry: TelemetryConfig{
			ServiceName: "navedit",
		},
	}
}

// GetMetricsAddr возвращает адрес метрик с приоритетом: config -> env -> default
func (m *MetricsConfig) GetMetricsAddr() string {
	if m.Addr != "" {
		return m.Addr
	}
	if env := os.Getenv(EnvMetricsAddr); env != "" {
		return env
	}
	return DefaultMetricsAddr
}

// IncludeMask собирает маску включения; пустой список означает "все типы"
func (f FilterConfig) IncludeMask() (uint32, error) {
	if len(f.Include) == 0 {
		return 0xffffffff, nil
	}
	return typeMask(f.Include)
}

// ExcludeMask собирает маску исключения; пустой список означает "ничего"
func (f FilterConfig) ExcludeMask() (uint32, error) {
	return typeMask(f.Exclude)
}

func typeMask(names []string) (uint32, error) {
	var mask area.Tag
	for _, name := range names {
		t, err := area.ParseType(name)
		if err != nil {
			return 0, err
		}
		mask |= t
	}
	return uint32(mask), nil
}

// StartKind возвращает инструмент, активный при запуске
func (e EditorConfig) StartKind() (tool.Kind, error) {
	if e.StartTool == "" {
		return tool.KindNone, nil
	}
	return tool.ParseKind(e.StartTool)
}

// Validate проверяет значения, которые нельзя исправить молча
func (c *Config) Validate() error {
	if _, err := c.Editor.StartKind(); err != nil {
		return fmt.Errorf("editor.start_tool: %w", err)
	}
	if c.Editor.Frames < 0 {
		return fmt.Errorf("editor.frames: отрицательное значение %d", c.Editor.Frames)
	}
	if c.Editor.DT < 0 {
		return fmt.Errorf("editor.dt: отрицательное значение %v", c.Editor.DT)
	}
	if _, err := c.Filter.IncludeMask(); err != nil {
		return fmt.Errorf("filter.include: %w", err)
	}
	if _, err := c.Filter.ExcludeMask(); err != nil {
		return fmt.Errorf("filter.exclude: %w", err)
	}
	return nil
}

// Load читает YAML файл конфигурации поверх значений по умолчанию.
// Если path == "", пытается прочитать путь из ENV NAVEDIT_CONFIG;
// если не задан и он, возвращает конфигурацию по умолчанию.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("чтение конфигурации: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("разбор конфигурации %s: %w", path, err)
	}

	cfg.Editor.LogLevel = strings.ToUpper(cfg.Editor.LogLevel)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
