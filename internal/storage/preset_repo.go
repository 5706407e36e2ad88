// Package storage сохраняет пресеты редактора: параметры сборки, маски фильтра
// и размеченные выпуклые объёмы.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/annel0/navmesh-editor/internal/geom"
	"github.com/annel0/navmesh-editor/internal/settings"
)

// ErrNotFound возвращается, если пресета с таким именем нет
var ErrNotFound = errors.New("preset not found")

// Preset: сохраняемый снимок конфигурации редактора
type Preset struct {
	Name         string                 `json:"name" yaml:"name"`
	Settings     settings.BuildSettings `json:"settings" yaml:"settings"`
	IncludeFlags uint32                 `json:"include_flags" yaml:"include_flags"`
	ExcludeFlags uint32                 `json:"exclude_flags" yaml:"exclude_flags"`
	Volumes      []geom.ConvexVolume    `json:"volumes,omitempty" yaml:"volumes,omitempty"`
	SavedAt      time.Time              `json:"saved_at" yaml:"saved_at"`
}

// PresetRepo определяет интерфейс хранилища пресетов.
type PresetRepo interface {
	// Save сохраняет пресет, перезаписывая одноимённый.
	Save(ctx context.Context, p Preset) error
	// Load загружает пресет; ErrNotFound, если его нет.
	Load(ctx context.Context, name string) (Preset, error)
	// Delete удаляет пресет; отсутствие пресета не ошибка.
	Delete(ctx context.Context, name string) error
	// List возвращает имена пресетов по алфавиту.
	List(ctx context.Context) ([]string, error)
	Close() error
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("пустое имя пресета")
	}
	if strings.ContainsAny(name, "\x00/") {
		return fmt.Errorf("недопустимое имя пресета %q", name)
	}
	return nil
}
