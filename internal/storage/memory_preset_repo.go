package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/annel0/navmesh-editor/internal/geom"
)

// MemoryPresetRepo реализует PresetRepo в памяти.
// Используется в тестах и когда путь к хранилищу не задан.
// ВНИМАНИЕ: Данные теряются при перезапуске редактора!
type MemoryPresetRepo struct {
	mu   sync.RWMutex
	data map[string]Preset
	now  func() time.Time
}

// NewMemoryPresetRepo создает новый репозиторий пресетов в памяти.
func NewMemoryPresetRepo() *MemoryPresetRepo {
	return &MemoryPresetRepo{
		data: make(map[string]Preset),
		now:  time.Now,
	}
}

// Save сохраняет пресет в памяти.
func (r *MemoryPresetRepo) Save(ctx context.Context, p Preset) error {
	if err := validateName(p.Name); err != nil {
		return err
	}

	// Проверяем контекст на отмену
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	p.SavedAt = r.now().UTC()
	// Копируем объёмы, чтобы вызывающий код не мог изменить сохранённое
	p.Volumes = cloneVolumes(p.Volumes)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[p.Name] = p
	return nil
}

// Load загружает пресет из памяти.
func (r *MemoryPresetRepo) Load(ctx context.Context, name string) (Preset, error) {
	select {
	case <-ctx.Done():
		return Preset{}, ctx.Err()
	default:
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.data[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	p.Volumes = cloneVolumes(p.Volumes)
	return p, nil
}

// Delete удаляет пресет.
func (r *MemoryPresetRepo) Delete(ctx context.Context, name string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, name)
	return nil
}

// List возвращает имена пресетов.
func (r *MemoryPresetRepo) List(ctx context.Context) ([]string, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.data))
	for name := range r.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Close ничего не делает.
func (r *MemoryPresetRepo) Close() error {
	return nil
}

func cloneVolumes(in []geom.ConvexVolume) []geom.ConvexVolume {
	if in == nil {
		return nil
	}
	out := make([]geom.ConvexVolume, len(in))
	for i, v := range in {
		v.Verts = append(v.Verts[:0:0], v.Verts...)
		out[i] = v
	}
	return out
}
