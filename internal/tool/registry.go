package tool

import (
	"io"

	"github.com/annel0/navmesh-editor/internal/draw"
	"github.com/annel0/navmesh-editor/internal/logging"
)

// StateRegistry хранит по одному необязательному State на каждый Kind и
// рассылает им события кадра в порядке возрастания Kind, пропуская пустые слоты.
type StateRegistry struct {
	noCopy noCopy

	slots  [MaxKinds]State
	logger *logging.Logger
}

// NewStateRegistry создаёт пустой реестр
func NewStateRegistry() *StateRegistry {
	return &StateRegistry{logger: logging.GetToolsLogger()}
}

// Set устанавливает состояние режима kind. Предыдущее состояние закрывается.
// nil очищает слот. Недопустимый kind приводит к panic.
func (r *StateRegistry) Set(kind Kind, s State) {
	mustValid(kind)
	prev := r.slots[kind]
	if prev == s {
		return
	}
	r.slots[kind] = s
	r.release(kind, prev)
}

// Get возвращает состояние режима kind
func (r *StateRegistry) Get(kind Kind) (State, bool) {
	mustValid(kind)
	s := r.slots[kind]
	return s, s != nil
}

// Len возвращает число занятых слотов
func (r *StateRegistry) Len() int {
	n := 0
	for _, s := range r.slots {
		if s != nil {
			n++
		}
	}
	return n
}

// Each вызывает fn для каждого занятого слота по возрастанию Kind
func (r *StateRegistry) Each(fn func(kind Kind, s State)) {
	for i, s := range r.slots {
		if s != nil {
			fn(Kind(i), s)
		}
	}
}

func (r *StateRegistry) InitAll(host Host) {
	r.Each(func(_ Kind, s State) { s.Init(host) })
}

func (r *StateRegistry) ResetAll() {
	r.Each(func(_ Kind, s State) { s.Reset() })
}

func (r *StateRegistry) RenderAll() {
	r.Each(func(_ Kind, s State) { s.HandleRender() })
}

func (r *StateRegistry) RenderOverlayAll(view draw.Viewport) {
	r.Each(func(_ Kind, s State) { s.HandleRenderOverlay(view) })
}

func (r *StateRegistry) UpdateAll(dt float64) {
	r.Each(func(_ Kind, s State) { s.HandleUpdate(dt) })
}

// Close закрывает и убирает все состояния
func (r *StateRegistry) Close() {
	for i, s := range r.slots {
		if s == nil {
			continue
		}
		r.slots[i] = nil
		r.release(Kind(i), s)
	}
}

func (r *StateRegistry) release(kind Kind, s State) {
	c, ok := s.(io.Closer)
	if !ok {
		return
	}
	if err := c.Close(); err != nil {
		r.logger.Warn("closing %s state: %v", kind, err)
	}
}
