package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Типы событий редактора
const (
	TypeToolSwitched     = "ToolSwitched"
	TypeToolStateChanged = "ToolStateChanged"
	TypeSettingsApplied  = "SettingsApplied"
	TypeMeshChanged      = "MeshChanged"
	TypeBuildFinished    = "BuildFinished"
)

// SourceEditor: источник событий по умолчанию
const SourceEditor = "navedit"

// ToolSwitched: полезная нагрузка смены инструмента
type ToolSwitched struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ToolStateChanged: полезная нагрузка установки/снятия состояния режима
type ToolStateChanged struct {
	Kind       string `json:"kind"`
	Registered bool   `json:"registered"`
}

// BuildFinished: результат сборки навмеша
type BuildFinished struct {
	OK         bool    `json:"ok"`
	DurationMs float64 `json:"duration_ms"`
}

// NewEnvelope упаковывает payload в JSON-конверт с новым UUID
func NewEnvelope(eventType string, priority int, payload interface{}) (*Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	return &Envelope{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Source:    SourceEditor,
		EventType: eventType,
		Version:   1,
		Priority:  priority,
		Payload:   data,
		Metadata:  map[string]string{"encoding": "json"},
	}, nil
}

// Decode разбирает JSON-payload конверта
func Decode(ev *Envelope, out interface{}) error {
	if err := json.Unmarshal(ev.Payload, out); err != nil {
		return fmt.Errorf("decode %s payload: %w", ev.EventType, err)
	}
	return nil
}

// Emit публикует событие в шину. Без шины событие уходит в глобальную (см. Init),
// а если нет и её, молча отбрасывается.
func Emit(ctx context.Context, bus EventBus, eventType string, priority int, payload interface{}) error {
	if bus == nil && Global() == nil {
		return nil
	}
	ev, err := NewEnvelope(eventType, priority, payload)
	if err != nil {
		return err
	}
	if bus == nil {
		return Publish(ctx, ev)
	}
	return bus.Publish(ctx, ev)
}
