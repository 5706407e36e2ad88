package draw

import "fmt"

// UI: immediate-mode интерфейс, через который инструменты рисуют свои меню
// и подписи оверлея. Виджеты возвращают новое значение так же, как imgui.
type UI interface {
	Label(text string)
	Checkbox(text string, checked bool) bool
	Button(text string) bool
	Slider(text string, value, min, max, step float64) float64
	Separator()
	// Text выводит подпись в оконных координатах (используется из оверлея).
	Text(x, y float64, text string, color uint32)
}

// Widget: записанный виджет
type Widget struct {
	Kind  string
	Text  string
	Value float64
	X, Y  float64
}

// ScriptedUI реализует UI без окна: ответы виджетов берутся из заранее
// заданных карт, а все вызовы записываются.
type ScriptedUI struct {
	Widgets []Widget
	// Clicks: кнопки, "нажатые" в этом кадре.
	Clicks map[string]bool
	// Toggles: чекбоксы, переключаемые в этом кадре.
	Toggles map[string]bool
	// Values: значения слайдеров, выставляемые в этом кадре.
	Values map[string]float64
}

// NewScriptedUI создаёт пустой скриптовый UI
func NewScriptedUI() *ScriptedUI {
	return &ScriptedUI{
		Clicks:  make(map[string]bool),
		Toggles: make(map[string]bool),
		Values:  make(map[string]float64),
	}
}

func (u *ScriptedUI) Label(text string) {
	u.Widgets = append(u.Widgets, Widget{Kind: "label", Text: text})
}

func (u *ScriptedUI) Checkbox(text string, checked bool) bool {
	if u.Toggles[text] {
		checked = !checked
		delete(u.Toggles, text)
	}
	u.Widgets = append(u.Widgets, Widget{Kind: "checkbox", Text: text, Value: boolValue(checked)})
	return checked
}

func (u *ScriptedUI) Button(text string) bool {
	pressed := u.Clicks[text]
	delete(u.Clicks, text)
	u.Widgets = append(u.Widgets, Widget{Kind: "button", Text: text, Value: boolValue(pressed)})
	return pressed
}

func (u *ScriptedUI) Slider(text string, value, min, max, step float64) float64 {
	// Шаг применяется только к выставленному значению, как при перетаскивании
	if v, ok := u.Values[text]; ok {
		value = v
		delete(u.Values, text)
		if step > 0 && v >= min && v <= max {
			value = min + float64(int((value-min)/step+0.5))*step
		}
	}
	if value < min {
		value = min
	}
	if value > max {
		value = max
	}
	u.Widgets = append(u.Widgets, Widget{Kind: "slider", Text: text, Value: value})
	return value
}

func (u *ScriptedUI) Separator() {
	u.Widgets = append(u.Widgets, Widget{Kind: "separator"})
}

func (u *ScriptedUI) Text(x, y float64, text string, color uint32) {
	u.Widgets = append(u.Widgets, Widget{Kind: "text", Text: text, X: x, Y: y, Value: float64(color)})
}

// Find возвращает первый виджет с указанным текстом
func (u *ScriptedUI) Find(text string) (Widget, bool) {
	for _, w := range u.Widgets {
		if w.Text == text {
			return w, true
		}
	}
	return Widget{}, false
}

// Reset забывает записанные виджеты
func (u *ScriptedUI) Reset() {
	u.Widgets = u.Widgets[:0]
}

// Dump возвращает текстовое представление виджетов для отладки
func (u *ScriptedUI) Dump() []string {
	out := make([]string, 0, len(u.Widgets))
	for _, w := range u.Widgets {
		out = append(out, fmt.Sprintf("%s:%s=%g", w.Kind, w.Text, w.Value))
	}
	return out
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
