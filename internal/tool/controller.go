package tool

import (
	"io"

	"github.com/annel0/navmesh-editor/internal/draw"
	"github.com/annel0/navmesh-editor/internal/logging"
	"github.com/annel0/navmesh-editor/internal/vec"
)

// SwitchFunc вызывается после смены активного инструмента
type SwitchFunc func(prev, next Kind)

// Controller владеет не более чем одним активным инструментом и пересылает
// ему события кадра. Отсутствие инструмента допустимо: все
// события тогда молча игнорируются.
type Controller struct {
	noCopy noCopy

	host      Host
	active    Tool
	listeners []SwitchFunc
	logger    *logging.Logger
}

// NewController создаёт контроллер без активного инструмента
func NewController(host Host) *Controller {
	return &Controller{
		host:   host,
		logger: logging.GetToolsLogger(),
	}
}

// SetHost меняет хост, передаваемый в Init последующих инструментов
func (c *Controller) SetHost(host Host) {
	c.host = host
}

// OnSwitch добавляет наблюдателя смены инструмента
func (c *Controller) OnSwitch(fn SwitchFunc) {
	if fn != nil {
		c.listeners = append(c.listeners, fn)
	}
}

// SetTool закрывает предыдущий инструмент, устанавливает новый и вызывает его Init.
// Повторная установка того же экземпляра ничего не делает; nil снимает инструмент.
func (c *Controller) SetTool(t Tool) {
	if t == c.active {
		return
	}
	prev := c.active
	prevKind := c.ActiveKind()

	c.active = nil
	if prev != nil {
		if closer, ok := prev.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				c.logger.Warn("closing %s tool: %v", prevKind, err)
			}
		}
	}

	c.active = t
	if t != nil {
		t.Init(c.host)
	}

	nextKind := c.ActiveKind()
	logging.LogToolSwitch(prevKind.String(), nextKind.String())
	for _, fn := range c.listeners {
		fn(prevKind, nextKind)
	}
}

// Active возвращает активный инструмент
func (c *Controller) Active() (Tool, bool) {
	return c.active, c.active != nil
}

// ActiveKind возвращает Kind активного инструмента или KindNone
func (c *Controller) ActiveKind() Kind {
	if c.active == nil {
		return KindNone
	}
	return c.active.Kind()
}

// ResetActive сбрасывает активный инструмент
func (c *Controller) ResetActive() {
	if c.active != nil {
		c.active.Reset()
	}
}

// InitActive повторно инициализирует активный инструмент (например, после смены геометрии)
func (c *Controller) InitActive() {
	if c.active != nil {
		c.active.Init(c.host)
	}
}

func (c *Controller) HandleMenu(ui draw.UI) {
	if c.active != nil {
		c.active.HandleMenu(ui)
	}
}

func (c *Controller) HandleClick(s, p vec.Vec3, shift bool) {
	if c.active != nil {
		logging.LogClick(c.active.Kind().String(), p.X, p.Y, p.Z, shift)
		c.active.HandleClick(s, p, shift)
	}
}

func (c *Controller) HandleToggle() {
	if c.active != nil {
		c.active.HandleToggle()
	}
}

func (c *Controller) HandleStep() {
	if c.active != nil {
		c.active.HandleStep()
	}
}

func (c *Controller) HandleUpdate(dt float64) {
	if c.active != nil {
		c.active.HandleUpdate(dt)
	}
}

func (c *Controller) HandleRender() {
	if c.active != nil {
		c.active.HandleRender()
	}
}

func (c *Controller) HandleRenderOverlay(view draw.Viewport) {
	if c.active != nil {
		c.active.HandleRenderOverlay(view)
	}
}

// Close закрывает активный инструмент при завершении приложения
func (c *Controller) Close() {
	c.SetTool(nil)
}
