// Package buildctx: контекст сборки: принимает от инструментов лог, таймеры и
// снимки памяти и пересылает их в логгер компонента "build".
package buildctx

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/annel0/navmesh-editor/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shirou/gopsutil/v3/process"
)

// Category: категория сообщения лога
type Category int

const (
	Progress Category = iota + 1
	Warning
	Error
)

func (c Category) String() string {
	switch c {
	case Progress:
		return "progress"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// MaxMessages: сколько сообщений хранится в памяти
const MaxMessages = 1000

// Стандартные имена таймеров этапов сборки
const (
	TimerTotal             = "total"
	TimerRasterizeTris     = "rasterize_triangles"
	TimerMarkConvexArea    = "mark_convex_poly_area"
	TimerBuildRegions      = "build_regions"
	TimerBuildPolymesh     = "build_polymesh"
	TimerBuildDetailMesh   = "build_polymesh_detail"
	TimerFilterLowObstacle = "filter_low_obstacles"
)

// Message: запись лога сборки
type Message struct {
	Category Category
	Text     string
	At       time.Time
}

// MemorySample: снимок памяти процесса
type MemorySample struct {
	Label string
	RSS   uint64
	VMS   uint64
	At    time.Time
}

// Context накапливает диагностику одной сессии сборки.
// Используется только из потока кадра.
type Context struct {
	logger   *logging.Logger
	messages []Message
	memory   []MemorySample

	started map[string]time.Time
	totals  map[string]time.Duration

	timerHist *prometheus.HistogramVec
	now       func() time.Time
	pid       int32

	logEnabled   bool
	timerEnabled bool
}

// Option настраивает Context
type Option func(*Context)

// WithLogger задаёт логгер (по умолчанию логгер компонента "build")
func WithLogger(l *logging.Logger) Option {
	return func(c *Context) { c.logger = l }
}

// WithRegisterer регистрирует гистограмму длительностей таймеров
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *Context) {
		c.timerHist = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "navedit",
			Subsystem: "build",
			Name:      "timer_seconds",
			Help:      "Длительность именованных этапов сборки.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
		}, []string{"label"})
		reg.MustRegister(c.timerHist)
	}
}

// WithClock подменяет источник времени (для тестов)
func WithClock(now func() time.Time) Option {
	return func(c *Context) { c.now = now }
}

// New создаёт контекст сборки
func New(opts ...Option) *Context {
	c := &Context{
		started:      make(map[string]time.Time),
		totals:       make(map[string]time.Duration),
		now:          time.Now,
		pid:          int32(os.Getpid()),
		logEnabled:   true,
		timerEnabled: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.GetBuildLogger()
	}
	return c
}

// EnableLog включает или выключает накопление лога
func (c *Context) EnableLog(state bool) { c.logEnabled = state }

// EnableTimer включает или выключает таймеры
func (c *Context) EnableTimer(state bool) { c.timerEnabled = state }

// Log добавляет сообщение и пересылает его в логгер
func (c *Context) Log(cat Category, format string, args ...interface{}) {
	if !c.logEnabled {
		return
	}
	text := fmt.Sprintf(format, args...)
	if len(c.messages) < MaxMessages {
		c.messages = append(c.messages, Message{Category: cat, Text: text, At: c.now()})
	}

	switch cat {
	case Warning:
		c.logger.Warn("%s", text)
	case Error:
		c.logger.Error("%s", text)
	default:
		c.logger.Debug("%s", text)
	}
}

// Messages возвращает накопленные сообщения
func (c *Context) Messages() []Message {
	return c.messages
}

// ResetLog очищает накопленный лог
func (c *Context) ResetLog() {
	c.messages = c.messages[:0]
}

// StartTimer запускает таймер с именем label
func (c *Context) StartTimer(label string) {
	if !c.timerEnabled {
		return
	}
	c.started[label] = c.now()
}

// StopTimer останавливает таймер и прибавляет прошедшее время к сумме.
// Остановка незапущенного таймера игнорируется.
func (c *Context) StopTimer(label string) {
	if !c.timerEnabled {
		return
	}
	start, ok := c.started[label]
	if !ok {
		return
	}
	delete(c.started, label)
	d := c.now().Sub(start)
	c.totals[label] += d
	if c.timerHist != nil {
		c.timerHist.WithLabelValues(label).Observe(d.Seconds())
	}
}

// AccumulatedTime возвращает суммарное время таймера; -1, если таймер не запускался
func (c *Context) AccumulatedTime(label string) time.Duration {
	d, ok := c.totals[label]
	if !ok {
		return -1
	}
	return d
}

// Timers возвращает имена таймеров в алфавитном порядке
func (c *Context) Timers() []string {
	labels := make([]string, 0, len(c.totals))
	for l := range c.totals {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

// ResetTimers сбрасывает все таймеры
func (c *Context) ResetTimers() {
	c.started = make(map[string]time.Time)
	c.totals = make(map[string]time.Duration)
}

// SampleMemory снимает RSS/VMS текущего процесса
func (c *Context) SampleMemory(label string) (MemorySample, error) {
	proc, err := process.NewProcess(c.pid)
	if err != nil {
		return MemorySample{}, fmt.Errorf("open process %d: %w", c.pid, err)
	}
	info, err := proc.MemoryInfo()
	if err != nil {
		return MemorySample{}, fmt.Errorf("read memory info: %w", err)
	}
	sample := MemorySample{Label: label, RSS: info.RSS, VMS: info.VMS, At: c.now()}
	c.memory = append(c.memory, sample)
	c.logger.Debug("Memory [%s]: rss=%.1fMB vms=%.1fMB", label, mb(info.RSS), mb(info.VMS))
	return sample, nil
}

// MemorySamples возвращает снятые снимки памяти
func (c *Context) MemorySamples() []MemorySample {
	return c.memory
}

// DumpLog пишет накопленный лог и таймеры в w
func (c *Context) DumpLog(w io.Writer, header string) error {
	if _, err := fmt.Fprintf(w, "%s\n", header); err != nil {
		return err
	}
	for _, m := range c.messages {
		if _, err := fmt.Fprintf(w, "[%s] %s\n", m.Category, m.Text); err != nil {
			return err
		}
	}
	for _, label := range c.Timers() {
		if _, err := fmt.Fprintf(w, "%-24s %8.2fms\n", label, float64(c.totals[label].Microseconds())/1000.0); err != nil {
			return err
		}
	}
	return nil
}

func mb(b uint64) float64 {
	return float64(b) / 1024 / 1024
}
