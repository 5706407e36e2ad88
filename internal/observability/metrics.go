package observability

import (
	"errors"
	"net/http"
	"time"

	"github.com/annel0/navmesh-editor/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// EditorMetrics: Prometheus-метрики каркаса инструментов
type EditorMetrics struct {
	toolSwitches  *prometheus.CounterVec
	activeTool    *prometheus.GaugeVec
	events        *prometheus.CounterVec
	registered    prometheus.Gauge
	frameDuration prometheus.Histogram
}

// NewEditorMetrics создаёт метрики и регистрирует их в reg
func NewEditorMetrics(reg prometheus.Registerer) *EditorMetrics {
	m := &EditorMetrics{
		toolSwitches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "navedit",
			Subsystem: "tools",
			Name:      "switches_total",
			Help:      "Количество смен активного инструмента по целевому режиму.",
		}, []string{"kind"}),
		activeTool: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "navedit",
			Subsystem: "tools",
			Name:      "active",
			Help:      "1 для активного режима, 0 для остальных.",
		}, []string{"kind"}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "navedit",
			Subsystem: "tools",
			Name:      "events_total",
			Help:      "События кадра, пересланные активному инструменту.",
		}, []string{"event"}),
		registered: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "navedit",
			Subsystem: "tools",
			Name:      "states_registered",
			Help:      "Число занятых слотов состояний режимов.",
		}),
		frameDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "navedit",
			Name:      "frame_duration_seconds",
			Help:      "Длительность обработки кадра (ввод, обновление, отрисовка).",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14),
		}),
	}
	reg.MustRegister(m.toolSwitches, m.activeTool, m.events, m.registered, m.frameDuration)
	return m
}

// ToolSwitched учитывает смену инструмента
func (m *EditorMetrics) ToolSwitched(prev, next string) {
	if m == nil {
		return
	}
	m.toolSwitches.WithLabelValues(next).Inc()
	m.activeTool.WithLabelValues(prev).Set(0)
	m.activeTool.WithLabelValues(next).Set(1)
}

// Event учитывает пересланное событие кадра
func (m *EditorMetrics) Event(name string) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(name).Inc()
}

// StatesRegistered выставляет число занятых слотов
func (m *EditorMetrics) StatesRegistered(n int) {
	if m == nil {
		return
	}
	m.registered.Set(float64(n))
}

// ObserveFrame записывает длительность кадра
func (m *EditorMetrics) ObserveFrame(d time.Duration) {
	if m == nil {
		return
	}
	m.frameDuration.Observe(d.Seconds())
}

// MetricsServer обслуживает /metrics
type MetricsServer struct {
	srv *http.Server
}

// StartMetricsServer запускает HTTP-эндпоинт Prometheus на addr (например, ":2112").
// Метод неблокирующий: HTTP-сервер стартует в отдельной горутине.
func StartMetricsServer(addr string, gatherer prometheus.Gatherer) *MetricsServer {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logging.Info("📈 Prometheus /metrics доступен по адресу %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Ошибка Prometheus HTTP сервера: %v", err)
		}
	}()
	return &MetricsServer{srv: srv}
}

// Close останавливает HTTP-сервер
func (s *MetricsServer) Close() error {
	if s == nil || s.srv == nil {
		return nil
	}
	return s.srv.Close()
}
