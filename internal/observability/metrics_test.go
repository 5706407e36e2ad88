package observability

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditorMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewEditorMetrics(reg)

	m.ToolSwitched("none", "navmesh-tester")
	m.ToolSwitched("navmesh-tester", "crowd")
	m.Event("click")
	m.Event("click")
	m.StatesRegistered(2)
	m.ObserveFrame(3 * time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.toolSwitches.WithLabelValues("crowd")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.activeTool.WithLabelValues("navmesh-tester")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.activeTool.WithLabelValues("crowd")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.events.WithLabelValues("click")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.registered))

	count, err := testutil.GatherAndCount(reg, "navedit_frame_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *EditorMetrics
	assert.NotPanics(t, func() {
		m.ToolSwitched("a", "b")
		m.Event("x")
		m.StatesRegistered(1)
		m.ObserveFrame(time.Second)
	})
}

func TestTracerWithoutProvider(t *testing.T) {
	_, span := Tracer().Start(context.Background(), "noop")
	span.End()
	assert.NotNil(t, span)
}
