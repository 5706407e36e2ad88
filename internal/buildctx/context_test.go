package buildctx

import (
	"bytes"
	"testing"
	"time"

	"github.com/annel0/navmesh-editor/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) now() time.Time { return f.t }

func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestContext(t *testing.T, opts ...Option) (*Context, *fakeClock, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	clock := &fakeClock{t: time.Unix(1000, 0)}
	opts = append([]Option{
		WithLogger(logging.NewWriterLogger("build", &buf, logging.TRACE)),
		WithClock(clock.now),
	}, opts...)
	return New(opts...), clock, &buf
}

func TestLogForwardsToLogger(t *testing.T) {
	ctx, _, buf := newTestContext(t)

	ctx.Log(Progress, "rasterizing %d triangles", 42)
	ctx.Log(Warning, "too many vertices")
	ctx.Log(Error, "out of memory")

	require.Len(t, ctx.Messages(), 3)
	assert.Equal(t, "rasterizing 42 triangles", ctx.Messages()[0].Text)
	assert.Contains(t, buf.String(), "[WARN] [build] too many vertices")
	assert.Contains(t, buf.String(), "[ERROR] [build] out of memory")

	ctx.ResetLog()
	assert.Empty(t, ctx.Messages())

	ctx.EnableLog(false)
	ctx.Log(Progress, "ignored")
	assert.Empty(t, ctx.Messages())
}

func TestTimersAccumulate(t *testing.T) {
	ctx, clock, _ := newTestContext(t)

	assert.Equal(t, time.Duration(-1), ctx.AccumulatedTime("total"))

	ctx.StartTimer("total")
	clock.advance(5 * time.Millisecond)
	ctx.StopTimer("total")
	ctx.StartTimer("total")
	clock.advance(3 * time.Millisecond)
	ctx.StopTimer("total")

	assert.Equal(t, 8*time.Millisecond, ctx.AccumulatedTime("total"))

	// Остановка без запуска ничего не меняет
	ctx.StopTimer("total")
	ctx.StopTimer("never")
	assert.Equal(t, 8*time.Millisecond, ctx.AccumulatedTime("total"))
	assert.Equal(t, []string{"total"}, ctx.Timers())

	ctx.ResetTimers()
	assert.Empty(t, ctx.Timers())
}

func TestTimerHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	ctx, clock, _ := newTestContext(t, WithRegisterer(reg))

	ctx.StartTimer("contours")
	clock.advance(time.Millisecond)
	ctx.StopTimer("contours")

	count, err := testutil.GatherAndCount(reg, "navedit_build_timer_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestDisabledTimers(t *testing.T) {
	ctx, clock, _ := newTestContext(t)
	ctx.EnableTimer(false)
	ctx.StartTimer("x")
	clock.advance(time.Second)
	ctx.StopTimer("x")
	assert.Equal(t, time.Duration(-1), ctx.AccumulatedTime("x"))
}

func TestSampleMemory(t *testing.T) {
	ctx, _, _ := newTestContext(t)
	sample, err := ctx.SampleMemory("after build")
	require.NoError(t, err)
	assert.NotZero(t, sample.RSS)
	assert.Len(t, ctx.MemorySamples(), 1)
}

func TestDumpLog(t *testing.T) {
	ctx, clock, _ := newTestContext(t)
	ctx.Log(Progress, "done")
	ctx.StartTimer("total")
	clock.advance(1500 * time.Microsecond)
	ctx.StopTimer("total")

	var out bytes.Buffer
	require.NoError(t, ctx.DumpLog(&out, "Build log"))
	assert.Contains(t, out.String(), "Build log")
	assert.Contains(t, out.String(), "[progress] done")
	assert.Contains(t, out.String(), "1.50ms")
}
