package sample

import (
	"context"
	"testing"

	"github.com/annel0/navmesh-editor/internal/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSpans(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	s := New(WithTracer(tp.Tracer("test")), WithBuilder(&stubBuilder{err: errBuildFailed}))
	s.HandleMeshChanged(quad())
	s.SetTool(&stubTool{kind: tool.KindConvexVolume, log: &journal{}})
	assert.False(t, s.HandleBuild(context.Background()))

	spans := rec.Ended()
	require.Len(t, spans, 3)
	assert.Equal(t, "sample.HandleMeshChanged", spans[0].Name())
	assert.Equal(t, "sample.SetTool", spans[1].Name())
	assert.Equal(t, "sample.HandleBuild", spans[2].Name())
	assert.Equal(t, codes.Error, spans[2].Status().Code)
	assert.Equal(t, errBuildFailed.Error(), spans[2].Status().Description)
}
