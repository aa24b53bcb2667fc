package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func installRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider()
	tp.RegisterSpanProcessor(recorder)
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})
	return recorder
}

func attr(span sdktrace.ReadOnlySpan, key string) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestStartEnd_Success(t *testing.T) {
	recorder := installRecorder(t)

	_, span := Start(context.Background(), "scheduler.recommend_next", NonEmpty(AttrProfileID, "p-1")...)
	End(span, nil)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "scheduler.recommend_next", spans[0].Name())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)

	v, ok := attr(spans[0], AttrProfileID)
	require.True(t, ok)
	assert.Equal(t, "p-1", v.AsString())
	v, ok = attr(spans[0], AttrStatus)
	require.True(t, ok)
	assert.Equal(t, "success", v.AsString())
}

func TestStartEnd_Error(t *testing.T) {
	recorder := installRecorder(t)

	_, span := Start(context.Background(), "scheduler.missed_options")
	End(span, errors.New("unknown timezone"))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "unknown timezone", spans[0].Status().Description)
	assert.NotEmpty(t, spans[0].Events())
}

func TestEnd_NilSpan(t *testing.T) {
	assert.NotPanics(t, func() { End(nil, nil) })
}

func TestNonEmpty(t *testing.T) {
	assert.Nil(t, NonEmpty(AttrEventID, ""))
	assert.Len(t, NonEmpty(AttrEventID, "evt-1"), 1)
}
