package otel_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"meetspace/infras/otel"
	"meetspace/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecorder() (otel.Otel, *tracetest.SpanRecorder) {
	recorder := tracetest.NewSpanRecorder()
	provider := trace.NewTracerProvider(trace.WithSpanProcessor(recorder))

	return otel.NewWithProvider(provider), recorder
}

func attributes(span trace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	res := map[attribute.Key]attribute.Value{}
	for _, kv := range span.Attributes() {
		res[kv.Key] = kv.Value
	}

	return res
}

func TestTraceError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status codes.Code
		code   int64
	}{
		{name: "conflict is not a span error", err: failure.SchedulingConflictError, status: codes.Unset, code: 400},
		{name: "not found is not a span error", err: failure.NotFound("meeting not found"), status: codes.Unset, code: 404},
		{name: "internal failure", err: failure.InternalError(errors.New("boom")), status: codes.Error, code: 500},
		{name: "plain error", err: errors.New("connection reset"), status: codes.Error},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracer, recorder := newRecorder()

			_, scope := tracer.NewScope(context.Background(), "service", "service.Create")
			scope.TraceIfError(tt.err)
			scope.TraceIfError(nil)
			scope.End()

			spans := recorder.Ended()
			require.Len(t, spans, 1)
			assert.Equal(t, tt.status, spans[0].Status().Code)
			assert.Len(t, spans[0].Events(), 1)

			code, ok := attributes(spans[0])["failure.code"]
			if tt.code == 0 {
				assert.False(t, ok)

				return
			}

			assert.Equal(t, tt.code, code.AsInt64())
		})
	}
}

func TestSetAttributes(t *testing.T) {
	tracer, recorder := newRecorder()

	_, scope := tracer.NewScope(context.Background(), "repository", "repository.meeting.Find")
	scope.SetAttributes(map[string]any{
		"room.id":   "r1",
		"limit":     10,
		"confirmed": true,
		"hours":     1.5,
		"tags":      []string{"tv"},
		"elapsed":   90 * time.Second,
	})
	scope.AddEvent("loaded")
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	attrs := attributes(spans[0])
	assert.Equal(t, "r1", attrs["room.id"].AsString())
	assert.Equal(t, int64(10), attrs["limit"].AsInt64())
	assert.True(t, attrs["confirmed"].AsBool())
	assert.InDelta(t, 1.5, attrs["hours"].AsFloat64(), 0)
	assert.Equal(t, []string{"tv"}, attrs["tags"].AsStringSlice())
	assert.Equal(t, "1m30s", attrs["elapsed"].AsString())
	assert.Equal(t, "loaded", spans[0].Events()[0].Name)
}
