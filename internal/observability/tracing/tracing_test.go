package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/smallbiznis/customdelivery/internal/observability/correlation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
)

func TestDisabledProviderIsNoop(t *testing.T) {
	provider, err := NewTracerProvider(nil, Config{}, zap.NewNop())
	require.NoError(t, err)

	_, span := provider.Tracer("test").Start(context.Background(), "noop")
	assert.False(t, span.SpanContext().IsValid())
	span.End()
}

func TestUnknownProtocolRejected(t *testing.T) {
	_, err := newExporter("carrier-pigeon", "")
	assert.Error(t, err)
}

func TestOperationIDStampedOnSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(&operationSpanProcessor{}),
		sdktrace.WithSpanProcessor(recorder),
	)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	ctx := correlation.WithOperationID(context.Background(), "01HZXOP")
	_, span := tp.Tracer("test").Start(ctx, "slice.save")
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)

	var found bool
	for _, attr := range ended[0].Attributes() {
		if attr.Key == "operation_id" {
			found = true
			assert.Equal(t, "01HZXOP", attr.Value.AsString())
		}
	}
	assert.True(t, found)
}

func TestRecordError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	_, ok := tp.Tracer("test").Start(context.Background(), "ok")
	RecordError(ok, nil)
	ok.End()

	_, failed := tp.Tracer("test").Start(context.Background(), "failed")
	RecordError(failed, errors.New("not_found"))
	failed.End()

	ended := recorder.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, codes.Unset, ended[0].Status().Code)
	assert.Equal(t, codes.Error, ended[1].Status().Code)
	assert.Equal(t, "not_found", ended[1].Status().Description)
}
