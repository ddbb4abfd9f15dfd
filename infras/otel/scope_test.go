package otel_test

import (
	"context"
	"errors"
	"hotel/infras/otel"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func record(t *testing.T, fn func(scope otel.Scope)) sdktrace.ReadOnlySpan {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(context.Background(), "booking.Create")
	scope := otel.NewScope(span)

	fn(scope)
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	return spans[0]
}

func TestScope_TraceIfError(t *testing.T) {
	span := record(t, func(scope otel.Scope) {
		scope.TraceIfError(nil)
	})
	assert.Equal(t, codes.Unset, span.Status().Code)

	span = record(t, func(scope otel.Scope) {
		scope.TraceIfError(errors.New("room is not available"))
	})
	assert.Equal(t, codes.Error, span.Status().Code)
	assert.Equal(t, "room is not available", span.Status().Description)
}

func TestScope_SetAttributes(t *testing.T) {
	span := record(t, func(scope otel.Scope) {
		scope.SetAttribute("booking.reference", "K7Q2M9XA")
		scope.SetAttributes(map[string]any{
			"room.id":      int64(4),
			"booking.paid": false,
			"total":        decimal.RequireFromString("300.5"),
		})
		scope.AddEvent("Booking created")
	})

	got := map[attribute.Key]attribute.Value{}
	for _, kv := range span.Attributes() {
		got[kv.Key] = kv.Value
	}

	assert.Equal(t, "K7Q2M9XA", got["booking.reference"].AsString())
	assert.Equal(t, int64(4), got["room.id"].AsInt64())
	assert.False(t, got["booking.paid"].AsBool())
	assert.Equal(t, "300.50", got["total"].AsString())

	require.Len(t, span.Events(), 1)
	assert.Equal(t, "Booking created", span.Events()[0].Name)
}

func TestAttribute_Fallback(t *testing.T) {
	kv := otel.Attribute("ids", []int{1, 2})

	assert.Equal(t, attribute.STRING, kv.Value.Type())
	assert.Equal(t, "[1 2]", kv.Value.AsString())
}
