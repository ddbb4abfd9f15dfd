package mocks

import (
	"context"
	"hotel/infras/otel"

	"go.opentelemetry.io/otel/trace/noop"
)

// noopOtel runs the real scope over a tracer that records nothing.
type noopOtel struct {
	provider noop.TracerProvider
}

func NewOtel() otel.Otel {
	return &noopOtel{provider: noop.NewTracerProvider()}
}

func (o *noopOtel) NewScope(ctx context.Context, scopeName, spanName string) (context.Context, otel.Scope) {
	ctx, span := o.provider.Tracer(scopeName).Start(ctx, spanName)

	return ctx, otel.NewScope(span)
}

func (o *noopOtel) Shutdown(_ context.Context) error {
	return nil
}
