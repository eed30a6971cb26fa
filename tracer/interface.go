package tracer

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// Tracer creates spans and moves trace context across process boundaries.
//
// This interface is implemented by *TracerClient.
type Tracer interface {
	// StartSpan starts a span named name, child of the span in ctx if any.
	// Always call End on the returned span.
	StartSpan(ctx context.Context, name string) (context.Context, trace.Span)

	// GetCarrier returns the W3C trace context headers for ctx, to attach to
	// an outgoing request or message.
	GetCarrier(ctx context.Context) map[string]string

	// SetCarrierOnContext returns ctx continued from the trace context in
	// carrier, typically the headers of an incoming request.
	SetCarrierOnContext(ctx context.Context, carrier map[string]string) context.Context

	// Provider returns the underlying provider, for libraries that take a
	// trace.TracerProvider.
	Provider() trace.TracerProvider
}
