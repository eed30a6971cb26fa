package tracer

import (
	"context"

	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// StartSpan starts a span named name. It becomes a child of the span in
// ctx, if any.
//
// Example:
//
//	ctx, span := tracerClient.StartSpan(ctx, "reindex")
//	defer span.End()
func (t *TracerClient) StartSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return t.provider.Tracer(instrumentationName).Start(ctx, name)
}

// GetCarrier returns the traceparent (and tracestate, baggage when set)
// headers for the span in ctx.
//
// Example:
//
//	for k, v := range tracerClient.GetCarrier(ctx) {
//	    req.Header.Set(k, v)
//	}
func (t *TracerClient) GetCarrier(ctx context.Context) map[string]string {
	carrier := propagation.MapCarrier{}
	t.propagator.Inject(ctx, carrier)
	return carrier
}

// SetCarrierOnContext continues the trace described by carrier.
func (t *TracerClient) SetCarrierOnContext(ctx context.Context, carrier map[string]string) context.Context {
	return t.propagator.Extract(ctx, propagation.MapCarrier(carrier))
}
