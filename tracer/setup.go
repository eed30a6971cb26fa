package tracer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/aalemi-dev/openmetrics/tracer"

// TracerClient owns the OpenTelemetry SDK tracer provider of the process.
//
// It is safe for concurrent use and implements the Tracer interface.
type TracerClient struct {
	provider   *sdktrace.TracerProvider
	propagator propagation.TextMapPropagator
}

var _ Tracer = (*TracerClient)(nil)

// Option configures NewClient.
type Option func(*[]sdktrace.TracerProviderOption)

// WithSpanProcessor adds a span processor next to the configured exporter.
// Tests use it with tracetest.NewSpanRecorder to inspect finished spans.
func WithSpanProcessor(sp sdktrace.SpanProcessor) Option {
	return func(opts *[]sdktrace.TracerProviderOption) {
		*opts = append(*opts, sdktrace.WithSpanProcessor(sp))
	}
}

// NewClient builds the tracer provider described by cfg and installs it,
// together with the W3C trace context and baggage propagators, as the
// global OpenTelemetry provider.
//
// Example:
//
//	tracerClient, err := tracer.NewClient(tracer.Config{
//	    ServiceName:  "search-store",
//	    AppEnv:       "production",
//	    EnableExport: true,
//	})
//	if err != nil {
//	    return err
//	}
//	defer tracerClient.Shutdown(context.Background())
func NewClient(cfg Config, opts ...Option) (*TracerClient, error) {
	var options []sdktrace.TracerProviderOption

	if cfg.EnableExport {
		exporter, err := newExporter(context.Background(), cfg.Exporter)
		if err != nil {
			return nil, err
		}
		options = append(options, sdktrace.WithBatcher(exporter))
	}

	options = append(options, sdktrace.WithResource(resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.DeploymentEnvironment(cfg.AppEnv),
		attribute.String("environment", cfg.AppEnv),
	)))
	for _, o := range opts {
		if o != nil {
			o(&options)
		}
	}

	tp := sdktrace.NewTracerProvider(options...)
	propagator := propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{})

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagator)

	return &TracerClient{provider: tp, propagator: propagator}, nil
}

func newExporter(ctx context.Context, kind string) (sdktrace.SpanExporter, error) {
	switch kind {
	case "", ExporterOTLP:
		exporter, err := otlptrace.New(ctx, otlptracehttp.NewClient())
		if err != nil {
			return nil, fmt.Errorf("failed to initialize OTLP exporter: %w", err)
		}
		return exporter, nil
	case ExporterStdout:
		exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("failed to initialize stdout exporter: %w", err)
		}
		return exporter, nil
	default:
		return nil, fmt.Errorf("unknown trace exporter %q", kind)
	}
}

// Provider returns the SDK tracer provider.
func (t *TracerClient) Provider() trace.TracerProvider {
	return t.provider
}

// Shutdown flushes pending spans and stops the exporter.
func (t *TracerClient) Shutdown(ctx context.Context) error {
	return t.provider.Shutdown(ctx)
}
