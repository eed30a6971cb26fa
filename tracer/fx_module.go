package tracer

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"

	"github.com/aalemi-dev/openmetrics/logger"
)

// FXModule provides *TracerClient, the Tracer interface and a
// trace.TracerProvider, and shuts the provider down when the app stops.
//
// The exporter module picks up the trace.TracerProvider, so adding this
// module is enough to get a span per scrape:
//
//	app := fx.New(
//	    logger.FXModule,
//	    tracer.FXModule,
//	    exporter.FXModule,
//	    fx.Supply(tracer.Config{ServiceName: "search-store", EnableExport: true}),
//	    // ...
//	)
var FXModule = fx.Module("tracer",
	fx.Provide(
		func(cfg Config) (*TracerClient, error) { return NewClient(cfg) },
		fx.Annotate(
			func(t *TracerClient) Tracer { return t },
			fx.As(new(Tracer)),
		),
		func(t *TracerClient) trace.TracerProvider { return t.Provider() },
	),
	fx.Invoke(RegisterTracerLifecycle),
)

// LifecycleParams are the dependencies of RegisterTracerLifecycle.
type LifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Tracer    *TracerClient
	Logger    *logger.LoggerClient `optional:"true"`
}

// RegisterTracerLifecycle shuts the tracer provider down on stop, flushing
// spans still waiting in the batcher.
func RegisterTracerLifecycle(p LifecycleParams) {
	log := p.Logger
	if log == nil {
		log = logger.NewNop()
	}
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down tracer", nil, nil)
			return p.Tracer.Shutdown(ctx)
		},
	})
}
