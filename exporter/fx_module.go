package exporter

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"

	"github.com/aalemi-dev/openmetrics/logger"
	"github.com/aalemi-dev/openmetrics/observability"
	"github.com/aalemi-dev/openmetrics/registry"
)

// FXModule provides *Exporter and its application *registry.Registry, and
// runs both metrics servers for the lifetime of the app.
//
// An observability.Observer and a trace.TracerProvider are picked up from
// the container when present and applied to the application endpoint.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    exporter.FXModule,
//	    fx.Supply(logger.Config{Level: logger.Info}),
//	    fx.Provide(func() (exporter.Config, error) {
//	        return exporter.LoadConfig("config/metrics.yaml")
//	    }),
//	    fx.Invoke(func(reg *registry.Registry) {
//	        reg.MustRegister("jobs_processed", "Jobs processed", processed)
//	    }),
//	)
//
// Dependencies required by this module:
// - an exporter.Config
// - a *logger.LoggerClient, e.g. from logger.FXModule
var FXModule = fx.Module("exporter",
	fx.Provide(
		newFromParams,
		func(e *Exporter) *registry.Registry { return e.Registry },
	),
	fx.Invoke(RegisterExporterLifecycle),
)

type exporterParams struct {
	fx.In

	Config         Config
	Logger         *logger.LoggerClient
	Observer       observability.Observer `optional:"true"`
	TracerProvider trace.TracerProvider   `optional:"true"`
}

func newFromParams(p exporterParams) *Exporter {
	var opts []Option
	if p.Observer != nil {
		opts = append(opts, WithObserver(p.Observer))
	}
	if p.TracerProvider != nil {
		opts = append(opts, WithTracerProvider(p.TracerProvider))
	}
	return New(p.Config, p.Logger, opts...)
}

// RegisterExporterLifecycle binds both servers when the app starts, so an
// address already in use fails startup, and serves them in the background.
// On stop both are shut down gracefully.
func RegisterExporterLifecycle(lc fx.Lifecycle, e *Exporter) {
	servers := []struct {
		name   string
		server *http.Server
	}{
		{"application", e.ApplicationServer},
		{"system", e.SystemServer},
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			var started []*http.Server
			for _, s := range servers {
				if s.server == nil {
					continue
				}
				ln, err := net.Listen("tcp", s.server.Addr)
				if err != nil {
					for _, srv := range started {
						_ = srv.Close()
					}
					return fmt.Errorf("listen %s metrics on %s: %w", s.name, s.server.Addr, err)
				}
				started = append(started, s.server)
				e.log.Info("Starting metrics server", nil, map[string]interface{}{
					"endpoint": s.name,
					"address":  ln.Addr().String(),
				})
				go func(name string, srv *http.Server) {
					if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
						e.log.Error("Metrics server stopped", err, map[string]interface{}{
							"endpoint": name,
						})
					}
				}(s.name, s.server)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			var errs []error
			for _, s := range servers {
				if s.server == nil {
					continue
				}
				e.log.Info("Shutting down metrics server", nil, map[string]interface{}{
					"endpoint": s.name,
				})
				if err := s.server.Shutdown(ctx); err != nil {
					e.log.Error("Error shutting down metrics server", err, map[string]interface{}{
						"endpoint": s.name,
					})
					errs = append(errs, err)
				}
			}
			return errors.Join(errs...)
		},
	})
}
