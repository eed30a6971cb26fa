package exporter

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aalemi-dev/openmetrics/logger"
	"github.com/aalemi-dev/openmetrics/metrics"
	"github.com/aalemi-dev/openmetrics/registry"
)

const readHeaderTimeout = 10 * time.Second

// Exporter holds the application registry and the two HTTP servers that
// expose it and the process's system metrics.
//
//  1. ApplicationServer serves Registry, encoded by the exposition package.
//  2. SystemServer serves SystemRegistry through promhttp.
//
// Either server is nil when its address is configured as "".
type Exporter struct {
	// Registry is where the application registers its metrics. Every
	// sample carries the configured service label.
	Registry *registry.Registry

	// ApplicationServer serves Registry on ApplicationMetricsAddress.
	ApplicationServer *http.Server

	// SystemRegistry holds the Go runtime, process and build info
	// collectors.
	SystemRegistry *prometheus.Registry

	// SystemServer serves SystemRegistry on SystemMetricsAddress.
	SystemServer *http.Server

	log *logger.LoggerClient
}

// New builds the registries and servers described by cfg. The servers are
// not started; FXModule does that, or the caller can run ListenAndServe
// itself.
//
// Options are passed to the application endpoint's Handler. The exporter's
// own logger is used unless WithLogger overrides it.
//
// Example:
//
//	exp := exporter.New(exporter.Config{ServiceName: "search-store"}, log)
//	exp.Registry.MustRegister("documents_indexed", "Documents indexed", indexed)
//	go exp.ApplicationServer.ListenAndServe()
//
// Access metrics at:
//   - Application metrics: http://localhost:9091/metrics
//   - System metrics: http://localhost:9090/metrics
func New(cfg Config, log *logger.LoggerClient, opts ...Option) *Exporter {
	if log == nil {
		log = logger.NewNop()
	}
	e := &Exporter{log: log}

	var regOpts []registry.Option
	regOpts = append(regOpts, registry.WithLogger(log))
	if cfg.ServiceName != "" {
		regOpts = append(regOpts, registry.WithLabels(metrics.Label{Name: "service", Value: cfg.ServiceName}))
	}
	e.Registry = registry.New(regOpts...)

	path := cfg.path()

	if addr := cfg.applicationAddress(); addr != "" {
		handlerOpts := append([]Option{WithLogger(log)}, opts...)
		mux := http.NewServeMux()
		mux.Handle(path, Handler(e.Registry, handlerOpts...))
		e.ApplicationServer = &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: readHeaderTimeout,
		}
	}

	if addr := cfg.systemAddress(); addr != "" {
		systemRegistry := prometheus.NewRegistry()

		wrapped := prometheus.WrapRegistererWith(
			prometheus.Labels{"service": cfg.ServiceName},
			systemRegistry,
		)
		wrapped.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)

		mux := http.NewServeMux()
		mux.Handle(path, promhttp.HandlerFor(systemRegistry, promhttp.HandlerOpts{
			EnableOpenMetrics: true,
		}))
		e.SystemRegistry = systemRegistry
		e.SystemServer = &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: readHeaderTimeout,
		}
	}

	return e
}
