// Package exporter serves metrics over HTTP for scraping.
//
// The core packages (metrics, registry, exposition) do no I/O. This package
// is the thin transport around them that services built on the fx stack
// expect: configuration from YAML and the environment, zap logging,
// lifecycle hooks, and a second endpoint for process-level metrics.
//
// # Dual Endpoint Design
//
// 1. Application endpoint (default :9091)
//   - Exporter.Registry, the application's own metrics
//   - rendered by exposition.Encode with the OpenMetrics content type
//   - every sample labelled service="<ServiceName>"
//
// 2. System endpoint (default :9090)
//   - Go runtime metrics (goroutines, memory, GC stats)
//   - Process metrics (CPU, file descriptors, memory)
//   - Build info
//   - collected by the Prometheus client and served through promhttp
//
// Keeping them apart allows different scrape intervals and access rules,
// and keeps runtime series out of the application's namespace.
//
// # Direct Usage (Without FX)
//
//	exp := exporter.New(exporter.Config{
//	    ApplicationMetricsAddress: exporter.Ptr(":9091"),
//	    SystemMetricsAddress:      exporter.Ptr(""), // disabled
//	    ServiceName:               "search-store",
//	}, log)
//
//	indexed := metrics.NewCounter[uint64]()
//	exp.Registry.MustRegister("documents_indexed", "Documents indexed", indexed)
//
//	go exp.ApplicationServer.ListenAndServe()
//
// Handler can also be mounted on an existing mux:
//
//	mux.Handle("/metrics", exporter.Handler(reg,
//	    exporter.WithLogger(log),
//	    exporter.WithTracerProvider(otel.GetTracerProvider()),
//	))
//
// # FX Integration
//
//	app := fx.New(
//	    logger.FXModule,
//	    exporter.FXModule,
//	    fx.Supply(logger.Config{Level: logger.Info, ServiceName: "search-store"}),
//	    fx.Provide(func() (exporter.Config, error) {
//	        return exporter.LoadConfig(os.Getenv("METRICS_CONFIG"))
//	    }),
//	    fx.Invoke(func(reg *registry.Registry) {
//	        reg.MustRegister("documents_indexed", "Documents indexed", indexed)
//	    }),
//	)
//
// # Configuration
//
// LoadConfig reads YAML first and lets environment variables override it:
//
//	system_metrics_address: ":9090"        # METRICS_SYSTEM_ADDRESS
//	application_metrics_address: ":9091"   # METRICS_APPLICATION_ADDRESS
//	path: /metrics                         # METRICS_PATH
//	service_name: search-store             # METRICS_SERVICE_NAME
//
// An address set to the empty string disables that endpoint.
//
// # Scrape Observation
//
// WithObserver reports each scrape as an observability.OperationContext
// with component "exporter", operation "scrape", the request path as
// resource, the encode duration and the response size. Pairing it with
// observability.MetricsObserver makes the registry report on its own
// scrapes.
//
// # Errors
//
// A scrape whose encode fails, for instance because a collector returned an
// error, is answered with 500 and logged. Nothing is written before the
// whole exposition has been encoded, so scrapers never see a partial body.
package exporter
