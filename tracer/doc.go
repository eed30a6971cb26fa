// Package tracer sets up OpenTelemetry tracing for services that expose
// metrics with this module.
//
// It owns the SDK tracer provider of the process. The exporter package takes
// that provider to start a span for every scrape, and the logger package
// adds the trace and span ids of the current span to every ...WithContext
// log line, so a slow or failing scrape can be followed from the log to the
// trace.
//
// # Basic Usage
//
//	tracerClient, err := tracer.NewClient(tracer.Config{
//		ServiceName:  "search-store",
//		AppEnv:       "development",
//		EnableExport: true,
//		Exporter:     tracer.ExporterStdout,
//	})
//	if err != nil {
//		return err
//	}
//	defer tracerClient.Shutdown(ctx)
//
//	handler := exporter.Handler(reg,
//		exporter.WithTracerProvider(tracerClient.Provider()),
//	)
//
// # Propagation
//
// NewClient installs the W3C trace context and baggage propagators
// globally. A scraper that sends a traceparent header gets its scrape span
// parented under its own trace. GetCarrier and SetCarrierOnContext do the
// same for other transports:
//
//	headers := tracerClient.GetCarrier(ctx)
//	// ... send headers along, then on the other side:
//	ctx = tracerClient.SetCarrierOnContext(ctx, headers)
//
// # Export
//
// With EnableExport set, spans are batched to the OTLP/HTTP endpoint given
// by the standard OTEL_EXPORTER_OTLP_ENDPOINT environment variables, or to
// stdout with Exporter set to "stdout". Without it spans are still created,
// so trace ids still reach the logs, but nothing is sent anywhere.
//
// # FX Integration
//
//	app := fx.New(
//		logger.FXModule,
//		tracer.FXModule,
//		exporter.FXModule,
//		fx.Supply(tracer.Config{ServiceName: "search-store"}),
//	)
//
// FXModule provides *TracerClient, Tracer and trace.TracerProvider, and
// flushes the provider on stop.
package tracer
