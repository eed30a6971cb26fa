// Package observability defines the Observer hook through which the
// serving side of this module reports what it did.
//
// # Overview
//
// Code that performs an operation worth watching, such as the exporter
// answering a scrape, accepts an optional Observer and calls it once the
// operation completes:
//
//	start := time.Now()
//	err := exposition.Encode(&buf, reg)
//
//	if observer != nil {
//	    observer.ObserveOperation(observability.OperationContext{
//	        Component: "exporter",
//	        Operation: "scrape",
//	        Resource:  "/metrics",
//	        Duration:  time.Since(start),
//	        Error:     err,
//	        Size:      int64(buf.Len()),
//	    })
//	}
//
// The observed code never depends on what the observer does with the
// event. It may record metrics, start spans, write logs, or all three.
//
// # Recording operations as metrics
//
// MetricsObserver turns events into two metric families on a registry:
//
//	obs, err := observability.NewMetricsObserver(reg.SubRegistry("exporter"))
//	if err != nil {
//	    return err
//	}
//	handler := exporter.Handler(reg, exporter.WithObserver(obs))
//
// exposes exporter_operations_total{component,operation,status} and
// exporter_operation_duration_seconds{component,operation} on the next
// scrape, so the registry reports on its own scrapes.
//
// # FX Integration
//
//	fx.Provide(
//	    fx.Annotate(
//	        NewMyObserver,
//	        fx.As(new(observability.Observer)),
//	    ),
//	)
//
// The exporter's FX module picks up an Observer from the container when one
// is provided.
//
// # Thread Safety
//
// Observer implementations must be safe for concurrent use. They are called
// from every goroutine serving a scrape.
package observability
