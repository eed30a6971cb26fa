package exporter

import (
	"bytes"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/aalemi-dev/openmetrics/exposition"
	"github.com/aalemi-dev/openmetrics/logger"
	"github.com/aalemi-dev/openmetrics/observability"
	"github.com/aalemi-dev/openmetrics/registry"
)

const tracerName = "github.com/aalemi-dev/openmetrics/exporter"

type options struct {
	log            logger.Logger
	observer       observability.Observer
	tracerProvider trace.TracerProvider
}

// Option configures New and Handler.
type Option func(*options)

// WithLogger sets the logger used for failed scrapes. Handler logs nothing
// by default; New uses the logger it is given.
func WithLogger(l logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithObserver reports every scrape to obs as an operation with component
// "exporter" and operation "scrape".
func WithObserver(obs observability.Observer) Option {
	return func(o *options) { o.observer = obs }
}

// WithTracerProvider starts a span for every scrape using a tracer from tp.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracerProvider = tp }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.log == nil {
		o.log = logger.NewNop()
	}
	if o.observer == nil {
		o.observer = observability.NewNoOpObserver()
	}
	if o.tracerProvider == nil {
		o.tracerProvider = noop.NewTracerProvider()
	}
	return o
}

type handler struct {
	reg      *registry.Registry
	log      logger.Logger
	observer observability.Observer
	tracer   trace.Tracer

	bufs sync.Pool
}

// Handler returns an http.Handler that answers GET and HEAD requests with
// the OpenMetrics text exposition of reg.
//
// The registry is encoded into a buffer before anything is written, so a
// failed encode is answered with 500 instead of a truncated body. Other
// methods get 405.
//
// Example:
//
//	mux := http.NewServeMux()
//	mux.Handle("/metrics", exporter.Handler(reg, exporter.WithLogger(log)))
func Handler(reg *registry.Registry, opts ...Option) http.Handler {
	o := buildOptions(opts)
	return &handler{
		reg:      reg,
		log:      o.log,
		observer: o.observer,
		tracer:   o.tracerProvider.Tracer(tracerName),
		bufs: sync.Pool{
			New: func() any { return new(bytes.Buffer) },
		},
	}
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	// a scraper sending traceparent gets the scrape span in its own trace
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
	ctx, span := h.tracer.Start(ctx, "metrics.scrape",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(attribute.String("http.route", r.URL.Path)),
	)
	defer span.End()

	buf := h.bufs.Get().(*bytes.Buffer)
	buf.Reset()
	defer h.bufs.Put(buf)

	start := time.Now()
	err := exposition.Encode(buf, h.reg)
	h.observer.ObserveOperation(observability.OperationContext{
		Component: "exporter",
		Operation: "scrape",
		Resource:  r.URL.Path,
		Duration:  time.Since(start),
		Error:     err,
		Size:      int64(buf.Len()),
	})

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "encode metrics")
		h.log.ErrorWithContext(ctx, "Failed to encode metrics", err, map[string]interface{}{
			"path": r.URL.Path,
		})
		http.Error(w, "failed to encode metrics", http.StatusInternalServerError)
		return
	}
	span.SetAttributes(attribute.Int("metrics.size", buf.Len()))

	w.Header().Set("Content-Type", exposition.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.log.WarnWithContext(ctx, "Failed to write metrics response", err, nil)
	}
}
