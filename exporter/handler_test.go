package exporter_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/aalemi-dev/openmetrics/exporter"
	"github.com/aalemi-dev/openmetrics/exposition"
	"github.com/aalemi-dev/openmetrics/logger"
	"github.com/aalemi-dev/openmetrics/metrics"
	"github.com/aalemi-dev/openmetrics/observability"
	"github.com/aalemi-dev/openmetrics/registry"
	"github.com/aalemi-dev/openmetrics/tracer"
)

func scrape(t *testing.T, h http.Handler, method string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, "/metrics", nil))
	return rec
}

func TestHandler_ServesExposition(t *testing.T) {
	t.Parallel()
	reg := registry.New()
	requests := metrics.NewCounterFamily[metrics.Labels, uint64]()
	reg.MustRegister("http_requests", "Number of HTTP requests received", requests)
	require.NoError(t, requests.GetOrCreate(metrics.MustLabels("method", "GET", "path", "/metrics")).Inc())

	rec := scrape(t, exporter.Handler(reg), http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, exposition.ContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, "# HELP http_requests Number of HTTP requests received.\n"+
		"# TYPE http_requests counter\n"+
		"http_requests_total{method=\"GET\",path=\"/metrics\"} 1\n"+
		"# EOF\n", rec.Body.String())
	assert.Equal(t, "142", rec.Header().Get("Content-Length"))
}

func TestHandler_Head(t *testing.T) {
	t.Parallel()
	rec := scrape(t, exporter.Handler(registry.New()), http.MethodHead)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "6", rec.Header().Get("Content-Length"))
	assert.Empty(t, rec.Body.String())
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	t.Parallel()
	calls := 0
	h := exporter.Handler(registry.New(), exporter.WithObserver(observability.ObserverFunc(
		func(observability.OperationContext) { calls++ },
	)))

	for _, m := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		rec := scrape(t, h, m)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, m)
		assert.Equal(t, "GET, HEAD", rec.Header().Get("Allow"))
	}
	assert.Zero(t, calls)
}

func TestHandler_EncodeFailure(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zapcore.ErrorLevel)
	log := logger.NewFromZap(zap.New(core), false)

	boom := errors.New("backend unavailable")
	reg := registry.New()
	reg.MustRegister("ok", "Fine", metrics.NewGauge[int64]())
	require.NoError(t, reg.RegisterCollector(registry.CollectorFunc(func() ([]registry.Sample, error) {
		return nil, boom
	})))

	var observed observability.OperationContext
	h := exporter.Handler(reg,
		exporter.WithLogger(log),
		exporter.WithObserver(observability.ObserverFunc(func(ctx observability.OperationContext) {
			observed = ctx
		})),
	)
	rec := scrape(t, h, http.MethodGet)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "# TYPE ok")
	assert.ErrorIs(t, observed.Error, boom)

	entries := logs.FilterMessage("Failed to encode metrics").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "/metrics", entries[0].ContextMap()["path"])
}

func TestHandler_ObservesScrape(t *testing.T) {
	t.Parallel()
	reg := registry.New()
	obs, err := observability.NewMetricsObserver(reg.SubRegistry("exporter"))
	require.NoError(t, err)

	h := exporter.Handler(reg, exporter.WithObserver(obs))
	first := scrape(t, h, http.MethodGet)
	require.Equal(t, http.StatusOK, first.Code)

	// the first scrape shows up in the second
	second := scrape(t, h, http.MethodGet)
	body, err := io.ReadAll(second.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body),
		`exporter_operations_total{component="exporter",operation="scrape",status="success"} 1`+"\n")
	assert.True(t, strings.HasSuffix(string(body), "# EOF\n"))
}

func TestHandler_StartsSpanPerScrape(t *testing.T) {
	t.Parallel()
	rec := tracetest.NewSpanRecorder()
	client, err := tracer.NewClient(tracer.Config{ServiceName: "scrape-test"}, tracer.WithSpanProcessor(rec))
	require.NoError(t, err)
	defer func() { _ = client.Shutdown(context.Background()) }()

	h := exporter.Handler(registry.New(), exporter.WithTracerProvider(client.Provider()))

	// a scraper that is itself traced
	parentCtx, parent := client.StartSpan(context.Background(), "prometheus.scrape")
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	for k, v := range client.GetCarrier(parentCtx) {
		req.Header.Set(k, v)
	}
	h.ServeHTTP(httptest.NewRecorder(), req)
	parent.End()

	scrape(t, h, http.MethodGet)

	var scrapes []sdktrace.ReadOnlySpan
	for _, s := range rec.Ended() {
		if s.Name() == "metrics.scrape" {
			scrapes = append(scrapes, s)
		}
	}
	require.Len(t, scrapes, 2)
	assert.Equal(t, trace.SpanKindServer, scrapes[0].SpanKind())
	assert.Equal(t, parent.SpanContext().TraceID(), scrapes[0].SpanContext().TraceID())
	assert.True(t, scrapes[0].Parent().IsRemote())
	assert.False(t, scrapes[1].Parent().IsValid())
}

func TestNew_ServiceLabel(t *testing.T) {
	t.Parallel()
	exp := exporter.New(exporter.Config{
		ServiceName:               "checkout",
		SystemMetricsAddress:      exporter.Ptr(""),
		ApplicationMetricsAddress: exporter.Ptr(":0"),
		Path:                      "/custom",
	}, nil)
	g := metrics.NewGauge[int64]()
	g.Set(3)
	exp.Registry.MustRegister("carts", "Open carts", g)

	rec := httptest.NewRecorder()
	exp.ApplicationServer.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/custom", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "carts{service=\"checkout\"} 3\n")

	rec = httptest.NewRecorder()
	exp.ApplicationServer.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNew_SystemEndpoint(t *testing.T) {
	t.Parallel()
	exp := exporter.New(exporter.Config{
		ServiceName:               "checkout",
		SystemMetricsAddress:      exporter.Ptr(":0"),
		ApplicationMetricsAddress: exporter.Ptr(""),
	}, logger.NewNop())
	require.NotNil(t, exp.SystemRegistry)
	assert.Nil(t, exp.ApplicationServer)

	families, err := exp.SystemRegistry.Gather()
	require.NoError(t, err)
	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "go_goroutines")

	rec := httptest.NewRecorder()
	exp.SystemServer.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `go_goroutines{service="checkout"}`)
}
