package exposition_test

import (
	"bytes"
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aalemi-dev/openmetrics/exposition"
	"github.com/aalemi-dev/openmetrics/metrics"
	"github.com/aalemi-dev/openmetrics/registry"
)

type requestLabels struct {
	Method string
	Path   string
}

func (l requestLabels) EncodeLabels(enc *metrics.LabelEncoder) error {
	if err := enc.String("method", l.Method); err != nil {
		return err
	}
	return enc.String("path", l.Path)
}

func encode(t *testing.T, reg *registry.Registry) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, exposition.Encode(&buf, reg))
	return buf.String()
}

func TestEncode_CounterFamily(t *testing.T) {
	t.Parallel()
	reg := registry.New()
	requests := metrics.NewCounterFamily[requestLabels, uint64]()
	reg.MustRegister("http_requests", "Number of HTTP requests received", requests)

	require.NoError(t, requests.GetOrCreate(requestLabels{Method: "GET", Path: "/metrics"}).Inc())

	want := "# HELP http_requests Number of HTTP requests received.\n" +
		"# TYPE http_requests counter\n" +
		"http_requests_total{method=\"GET\",path=\"/metrics\"} 1\n" +
		"# EOF\n"
	assert.Equal(t, want, encode(t, reg))
}

func TestEncode_EmptyRegistry(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "# EOF\n", encode(t, registry.New()))
	assert.Equal(t, "# EOF\n", encode(t, nil))

	// an empty family still announces itself
	reg := registry.New()
	reg.MustRegister("idle", "", metrics.NewGaugeFamily[metrics.Labels, int64]())
	assert.Equal(t, "# HELP idle .\n# TYPE idle gauge\n# EOF\n", encode(t, reg))
}

func TestEncode_EmptyHelpStillHasHelpLine(t *testing.T) {
	t.Parallel()
	reg := registry.New()
	reg.MustRegister("idle", "", metrics.NewGauge[int64]())

	assert.Equal(t, "# HELP idle .\n# TYPE idle gauge\nidle 0\n# EOF\n", encode(t, reg))
}

func TestEncode_Gauge(t *testing.T) {
	t.Parallel()
	reg := registry.New()
	temp := metrics.NewGauge[float64]()
	temp.Set(-3.5)
	reg.MustRegister("room_temperature", "Temperature", temp, registry.WithUnit(registry.UnitCelsius))
	conns := metrics.NewGauge[int64]()
	conns.Add(12)
	reg.MustRegister("connections", "Open connections", conns)

	want := "# HELP room_temperature_celsius Temperature.\n" +
		"# TYPE room_temperature_celsius gauge\n" +
		"# UNIT room_temperature_celsius celsius\n" +
		"room_temperature_celsius -3.5\n" +
		"# HELP connections Open connections.\n" +
		"# TYPE connections gauge\n" +
		"connections 12\n" +
		"# EOF\n"
	assert.Equal(t, want, encode(t, reg))
}

func TestEncode_Histogram(t *testing.T) {
	t.Parallel()
	reg := registry.New()
	latency, err := metrics.NewHistogramFamily[metrics.Label]([]float64{0.1, 0.5, 1})
	require.NoError(t, err)
	reg.MustRegister("request_duration", "Request latency", latency, registry.WithUnit(registry.UnitSeconds))

	h := latency.GetOrCreate(metrics.Label{Name: "route", Value: "/"})
	for _, v := range []float64{0.0625, 0.25, 0.5, 2} {
		h.Observe(v)
	}

	want := "# HELP request_duration_seconds Request latency.\n" +
		"# TYPE request_duration_seconds histogram\n" +
		"# UNIT request_duration_seconds seconds\n" +
		"request_duration_seconds_bucket{route=\"/\",le=\"0.1\"} 1\n" +
		"request_duration_seconds_bucket{route=\"/\",le=\"0.5\"} 3\n" +
		"request_duration_seconds_bucket{route=\"/\",le=\"1.0\"} 3\n" +
		"request_duration_seconds_bucket{route=\"/\",le=\"+Inf\"} 4\n" +
		"request_duration_seconds_sum{route=\"/\"} 2.8125\n" +
		"request_duration_seconds_count{route=\"/\"} 4\n" +
		"# EOF\n"
	assert.Equal(t, want, encode(t, reg))
}

func TestEncode_UnlabelledHistogram(t *testing.T) {
	t.Parallel()
	reg := registry.New()
	h, err := metrics.NewHistogram([]float64{1})
	require.NoError(t, err)
	h.Observe(1)
	reg.MustRegister("size", "", h)

	want := "# HELP size .\n" +
		"# TYPE size histogram\n" +
		"size_bucket{le=\"1.0\"} 1\n" +
		"size_bucket{le=\"+Inf\"} 1\n" +
		"size_sum 1.0\n" +
		"size_count 1\n" +
		"# EOF\n"
	assert.Equal(t, want, encode(t, reg))
}

func TestEncode_LabelEscapingRoundTrips(t *testing.T) {
	t.Parallel()
	reg := registry.New()
	errs := metrics.NewCounterFamily[metrics.Label, uint64]()
	reg.MustRegister("errors", "Errors by message", errs)

	original := "say \"hi\"\nC:\\temp"
	require.NoError(t, errs.GetOrCreate(metrics.Label{Name: "msg", Value: original}).Inc())

	out := encode(t, reg)
	assert.Contains(t, out, `errors_total{msg="say \"hi\"\nC:\\temp"} 1`+"\n")

	// the quoted value decodes back with Go string literal rules, which
	// share the three escapes
	start := strings.Index(out, `msg="`) + len(`msg=`)
	end := strings.Index(out, "} 1")
	decoded, err := strconv.Unquote(out[start:end])
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestEncode_HelpEscaping(t *testing.T) {
	t.Parallel()
	reg := registry.New()
	reg.MustRegister("quoted", "Uses \"quotes\" and a \\ on\ntwo lines", metrics.NewCounter[uint64]())

	out := encode(t, reg)
	assert.Contains(t, out, "# HELP quoted Uses \"quotes\" and a \\\\ on\\ntwo lines.\n")
}

func TestEncode_FloatFormatting(t *testing.T) {
	t.Parallel()
	cases := map[float64]string{
		1:            "1.0",
		0.25:         "0.25",
		-2:           "-2.0",
		1e21:         "1e+21",
		math.Inf(1):  "+Inf",
		math.Inf(-1): "-Inf",
		math.NaN():   "NaN",
	}
	for v, want := range cases {
		reg := registry.New()
		g := metrics.NewGauge[float64]()
		g.Set(v)
		reg.MustRegister("g", "", g)
		assert.Equal(t, "# HELP g .\n# TYPE g gauge\ng "+want+"\n# EOF\n", encode(t, reg))
	}
}

func TestEncode_ConstLabelsComeFirst(t *testing.T) {
	t.Parallel()
	reg := registry.New(registry.WithLabels(metrics.Label{Name: "service", Value: "api"}))
	db := reg.SubRegistryWithLabels("db", metrics.Label{Name: "pool", Value: "primary"})

	queries := metrics.NewCounterFamily[metrics.Label, uint64]()
	db.MustRegister("queries", "Queries", queries)
	require.NoError(t, queries.GetOrCreate(metrics.Label{Name: "op", Value: "select"}).Add(4))

	up := metrics.NewGauge[int64]()
	up.Set(1)
	reg.MustRegister("up", "", up)

	want := "# HELP db_queries Queries.\n" +
		"# TYPE db_queries counter\n" +
		"db_queries_total{service=\"api\",pool=\"primary\",op=\"select\"} 4\n" +
		"# HELP up .\n" +
		"# TYPE up gauge\n" +
		"up{service=\"api\"} 1\n" +
		"# EOF\n"
	assert.Equal(t, want, encode(t, reg))
}

func TestEncode_Collector(t *testing.T) {
	t.Parallel()
	reg := registry.New()
	jobs := reg.SubRegistry("jobs")
	require.NoError(t, jobs.RegisterCollector(registry.CollectorFunc(func() ([]registry.Sample, error) {
		desc := registry.Descriptor{Name: "processed", Help: "Jobs processed"}
		return []registry.Sample{
			{Descriptor: desc, Labels: metrics.Label{Name: "queue", Value: "mail"}, Metric: metrics.NewConstCounter(uint64(7))},
			{Descriptor: desc, Labels: metrics.Label{Name: "queue", Value: "sms"}, Metric: metrics.NewConstCounter(uint64(2))},
		}, nil
	})))

	want := "# HELP jobs_processed Jobs processed.\n" +
		"# TYPE jobs_processed counter\n" +
		"jobs_processed_total{queue=\"mail\"} 7\n" +
		"jobs_processed_total{queue=\"sms\"} 2\n" +
		"# EOF\n"
	assert.Equal(t, want, encode(t, reg))
}

func TestEncode_Deterministic(t *testing.T) {
	t.Parallel()
	reg := registry.New()
	requests := metrics.NewCounterFamily[requestLabels, uint64]()
	reg.MustRegister("http_requests", "Requests", requests)
	for _, path := range []string{"/z", "/a", "/m", "/b"} {
		require.NoError(t, requests.GetOrCreate(requestLabels{Method: "GET", Path: path}).Inc())
	}
	h, err := metrics.NewHistogram(metrics.DefBuckets)
	require.NoError(t, err)
	h.Observe(0.2)
	reg.SubRegistry("sub").MustRegister("latency", "Latency", h)

	first := encode(t, reg)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, encode(t, reg))
	}
	// insertion order, not sorted
	assert.Less(t, strings.Index(first, `path="/z"`), strings.Index(first, `path="/a"`))
}

type failingWriter struct {
	err error
}

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func TestEncode_SinkFailure(t *testing.T) {
	t.Parallel()
	sinkErr := errors.New("sink full")

	err := exposition.Encode(failingWriter{err: sinkErr}, registry.New())
	assert.ErrorIs(t, err, sinkErr)

	// large enough to overflow the write buffer mid-walk
	reg := registry.New()
	f := metrics.NewGaugeFamily[metrics.Labels, int64]()
	reg.MustRegister("series", "Many series", f)
	for i := 0; i < 1000; i++ {
		f.GetOrCreate(metrics.MustLabels("id", strconv.Itoa(i))).Set(int64(i))
	}
	err = exposition.Encode(failingWriter{err: sinkErr}, reg)
	assert.ErrorIs(t, err, sinkErr)
}

type badLabels struct{}

func (badLabels) EncodeLabels(enc *metrics.LabelEncoder) error {
	return enc.String(metrics.BucketLabel, "x")
}

func TestEncode_LabelErrorAborts(t *testing.T) {
	t.Parallel()
	reg := registry.New()
	f := metrics.NewCounterFamily[badLabels, uint64]()
	f.GetOrCreate(badLabels{})
	reg.MustRegister("bad", "help", f)

	var buf bytes.Buffer
	err := exposition.Encode(&buf, reg)
	assert.ErrorIs(t, err, metrics.ErrReservedLabelName)
	assert.NotContains(t, buf.String(), "# EOF")
}

func TestEncode_CollectorErrorAborts(t *testing.T) {
	t.Parallel()
	reg := registry.New()
	boom := errors.New("boom")
	require.NoError(t, reg.RegisterCollector(registry.CollectorFunc(func() ([]registry.Sample, error) {
		return nil, boom
	})))

	var buf bytes.Buffer
	assert.ErrorIs(t, exposition.Encode(&buf, reg), boom)
}

type oddType struct{}

func (oddType) Type() metrics.Type                  { return metrics.Type(42) }
func (oddType) Collect(w metrics.SampleWriter) error { return nil }

func TestEncode_CollectorNameCollisionAborts(t *testing.T) {
	t.Parallel()
	reg := registry.New()
	reg.MustRegister("queue_depth", "Depth", metrics.NewGauge[int64]())
	depth := registry.CollectorFunc(func() ([]registry.Sample, error) {
		return []registry.Sample{
			{Descriptor: registry.Descriptor{Name: "queue_depth", Help: "Depth"}, Metric: metrics.NewConstCounter(uint64(3))},
		}, nil
	})
	require.NoError(t, reg.RegisterCollector(depth))
	require.NoError(t, reg.RegisterCollector(depth))

	var buf bytes.Buffer
	err := exposition.Encode(&buf, reg)
	require.ErrorIs(t, err, registry.ErrDuplicateName)
	assert.NotContains(t, buf.String(), "queue_depth_total")
	assert.NotContains(t, buf.String(), "# EOF")
}

func TestEncode_UnknownTypeRejected(t *testing.T) {
	t.Parallel()
	reg := registry.New()
	reg.MustRegister("odd", "help", oddType{})

	var buf bytes.Buffer
	assert.ErrorIs(t, exposition.Encode(&buf, reg), exposition.ErrUnknownType)
}
