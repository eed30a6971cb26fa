package metrics

// Metric is implemented by every metric type that can appear in a Family or
// be registered on its own: Counter, Gauge, Histogram and the const
// variants.
//
// Encode reports the metric's current samples to w, tagged with labels.
// It is called only at scrape time, never on the hot path.
type Metric interface {
	// Type reports the OpenMetrics type of the metric.
	Type() Type

	// Encode writes the current value(s) of the metric to w.
	Encode(labels LabelSet, w SampleWriter) error
}

// Collectable is anything a registry can hold as an entry: a Family, or a
// single unlabelled metric.
//
// Collect enumerates every (label set, metric) pair currently held and
// forwards them to w.
type Collectable interface {
	// Type reports the OpenMetrics type shared by every sample collected.
	Type() Type

	// Collect writes all current samples to w.
	Collect(w SampleWriter) error
}

// SampleWriter receives the samples of one metric family during encoding.
// The exposition encoder implements it; tests may implement it to inspect
// values.
//
// Each method receives the label set of one series. Implementations return
// the first error they hit, which aborts the enumeration.
type SampleWriter interface {
	// WriteCounter records the value of one counter series.
	WriteCounter(labels LabelSet, v Value) error

	// WriteGauge records the value of one gauge series.
	WriteGauge(labels LabelSet, v Value) error

	// WriteHistogram records the buckets, sum and count of one histogram series.
	WriteHistogram(labels LabelSet, s HistogramSnapshot) error
}
