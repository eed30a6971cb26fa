package metrics

import "sync"

// Family is a set of metrics of one type, each identified by a distinct
// label set value. Metrics are created lazily on first access through
// GetOrCreate and live as long as the Family; they are never removed.
//
// L is any comparable type implementing LabelSet, usually a small struct
// defined next to the code it instruments. Lookups by label value go
// through a read lock; only the first access for a new label value takes
// the write lock.
type Family[L interface {
	comparable
	LabelSet
}, M Metric] struct {
	mu      sync.RWMutex
	metrics map[L]M
	// entries keeps insertion order for deterministic encoding. It is only
	// ever appended to.
	entries []familyEntry[L, M]

	newMetric func() M
	typ       Type
}

type familyEntry[L any, M any] struct {
	labels L
	metric M
}

// NewFamily returns an empty family whose metrics are built by newMetric.
// newMetric is called once up front to learn the metric type.
//
// Example:
//
//	latency := metrics.NewFamily[requestLabels](func() *metrics.Histogram {
//		h, _ := metrics.NewHistogram(metrics.DefBuckets)
//		return h
//	})
func NewFamily[L interface {
	comparable
	LabelSet
}, M Metric](newMetric func() M) *Family[L, M] {
	return &Family[L, M]{
		metrics:   make(map[L]M),
		newMetric: newMetric,
		typ:       newMetric().Type(),
	}
}

// NewCounterFamily returns a family of counters built with opts.
func NewCounterFamily[L interface {
	comparable
	LabelSet
}, N Number](opts ...CounterOption) *Family[L, *Counter[N]] {
	return NewFamily[L](func() *Counter[N] { return NewCounter[N](opts...) })
}

// NewGaugeFamily returns a family of gauges.
func NewGaugeFamily[L interface {
	comparable
	LabelSet
}, N Number]() *Family[L, *Gauge[N]] {
	return NewFamily[L](NewGauge[N])
}

// NewHistogramFamily returns a family of histograms sharing the given
// bucket bounds. The bounds are validated once, here.
func NewHistogramFamily[L interface {
	comparable
	LabelSet
}](buckets []float64) (*Family[L, *Histogram], error) {
	bounds, err := validateBuckets(buckets)
	if err != nil {
		return nil, err
	}
	return NewFamily[L](func() *Histogram {
		return newHistogram(bounds)
	}), nil
}

// GetOrCreate returns the metric for labels, creating it if this is the
// first time labels is seen. Concurrent calls with equal label values all
// get the same metric.
//
// The returned metric can be kept and mutated directly; callers on hot
// paths should cache it instead of looking it up every time.
//
// Parameters:
//   - labels: The label values identifying the series
//
// Returns:
//   - M: the single metric for labels, created on first use
//
// Example:
//
//	_ = requests.GetOrCreate(requestLabels{Method: "GET", Path: "/"}).Inc()
func (f *Family[L, M]) GetOrCreate(labels L) M {
	f.mu.RLock()
	m, ok := f.metrics[labels]
	f.mu.RUnlock()
	if ok {
		return m
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := f.metrics[labels]; ok {
		return m
	}
	m = f.newMetric()
	f.metrics[labels] = m
	f.entries = append(f.entries, familyEntry[L, M]{labels: labels, metric: m})
	return m
}

// Get returns the metric for labels if it has been created.
func (f *Family[L, M]) Get(labels L) (M, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	m, ok := f.metrics[labels]
	return m, ok
}

// Len returns the number of label sets in the family.
func (f *Family[L, M]) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.entries)
}

// Type reports the type of the family's metrics.
func (f *Family[L, M]) Type() Type { return f.typ }

// Collect writes every metric in the family to w, in the order the label
// sets were first seen.
//
// The read lock is held only to take a view of the entries. Entries are
// append-only, so metrics created while Collect runs are simply left out.
func (f *Family[L, M]) Collect(w SampleWriter) error {
	f.mu.RLock()
	entries := f.entries
	f.mu.RUnlock()

	for _, e := range entries {
		if err := e.metric.Encode(e.labels, w); err != nil {
			return err
		}
	}
	return nil
}
