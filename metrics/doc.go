// Package metrics provides the metric types applications update on their
// hot path: counters, gauges and histograms, and the Family type that maps
// a label set to a lazily created metric.
//
// Metrics hold only their current value. They are read by the exposition
// encoder at scrape time through the Metric and Collectable interfaces and
// never do any I/O themselves.
//
// # Architecture
//
//   - Cell: an atomic integer or float slot. Every metric stores its state in cells.
//   - Counter, Gauge, Histogram: small typed APIs over one or more cells.
//   - LabelSet: any type that can write its ordered (name, value) pairs to a LabelEncoder.
//   - Family: a concurrent map from a LabelSet value to a metric.
//
// All mutations are lock-free. Float cells add through a compare-and-swap
// loop on the value's bit pattern, which may retry under contention but
// never loses an update.
//
// # Counters
//
// Counters only go up. Add rejects negative deltas with ErrNegativeDelta
// and leaves the value as it was:
//
//	requests := metrics.NewCounter[uint64]()
//	_ = requests.Inc()
//	if err := requests.Add(3); err != nil {
//		// never happens for uint64
//	}
//
// What happens when a counter runs past the range of its cell is chosen per
// counter with WithOverflowPolicy. OverflowWrap is the default.
//
// # Gauges
//
//	inFlight := metrics.NewGauge[int64]()
//	inFlight.Inc()
//	defer inFlight.Dec()
//
// # Histograms
//
// Bucket bounds are fixed at construction and must be strictly increasing:
//
//	latency, err := metrics.NewHistogram(metrics.ExponentialBuckets(0.001, 2, 12))
//	if err != nil {
//		return err
//	}
//	start := time.Now()
//	// ... handle request ...
//	latency.ObserveSince(start)
//
// # Families and label sets
//
// A label set is a plain comparable value, typically a struct:
//
//	type requestLabels struct {
//		Method string
//		Path   string
//	}
//
//	func (l requestLabels) EncodeLabels(enc *metrics.LabelEncoder) error {
//		if err := enc.String("method", l.Method); err != nil {
//			return err
//		}
//		return enc.String("path", l.Path)
//	}
//
//	requests := metrics.NewCounterFamily[requestLabels, uint64]()
//	_ = requests.GetOrCreate(requestLabels{Method: "GET", Path: "/metrics"}).Inc()
//
// Label names only known at runtime can use Labels:
//
//	requests := metrics.NewCounterFamily[metrics.Labels, uint64]()
//	_ = requests.GetOrCreate(metrics.MustLabels("method", "GET")).Inc()
//
// GetOrCreate is safe for concurrent use. Metrics it returns can be cached
// by the caller and updated without going through the family again.
package metrics
