package registry

import "github.com/aalemi-dev/openmetrics/metrics"

// Collector produces metrics on demand. Its Collect method is called once
// per encode pass, synchronously, for values that are cheaper to compute at
// scrape time than to keep up to date (queue lengths read from a client,
// cache statistics, etc.).
//
// Samples sharing a Descriptor.Name are grouped into one metric family in
// the order they first appear. Their names are qualified by the prefix of
// the registry the collector was registered on.
type Collector interface {
	Collect() ([]Sample, error)
}

// CollectorFunc adapts a function to the Collector interface.
//
// Example:
//
//	reg.RegisterCollector(registry.CollectorFunc(func() ([]registry.Sample, error) {
//		return []registry.Sample{{
//			Descriptor: registry.Descriptor{Name: "queue_depth", Help: "Jobs waiting"},
//			Metric:     metrics.NewConstGauge(int64(q.Len())),
//		}}, nil
//	}))
type CollectorFunc func() ([]Sample, error)

// Collect calls f.
func (f CollectorFunc) Collect() ([]Sample, error) { return f() }

// Sample is one series produced by a Collector. A nil Labels means the
// series has no labels of its own.
type Sample struct {
	Descriptor Descriptor
	Labels     metrics.LabelSet
	Metric     metrics.Metric
}

// Entry is one metric family as seen by Walk.
type Entry struct {
	// Descriptor carries the fully qualified name.
	Descriptor Descriptor

	// ConstLabels are the labels of the registry the family belongs to,
	// rendered before the metric's own labels.
	ConstLabels []metrics.Label

	// Metric enumerates the family's samples.
	Metric metrics.Collectable
}
