package registry

import (
	"fmt"

	"github.com/aalemi-dev/openmetrics/metrics"
)

// collectedFamily is the group of collector samples sharing one name.
type collectedFamily struct {
	typ     metrics.Type
	samples []Sample
}

func (f *collectedFamily) Type() metrics.Type { return f.typ }

func (f *collectedFamily) Collect(w metrics.SampleWriter) error {
	for _, s := range f.samples {
		labels := s.Labels
		if labels == nil {
			labels = metrics.NoLabels{}
		}
		if err := s.Metric.Encode(labels, w); err != nil {
			return err
		}
	}
	return nil
}

// walkCollector runs c and passes its samples to fn, grouped by name in
// first-seen order. seen holds the names already taken in this walk and
// receives the collector's names.
func (r *Registry) walkCollector(c Collector, fn func(Entry) error, seen map[string]struct{}) error {
	samples, err := c.Collect()
	if err != nil {
		r.log.Error("Collector failed", err, map[string]interface{}{
			"prefix": r.prefix,
		})
		return fmt.Errorf("collector under %q: %w", r.prefix, err)
	}

	var order []string
	groups := make(map[string]*collectedFamily)
	descs := make(map[string]Descriptor)
	for _, s := range samples {
		if s.Metric == nil {
			return fmt.Errorf("%w: collector sample %q", ErrNilMetric, s.Descriptor.Name)
		}
		desc, err := qualify(r.prefix, s.Descriptor.Name, s.Descriptor.Help, s.Descriptor.Unit)
		if err != nil {
			return err
		}
		g, ok := groups[desc.Name]
		if !ok {
			if _, taken := seen[desc.Name]; taken {
				r.log.Warn("Collector metric name already taken", nil, map[string]interface{}{
					"name": desc.Name,
				})
				return fmt.Errorf("%w: collector sample %q", ErrDuplicateName, desc.Name)
			}
			seen[desc.Name] = struct{}{}
			g = &collectedFamily{typ: s.Metric.Type()}
			groups[desc.Name] = g
			descs[desc.Name] = desc
			order = append(order, desc.Name)
		} else if g.typ != s.Metric.Type() {
			return fmt.Errorf("%w: %q is both %s and %s", ErrTypeMismatch, desc.Name, g.typ, s.Metric.Type())
		}
		g.samples = append(g.samples, s)
	}

	for _, name := range order {
		if err := fn(Entry{Descriptor: descs[name], ConstLabels: r.labels, Metric: groups[name]}); err != nil {
			return err
		}
	}
	return nil
}
