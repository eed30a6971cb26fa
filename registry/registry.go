package registry

import (
	"fmt"

	"github.com/aalemi-dev/openmetrics/metrics"
)

type registerConfig struct {
	unit Unit
}

// RegisterOption configures a single registration.
type RegisterOption func(*registerConfig)

// WithUnit sets the unit of the metric. The unit is appended to the name
// unless the name already ends with it, and exposed on a UNIT line.
func WithUnit(u Unit) RegisterOption {
	return func(cfg *registerConfig) { cfg.unit = u }
}

// Register adds metric under name, prefixed with the registry's prefix.
// metric is typically a *metrics.Family or a single metric such as a
// *metrics.Counter.
//
// Register fails with ErrInvalidName if the qualified name is malformed and
// with ErrDuplicateName if it is already taken anywhere in the tree. The
// registry is left unchanged on failure.
//
// Parameters:
//   - name: The metric name without prefix, unit or type suffix
//   - help: Help text; a trailing period is added when missing
//   - metric: The metric or family to expose
//   - opts: WithUnit
//
// Returns:
//   - error: ErrNilMetric, ErrInvalidName or ErrDuplicateName
//
// Example:
//
//	requests := metrics.NewCounterFamily[requestLabels, uint64]()
//	if err := reg.Register("http_requests", "Number of HTTP requests received", requests); err != nil {
//		return err
//	}
func (r *Registry) Register(name, help string, metric metrics.Collectable, opts ...RegisterOption) error {
	if metric == nil {
		return fmt.Errorf("%w: %q", ErrNilMetric, name)
	}
	var cfg registerConfig
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	desc, err := qualify(r.prefix, name, help, cfg.unit)
	if err != nil {
		return err
	}

	r.tree.mu.Lock()
	if _, exists := r.tree.names[desc.Name]; exists {
		r.tree.mu.Unlock()
		r.log.Warn("Metric name already registered", nil, map[string]interface{}{
			"name": desc.Name,
		})
		return fmt.Errorf("%w: %q", ErrDuplicateName, desc.Name)
	}
	r.tree.names[desc.Name] = struct{}{}
	r.nodes = append(r.nodes, node{entry: &entry{desc: desc, metric: metric}})
	r.tree.mu.Unlock()

	r.log.Debug("Registered metric", nil, map[string]interface{}{
		"name": desc.Name,
		"type": metric.Type().String(),
	})
	return nil
}

// Registration is one metric for RegisterAll.
type Registration struct {
	Name    string
	Help    string
	Metric  metrics.Collectable
	Options []RegisterOption
}

// RegisterAll registers every metric in regs, or none of them.
//
// The names are checked against the tree and against each other under one
// lock, so a failure leaves the registry exactly as it was and the call can
// be retried once the conflict is resolved.
//
// Parameters:
//   - regs: the metrics to add, in the order they are exposed
//
// Returns:
//   - error: ErrNilMetric, ErrInvalidName or ErrDuplicateName for the first
//     offending registration
func (r *Registry) RegisterAll(regs ...Registration) error {
	descs := make([]Descriptor, len(regs))
	for i, reg := range regs {
		if reg.Metric == nil {
			return fmt.Errorf("%w: %q", ErrNilMetric, reg.Name)
		}
		var cfg registerConfig
		for _, o := range reg.Options {
			if o != nil {
				o(&cfg)
			}
		}
		desc, err := qualify(r.prefix, reg.Name, reg.Help, cfg.unit)
		if err != nil {
			return err
		}
		descs[i] = desc
	}

	r.tree.mu.Lock()
	batch := make(map[string]struct{}, len(descs))
	for _, desc := range descs {
		_, exists := r.tree.names[desc.Name]
		_, repeated := batch[desc.Name]
		if exists || repeated {
			r.tree.mu.Unlock()
			r.log.Warn("Metric name already registered", nil, map[string]interface{}{
				"name": desc.Name,
			})
			return fmt.Errorf("%w: %q", ErrDuplicateName, desc.Name)
		}
		batch[desc.Name] = struct{}{}
	}
	for i, desc := range descs {
		r.tree.names[desc.Name] = struct{}{}
		r.nodes = append(r.nodes, node{entry: &entry{desc: desc, metric: regs[i].Metric}})
	}
	r.tree.mu.Unlock()

	for i, desc := range descs {
		r.log.Debug("Registered metric", nil, map[string]interface{}{
			"name": desc.Name,
			"type": regs[i].Metric.Type().String(),
		})
	}
	return nil
}

// MustRegister is like Register but panics on error. It is meant for
// startup code where a conflict is a programming error.
func (r *Registry) MustRegister(name, help string, metric metrics.Collectable, opts ...RegisterOption) {
	if err := r.Register(name, help, metric, opts...); err != nil {
		panic(err)
	}
}

// RegisterCollector adds a collector that is called on every encode pass.
// The names it reports are prefixed like registered names and are checked
// for conflicts while walking, since they are only known then.
//
// Parameters:
//   - c: The collector to call
//
// Returns:
//   - error: ErrNilCollector when c is nil
func (r *Registry) RegisterCollector(c Collector) error {
	if c == nil {
		return ErrNilCollector
	}
	r.tree.mu.Lock()
	r.nodes = append(r.nodes, node{collector: c})
	r.tree.mu.Unlock()

	r.log.Debug("Registered collector", nil, map[string]interface{}{
		"prefix": r.prefix,
	})
	return nil
}

// SubRegistry returns a child registry whose registrations are all
// prefixed with prefix (after the parent's own prefix).
//
// Example:
//
//	db := reg.SubRegistry("postgres")
//	db.MustRegister("queries", "Queries executed", queries) // postgres_queries
func (r *Registry) SubRegistry(prefix string) *Registry {
	return r.SubRegistryWithLabels(prefix)
}

// SubRegistryWithLabels is like SubRegistry and also adds constant labels
// to every sample of the child, after the parent's labels.
//
// Parameters:
//   - prefix: Joined to the parent's prefix with "_"; empty keeps it as is
//   - labels: Constant labels rendered before each sample's own labels
//
// Returns:
//   - *Registry: the child, exposed at the position it was created in
//
// Example:
//
//	primary := reg.SubRegistryWithLabels("db", metrics.Label{Name: "pool", Value: "primary"})
func (r *Registry) SubRegistryWithLabels(prefix string, labels ...metrics.Label) *Registry {
	merged := make([]metrics.Label, 0, len(r.labels)+len(labels))
	merged = append(merged, r.labels...)
	merged = append(merged, labels...)

	sub := &Registry{
		tree:   r.tree,
		prefix: joinName(r.prefix, prefix),
		labels: merged,
		log:    r.log,
	}
	r.tree.mu.Lock()
	r.nodes = append(r.nodes, node{sub: sub})
	r.tree.mu.Unlock()
	return sub
}

// Prefix returns the fully qualified prefix of the registry.
func (r *Registry) Prefix() string { return r.prefix }

// Lookup returns the metric registered under the fully qualified name,
// searching the whole subtree rooted at r. Collectors are not consulted.
//
// Parameters:
//   - fqName: The name as exposed, with prefix and unit but no type suffix
//
// Returns:
//   - metrics.Collectable: the registered metric
//   - bool: false when no metric is registered under fqName
func (r *Registry) Lookup(fqName string) (metrics.Collectable, bool) {
	for _, n := range r.snapshot() {
		switch {
		case n.entry != nil && n.entry.desc.Name == fqName:
			return n.entry.metric, true
		case n.sub != nil:
			if m, ok := n.sub.Lookup(fqName); ok {
				return m, true
			}
		}
	}
	return nil, false
}

// Walk calls fn for every metric family in the tree, in registration order,
// descending into sub-registries where they were created. Collectors are
// invoked as they are reached and each of their metric families is passed
// to fn. Walk stops at and returns the first error.
//
// A collector family whose name is registered in the tree, or was already
// produced by another collector during the same walk, stops the walk with
// ErrDuplicateName.
//
// The registry lock is held only to copy each node list, so registrations
// made during a walk never wait for it.
//
// Parameters:
//   - fn: called once per metric family; a non-nil error ends the walk
//
// Returns:
//   - error: the first error from fn, a collector or a name conflict
func (r *Registry) Walk(fn func(Entry) error) error {
	return r.walk(fn, r.tree.namesSnapshot())
}

func (r *Registry) walk(fn func(Entry) error, seen map[string]struct{}) error {
	for _, n := range r.snapshot() {
		var err error
		switch {
		case n.entry != nil:
			err = fn(Entry{
				Descriptor:  n.entry.desc,
				ConstLabels: r.labels,
				Metric:      n.entry.metric,
			})
		case n.collector != nil:
			err = r.walkCollector(n.collector, fn, seen)
		case n.sub != nil:
			err = n.sub.walk(fn, seen)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) snapshot() []node {
	r.tree.mu.RLock()
	defer r.tree.mu.RUnlock()
	return r.nodes
}
