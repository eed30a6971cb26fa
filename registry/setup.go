package registry

import (
	"sync"

	"github.com/aalemi-dev/openmetrics/logger"
	"github.com/aalemi-dev/openmetrics/metrics"
)

// Registry is a tree of named metric families, bare metrics and collectors.
// It is built once at startup, read by the encoder on every scrape, and can
// be extended at any time: registration is safe to call concurrently with
// scrapes and with metric updates.
//
// Sub-registries created with SubRegistry share the namespace of the tree
// they belong to, so a fully qualified name can be registered only once
// across the whole tree.
//
// A Registry is passed around explicitly; there is no global instance.
type Registry struct {
	tree   *tree
	prefix string
	labels []metrics.Label
	log    logger.Logger

	// nodes is guarded by tree.mu and only ever appended to.
	nodes []node
}

// tree is the state shared by a root registry and all its sub-registries.
type tree struct {
	mu    sync.RWMutex
	names map[string]struct{}
}

// namesSnapshot copies the registered names.
func (t *tree) namesSnapshot() map[string]struct{} {
	t.mu.RLock()
	defer t.mu.RUnlock()
	names := make(map[string]struct{}, len(t.names))
	for name := range t.names {
		names[name] = struct{}{}
	}
	return names
}

// node is one child of a registry, in registration order. Exactly one
// field is set.
type node struct {
	entry     *entry
	collector Collector
	sub       *Registry
}

type entry struct {
	desc   Descriptor
	metric metrics.Collectable
}

type config struct {
	prefix string
	labels []metrics.Label
	log    logger.Logger
}

// Option configures a Registry built by New.
type Option func(*config)

// WithPrefix prefixes every name registered on the registry, joined with
// an underscore.
func WithPrefix(prefix string) Option {
	return func(cfg *config) { cfg.prefix = prefix }
}

// WithLabels adds constant labels to every sample exposed by the registry
// and its sub-registries, e.g. the name of the service.
func WithLabels(labels ...metrics.Label) Option {
	return func(cfg *config) { cfg.labels = append(cfg.labels, labels...) }
}

// WithLogger sets the logger used to report registrations and conflicts.
// Registries log nothing by default.
func WithLogger(l logger.Logger) Option {
	return func(cfg *config) { cfg.log = l }
}

// New returns an empty root registry.
//
// Parameters:
//   - opts: WithPrefix, WithLabels and WithLogger
//
// Returns:
//   - *Registry: a registry with its own namespace, ready for registrations
//
// Example:
//
//	reg := registry.New(
//		registry.WithPrefix("search"),
//		registry.WithLabels(metrics.Label{Name: "service", Value: "indexer"}),
//	)
func New(opts ...Option) *Registry {
	var cfg config
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	if cfg.log == nil {
		cfg.log = logger.NewNop()
	}
	return &Registry{
		tree:   &tree{names: make(map[string]struct{})},
		prefix: cfg.prefix,
		labels: cfg.labels,
		log:    cfg.log,
	}
}
