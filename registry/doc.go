// Package registry composes metric families, bare metrics and collectors
// into a single tree that the exposition encoder walks at scrape time.
//
// # Overview
//
// An application builds one Registry at startup and passes it to the code
// that defines metrics. Sub-registries group related metrics under a common
// name prefix, and optionally common labels, without repeating them at each
// call site:
//
//	reg := registry.New()
//
//	requests := metrics.NewCounterFamily[requestLabels, uint64]()
//	reg.MustRegister("http_requests", "Number of HTTP requests received", requests)
//
//	db := reg.SubRegistry("postgres")
//	queryTime, _ := metrics.NewHistogram(metrics.DefBuckets)
//	db.MustRegister("query_duration", "Query latency", queryTime,
//		registry.WithUnit(registry.UnitSeconds)) // postgres_query_duration_seconds
//
// # Naming
//
// Names must match [a-zA-Z_][a-zA-Z0-9_]*. The fully qualified name is the
// chain of prefixes joined with underscores, followed by the unit suffix.
// Registering a fully qualified name twice anywhere in the tree fails with
// ErrDuplicateName and leaves the tree as it was. Help text gets a trailing
// period if it has none.
//
// # Collectors
//
// A Collector computes metrics when the registry is walked instead of
// keeping them up to date. Its output is not checked against registered
// names; keeping them apart is up to the caller.
//
// # Concurrency
//
// Register, RegisterCollector and SubRegistry take the tree's write lock
// for the time of an append. Walk only holds the read lock while copying a
// node list, so a long scrape never blocks registration, and metric updates
// never touch the registry at all.
package registry
