package registry

import "errors"

// Errors returned by registration and traversal. They are wrapped with the
// offending name, so match them with errors.Is.
var (
	// ErrInvalidName is returned when a fully qualified metric name or unit
	// does not match [a-zA-Z_][a-zA-Z0-9_]*
	ErrInvalidName = errors.New("invalid metric name")

	// ErrDuplicateName is returned when the fully qualified name is already
	// registered somewhere in the registry tree
	ErrDuplicateName = errors.New("duplicate metric name")

	// ErrNilMetric is returned when registering a nil metric
	ErrNilMetric = errors.New("metric is nil")

	// ErrNilCollector is returned when registering a nil collector
	ErrNilCollector = errors.New("collector is nil")

	// ErrTypeMismatch is returned when a collector reports samples of
	// different types under one metric name
	ErrTypeMismatch = errors.New("metric type mismatch")
)
