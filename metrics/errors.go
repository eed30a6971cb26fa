package metrics

import "errors"

// Errors returned by metric constructors and mutations. They are returned
// wrapped where extra context helps, so match them with errors.Is.
var (
	// ErrNegativeDelta is returned when a counter is asked to decrease
	ErrNegativeDelta = errors.New("counter delta must not be negative")

	// ErrCounterOverflow is returned by counters using OverflowError when an
	// increment would exceed the range of the cell
	ErrCounterOverflow = errors.New("counter overflow")

	// ErrInvalidBuckets is returned when histogram bucket bounds are empty,
	// unsorted, duplicated or NaN
	ErrInvalidBuckets = errors.New("invalid histogram buckets")

	// ErrInvalidLabelName is returned when a label name does not match
	// [a-zA-Z_][a-zA-Z0-9_]*
	ErrInvalidLabelName = errors.New("invalid label name")

	// ErrReservedLabelName is returned when a label set uses "le" or
	// "quantile", which the exposition format reserves
	ErrReservedLabelName = errors.New("reserved label name")

	// ErrOddLabelPairs is returned by NewLabels when given an odd number of
	// strings
	ErrOddLabelPairs = errors.New("label pairs must be given as name, value")
)
