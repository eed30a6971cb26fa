package observability

import "time"

// Observer receives one event per completed operation.
//
// Observers are optional: code that accepts one works the same without it.
type Observer interface {
	// ObserveOperation is called when an operation completes.
	ObserveOperation(ctx OperationContext)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ctx OperationContext)

// ObserveOperation calls f.
func (f ObserverFunc) ObserveOperation(ctx OperationContext) { f(ctx) }

// OperationContext describes one completed operation.
type OperationContext struct {
	// Component is the package that performed the operation, e.g. "exporter".
	Component string

	// Operation is what was done, e.g. "scrape".
	Operation string

	// Resource is what it was done to, e.g. the scraped path "/metrics".
	Resource string

	// Duration is how long the operation took.
	Duration time.Duration

	// Error is the error the operation ended with, nil on success.
	Error error

	// Size is the amount of data involved, e.g. bytes written for a scrape.
	Size int64

	// Metadata carries anything that does not fit the fields above.
	Metadata map[string]interface{}
}
