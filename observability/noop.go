package observability

// NoOpObserver discards every event. It is the default wherever an
// Observer is optional.
type NoOpObserver struct{}

// ObserveOperation does nothing.
func (n *NoOpObserver) ObserveOperation(OperationContext) {}

// NewNoOpObserver returns a NoOpObserver.
func NewNoOpObserver() Observer {
	return &NoOpObserver{}
}
