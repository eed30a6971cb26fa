package observability

import (
	"fmt"

	"github.com/aalemi-dev/openmetrics/metrics"
	"github.com/aalemi-dev/openmetrics/registry"
)

// Status label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

type operationLabels struct {
	Component string
	Operation string
	Status    string
}

func (l operationLabels) EncodeLabels(enc *metrics.LabelEncoder) error {
	if err := enc.String("component", l.Component); err != nil {
		return err
	}
	if err := enc.String("operation", l.Operation); err != nil {
		return err
	}
	return enc.String("status", l.Status)
}

type componentLabels struct {
	Component string
	Operation string
}

func (l componentLabels) EncodeLabels(enc *metrics.LabelEncoder) error {
	if err := enc.String("component", l.Component); err != nil {
		return err
	}
	return enc.String("operation", l.Operation)
}

// MetricsObserver records every event it observes on a registry.
type MetricsObserver struct {
	operations *metrics.Family[operationLabels, *metrics.Counter[uint64]]
	durations  *metrics.Family[componentLabels, *metrics.Histogram]
	sizes      *metrics.Family[componentLabels, *metrics.Counter[uint64]]
}

var _ Observer = (*MetricsObserver)(nil)

// NewMetricsObserver registers its metric families on reg:
//
//   - operations: counter by component, operation and status
//   - operation_duration_seconds: histogram by component and operation
//   - operation_size_bytes: counter of Size by component and operation
//
// It fails if any of the names is already taken, and then registers none
// of them.
func NewMetricsObserver(reg *registry.Registry) (*MetricsObserver, error) {
	durations, err := metrics.NewHistogramFamily[componentLabels](metrics.DefBuckets)
	if err != nil {
		return nil, err
	}
	o := &MetricsObserver{
		operations: metrics.NewCounterFamily[operationLabels, uint64](),
		durations:  durations,
		sizes:      metrics.NewCounterFamily[componentLabels, uint64](),
	}

	err = reg.RegisterAll(
		registry.Registration{Name: "operations", Help: "Operations completed", Metric: o.operations},
		registry.Registration{Name: "operation_duration", Help: "Time taken by operations", Metric: o.durations,
			Options: []registry.RegisterOption{registry.WithUnit(registry.UnitSeconds)}},
		registry.Registration{Name: "operation_size", Help: "Data handled by operations", Metric: o.sizes,
			Options: []registry.RegisterOption{registry.WithUnit(registry.UnitBytes)}},
	)
	if err != nil {
		return nil, fmt.Errorf("register operation metrics: %w", err)
	}
	return o, nil
}

// ObserveOperation counts the operation, records its duration and adds
// its size when positive.
func (o *MetricsObserver) ObserveOperation(ctx OperationContext) {
	status := StatusSuccess
	if ctx.Error != nil {
		status = StatusError
	}
	_ = o.operations.GetOrCreate(operationLabels{
		Component: ctx.Component,
		Operation: ctx.Operation,
		Status:    status,
	}).Inc()

	key := componentLabels{Component: ctx.Component, Operation: ctx.Operation}
	o.durations.GetOrCreate(key).Observe(ctx.Duration.Seconds())
	if ctx.Size > 0 {
		_ = o.sizes.GetOrCreate(key).Add(uint64(ctx.Size))
	}
}
