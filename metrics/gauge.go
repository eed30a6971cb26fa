package metrics

// Gauge is a metric that can go up and down, e.g. the number of in-flight
// requests or a temperature. Any signed delta is accepted, including one
// that takes the gauge below zero.
type Gauge[N Number] struct {
	value Cell[N]
}

// NewGauge returns a gauge starting at zero.
func NewGauge[N Number]() *Gauge[N] {
	return &Gauge[N]{value: NewCell[N]()}
}

// Set sets the gauge to v.
func (g *Gauge[N]) Set(v N) {
	g.value.Set(v)
}

// Add adds delta to the gauge and returns the previous value.
func (g *Gauge[N]) Add(delta N) N {
	return g.value.Add(delta)
}

// Sub subtracts delta from the gauge and returns the previous value.
// For uint64 gauges going below zero wraps around.
func (g *Gauge[N]) Sub(delta N) N {
	return g.value.Add(-delta)
}

// Inc increments the gauge by one and returns the previous value.
func (g *Gauge[N]) Inc() N {
	return g.value.Add(1)
}

// Dec decrements the gauge by one and returns the previous value.
func (g *Gauge[N]) Dec() N {
	var one N = 1
	return g.value.Add(-one)
}

// Get returns the current value.
func (g *Gauge[N]) Get() N {
	return g.value.Get()
}

// Type reports TypeGauge.
func (g *Gauge[N]) Type() Type { return TypeGauge }

// Encode writes the gauge value to w.
func (g *Gauge[N]) Encode(labels LabelSet, w SampleWriter) error {
	return w.WriteGauge(labels, ValueOf(g.Get()))
}

// Collect writes the gauge as a single unlabelled series.
func (g *Gauge[N]) Collect(w SampleWriter) error {
	return g.Encode(NoLabels{}, w)
}
