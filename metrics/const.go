package metrics

// ConstCounter is a counter with a fixed value, built fresh by a collector
// at scrape time from a value it already tracks elsewhere.
type ConstCounter[N Number] struct {
	Value N
}

// NewConstCounter returns a ConstCounter holding v.
func NewConstCounter[N Number](v N) ConstCounter[N] { return ConstCounter[N]{Value: v} }

// Type reports TypeCounter.
func (ConstCounter[N]) Type() Type { return TypeCounter }

// Encode writes the value to w.
func (c ConstCounter[N]) Encode(labels LabelSet, w SampleWriter) error {
	return w.WriteCounter(labels, ValueOf(c.Value))
}

// ConstGauge is a gauge with a fixed value.
type ConstGauge[N Number] struct {
	Value N
}

// NewConstGauge returns a ConstGauge holding v.
func NewConstGauge[N Number](v N) ConstGauge[N] { return ConstGauge[N]{Value: v} }

// Type reports TypeGauge.
func (ConstGauge[N]) Type() Type { return TypeGauge }

// Encode writes the value to w.
func (g ConstGauge[N]) Encode(labels LabelSet, w SampleWriter) error {
	return w.WriteGauge(labels, ValueOf(g.Value))
}
