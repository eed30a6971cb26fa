package metrics_test

import (
	"github.com/aalemi-dev/openmetrics/metrics"
)

// sample is one series reported to a recorder.
type sample struct {
	kind   string
	labels string
	value  metrics.Value
	hist   metrics.HistogramSnapshot
}

// recorder is a SampleWriter that keeps every sample it receives.
type recorder struct {
	samples []sample
	err     error
}

func renderLabels(ls metrics.LabelSet) (string, error) {
	var enc metrics.LabelEncoder
	if err := ls.EncodeLabels(&enc); err != nil {
		return "", err
	}
	return string(enc.Bytes()), nil
}

func (r *recorder) add(kind string, ls metrics.LabelSet, v metrics.Value, h metrics.HistogramSnapshot) error {
	if r.err != nil {
		return r.err
	}
	labels, err := renderLabels(ls)
	if err != nil {
		return err
	}
	r.samples = append(r.samples, sample{kind: kind, labels: labels, value: v, hist: h})
	return nil
}

func (r *recorder) WriteCounter(ls metrics.LabelSet, v metrics.Value) error {
	return r.add("counter", ls, v, metrics.HistogramSnapshot{})
}

func (r *recorder) WriteGauge(ls metrics.LabelSet, v metrics.Value) error {
	return r.add("gauge", ls, v, metrics.HistogramSnapshot{})
}

func (r *recorder) WriteHistogram(ls metrics.LabelSet, s metrics.HistogramSnapshot) error {
	return r.add("histogram", ls, metrics.Value{}, s)
}

// methodLabels is a typical struct label set.
type methodLabels struct {
	Method string
	Code   int
}

func (l methodLabels) EncodeLabels(enc *metrics.LabelEncoder) error {
	if err := enc.String("method", l.Method); err != nil {
		return err
	}
	return enc.Int("code", int64(l.Code))
}
