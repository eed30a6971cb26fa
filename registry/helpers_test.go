package registry_test

import (
	"github.com/aalemi-dev/openmetrics/metrics"
)

// recorder is a SampleWriter that renders each series as `labels value`.
type recorder struct {
	lines []string
}

func (r *recorder) line(ls metrics.LabelSet, v string) error {
	var enc metrics.LabelEncoder
	if err := ls.EncodeLabels(&enc); err != nil {
		return err
	}
	r.lines = append(r.lines, string(enc.Bytes())+" "+v)
	return nil
}

func (r *recorder) WriteCounter(ls metrics.LabelSet, v metrics.Value) error {
	return r.line(ls, v.String())
}

func (r *recorder) WriteGauge(ls metrics.LabelSet, v metrics.Value) error {
	return r.line(ls, v.String())
}

func (r *recorder) WriteHistogram(ls metrics.LabelSet, s metrics.HistogramSnapshot) error {
	return r.line(ls, metrics.UintValue(s.Count).String())
}
