package exposition

import (
	"bufio"
	"fmt"
	"io"

	"github.com/aalemi-dev/openmetrics/metrics"
	"github.com/aalemi-dev/openmetrics/registry"
)

// ContentType is the media type of the text produced by Encode.
const ContentType = "application/openmetrics-text; version=1.0.0; charset=utf-8"

// Encode writes the OpenMetrics text exposition of reg to w, terminated by
// "# EOF\n". An empty registry yields only the EOF line.
//
// The first error from w, from a collector or from a label set aborts the
// pass and is returned wrapped; match the cause with errors.Is. Output
// already written to w before the failure is not retracted.
func Encode(w io.Writer, reg *registry.Registry) error {
	e := &encoder{w: bufio.NewWriter(w)}

	if reg != nil {
		if err := reg.Walk(e.family); err != nil {
			return err
		}
	}
	e.w.WriteString("# EOF\n")
	if err := e.w.Flush(); err != nil {
		return fmt.Errorf("write exposition: %w", err)
	}
	return nil
}

// encoder implements metrics.SampleWriter for one family at a time.
type encoder struct {
	w *bufio.Writer

	// state of the family being written
	name        string
	constLabels []metrics.Label

	labels metrics.LabelEncoder
	line   []byte
}

func (e *encoder) family(entry registry.Entry) error {
	typ := entry.Metric.Type()
	switch typ {
	case metrics.TypeCounter, metrics.TypeGauge, metrics.TypeHistogram, metrics.TypeUnknown:
	default:
		return fmt.Errorf("%w: %q reports type %d", ErrUnknownType, entry.Descriptor.Name, int(typ))
	}

	d := entry.Descriptor
	e.name = d.Name
	e.constLabels = entry.ConstLabels

	line := e.line[:0]
	line = append(line, "# HELP "...)
	line = append(line, d.Name...)
	line = append(line, ' ')
	line = appendEscapedHelp(line, d.Help)
	line = append(line, '\n')
	line = append(line, "# TYPE "...)
	line = append(line, d.Name...)
	line = append(line, ' ')
	line = append(line, typ.String()...)
	line = append(line, '\n')
	if d.Unit != "" {
		line = append(line, "# UNIT "...)
		line = append(line, d.Name...)
		line = append(line, ' ')
		line = append(line, string(d.Unit)...)
		line = append(line, '\n')
	}
	e.line = line
	if err := e.flushLine(); err != nil {
		return err
	}

	if err := entry.Metric.Collect(e); err != nil {
		return fmt.Errorf("encode %q: %w", d.Name, err)
	}
	return nil
}

// WriteCounter writes name_total{labels} value.
func (e *encoder) WriteCounter(labels metrics.LabelSet, v metrics.Value) error {
	return e.sample("_total", labels, nil, v)
}

// WriteGauge writes name{labels} value.
func (e *encoder) WriteGauge(labels metrics.LabelSet, v metrics.Value) error {
	return e.sample("", labels, nil, v)
}

// WriteHistogram writes the bucket, sum and count lines of one series.
func (e *encoder) WriteHistogram(labels metrics.LabelSet, s metrics.HistogramSnapshot) error {
	for _, b := range s.Buckets {
		bound := b.UpperBound
		if err := e.sample("_bucket", labels, &bound, metrics.UintValue(b.Count)); err != nil {
			return err
		}
	}
	if err := e.sample("_sum", labels, nil, metrics.FloatValue(s.Sum)); err != nil {
		return err
	}
	return e.sample("_count", labels, nil, metrics.UintValue(s.Count))
}

// sample renders one line. le, when set, is added as the last label.
func (e *encoder) sample(suffix string, labels metrics.LabelSet, le *float64, v metrics.Value) error {
	e.labels.Reset()
	for _, l := range e.constLabels {
		if err := l.EncodeLabels(&e.labels); err != nil {
			return err
		}
	}
	if labels != nil {
		if err := labels.EncodeLabels(&e.labels); err != nil {
			return err
		}
	}

	line := e.line[:0]
	line = append(line, e.name...)
	line = append(line, suffix...)
	if e.labels.Len() > 0 || le != nil {
		line = append(line, '{')
		line = append(line, e.labels.Bytes()...)
		if le != nil {
			if e.labels.Len() > 0 {
				line = append(line, ',')
			}
			line = append(line, metrics.BucketLabel...)
			line = append(line, '=', '"')
			line = metrics.AppendFloat(line, *le)
			line = append(line, '"')
		}
		line = append(line, '}')
	}
	line = append(line, ' ')
	line = v.Append(line)
	line = append(line, '\n')
	e.line = line
	return e.flushLine()
}

func (e *encoder) flushLine() error {
	if _, err := e.w.Write(e.line); err != nil {
		return fmt.Errorf("write exposition: %w", err)
	}
	return nil
}

// appendEscapedHelp escapes backslash and newline. Quotes are left as is.
func appendEscapedHelp(dst []byte, s string) []byte {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			dst = append(dst, '\\', '\\')
		case '\n':
			dst = append(dst, '\\', 'n')
		default:
			dst = append(dst, c)
		}
	}
	return dst
}
