// Package exposition renders a registry in the OpenMetrics text format.
//
// Encode walks the registry in registration order and writes, for every
// metric family, its HELP, TYPE and optional UNIT lines followed by one line
// per sample, and finishes the stream with "# EOF". Encoding an unchanged
// registry twice yields identical bytes.
//
//	var buf bytes.Buffer
//	if err := exposition.Encode(&buf, reg); err != nil {
//		return err
//	}
//
// The encoder does no I/O of its own beyond writing to the io.Writer it is
// given, so the same call serves an HTTP response, a file or a test buffer.
// Serving the output over HTTP is the job of the exporter package.
//
// # Sample lines
//
//   - counter: name_total{labels} value
//   - gauge: name{labels} value
//   - histogram: name_bucket{labels,le="bound"} count for each bucket and
//     +Inf, then name_sum and name_count
//
// Constant labels of the registry come first, then the metric's own labels
// in the order its LabelSet writes them. Label values escape backslash,
// double quote and newline; help text escapes backslash and newline only.
package exposition
