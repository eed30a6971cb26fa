package metrics

import (
	"math"
	"strconv"
)

// AppendFloat appends the exposition form of f to dst: the shortest
// representation that parses back to f, always carrying a decimal point or
// an exponent ("1.0", "0.25", "1e+21"), or one of "+Inf", "-Inf", "NaN".
func AppendFloat(dst []byte, f float64) []byte {
	switch {
	case math.IsNaN(f):
		return append(dst, "NaN"...)
	case math.IsInf(f, 1):
		return append(dst, "+Inf"...)
	case math.IsInf(f, -1):
		return append(dst, "-Inf"...)
	}
	start := len(dst)
	dst = strconv.AppendFloat(dst, f, 'g', -1, 64)
	for _, c := range dst[start:] {
		if c == '.' || c == 'e' {
			return dst
		}
	}
	return append(dst, '.', '0')
}

// Append appends the exposition form of v to dst. Integers have no decimal
// point; floats are formatted by AppendFloat.
func (v Value) Append(dst []byte) []byte {
	switch v.kind {
	case KindInt:
		return strconv.AppendInt(dst, v.i, 10)
	case KindUint:
		return strconv.AppendUint(dst, v.u, 10)
	default:
		return AppendFloat(dst, v.f)
	}
}

// String returns the exposition form of v.
func (v Value) String() string {
	return string(v.Append(nil))
}
