package metrics

import "math"

// Type is the OpenMetrics type of a metric family.
type Type int

const (
	TypeUnknown Type = iota
	TypeCounter
	TypeGauge
	TypeHistogram
)

// String returns the name used on the TYPE line of the exposition format.
func (t Type) String() string {
	switch t {
	case TypeCounter:
		return "counter"
	case TypeGauge:
		return "gauge"
	case TypeHistogram:
		return "histogram"
	default:
		return "unknown"
	}
}

// Kind tells how a Value should be rendered.
type Kind uint8

const (
	KindInt Kind = iota
	KindUint
	KindFloat
)

// Value is a sample value as read from a cell. It keeps track of whether
// the cell was integral so that the encoder can render integers without a
// decimal point.
type Value struct {
	kind Kind
	i    int64
	u    uint64
	f    float64
}

// IntValue wraps a signed integer sample.
func IntValue(v int64) Value { return Value{kind: KindInt, i: v} }

// UintValue wraps an unsigned integer sample.
func UintValue(v uint64) Value { return Value{kind: KindUint, u: v} }

// FloatValue wraps a floating-point sample.
func FloatValue(v float64) Value { return Value{kind: KindFloat, f: v} }

// ValueOf wraps n in a Value of the matching kind.
func ValueOf[N Number](n N) Value {
	switch v := any(n).(type) {
	case int64:
		return IntValue(v)
	case uint64:
		return UintValue(v)
	case float64:
		return FloatValue(v)
	}
	return Value{}
}

// Kind reports the kind of v.
func (v Value) Kind() Kind { return v.kind }

// Int returns the signed integer held by v. Only meaningful for KindInt.
func (v Value) Int() int64 { return v.i }

// Uint returns the unsigned integer held by v. Only meaningful for KindUint.
func (v Value) Uint() uint64 { return v.u }

// Float returns the value as a float64, converting integers.
func (v Value) Float() float64 {
	switch v.kind {
	case KindInt:
		return float64(v.i)
	case KindUint:
		return float64(v.u)
	default:
		return v.f
	}
}

// IsNaN reports whether v is a floating-point NaN.
func (v Value) IsNaN() bool { return v.kind == KindFloat && math.IsNaN(v.f) }
