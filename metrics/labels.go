package metrics

import (
	"encoding/binary"
	"fmt"
	"strconv"
)

// LabelSet is implemented by every type used as the label set of a Family.
//
// EncodeLabels must hand its (name, value) pairs to enc in the same order
// every time, and two equal label sets must encode identically. It should
// only fail when enc rejects a pair.
//
// Example:
//
//	type requestLabels struct {
//		Method string
//		Code   int
//	}
//
//	func (l requestLabels) EncodeLabels(enc *metrics.LabelEncoder) error {
//		if err := enc.String("method", l.Method); err != nil {
//			return err
//		}
//		return enc.Int("code", int64(l.Code))
//	}
type LabelSet interface {
	EncodeLabels(enc *LabelEncoder) error
}

// LabelEncoder renders label pairs in exposition syntax:
// name="value" pairs separated by commas, without the surrounding braces.
// Values are escaped; names are checked against the label name grammar.
//
// The zero value is ready to use.
type LabelEncoder struct {
	buf []byte
	n   int
}

// String adds a pair with a string value.
func (e *LabelEncoder) String(name, value string) error {
	if err := e.begin(name); err != nil {
		return err
	}
	e.buf = appendEscapedLabelValue(e.buf, value)
	e.buf = append(e.buf, '"')
	return nil
}

// Int adds a pair with a signed integer value.
func (e *LabelEncoder) Int(name string, v int64) error {
	if err := e.begin(name); err != nil {
		return err
	}
	e.buf = strconv.AppendInt(e.buf, v, 10)
	e.buf = append(e.buf, '"')
	return nil
}

// Uint adds a pair with an unsigned integer value.
func (e *LabelEncoder) Uint(name string, v uint64) error {
	if err := e.begin(name); err != nil {
		return err
	}
	e.buf = strconv.AppendUint(e.buf, v, 10)
	e.buf = append(e.buf, '"')
	return nil
}

// Float adds a pair with a floating-point value, formatted like a sample
// value.
func (e *LabelEncoder) Float(name string, v float64) error {
	if err := e.begin(name); err != nil {
		return err
	}
	e.buf = AppendFloat(e.buf, v)
	e.buf = append(e.buf, '"')
	return nil
}

// Bool adds a pair whose value is "true" or "false".
func (e *LabelEncoder) Bool(name string, v bool) error {
	if err := e.begin(name); err != nil {
		return err
	}
	e.buf = strconv.AppendBool(e.buf, v)
	e.buf = append(e.buf, '"')
	return nil
}

// Len returns the number of pairs written since the last Reset.
func (e *LabelEncoder) Len() int { return e.n }

// Bytes returns the rendered pairs. The slice is only valid until the next
// call on e.
func (e *LabelEncoder) Bytes() []byte { return e.buf }

// Reset empties the encoder, keeping its buffer.
func (e *LabelEncoder) Reset() {
	e.buf = e.buf[:0]
	e.n = 0
}

func (e *LabelEncoder) begin(name string) error {
	if !ValidLabelName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidLabelName, name)
	}
	if name == BucketLabel || name == QuantileLabel {
		return fmt.Errorf("%w: %q", ErrReservedLabelName, name)
	}
	if e.n > 0 {
		e.buf = append(e.buf, ',')
	}
	e.n++
	e.buf = append(e.buf, name...)
	e.buf = append(e.buf, '=', '"')
	return nil
}

// Reserved label names.
const (
	BucketLabel   = "le"
	QuantileLabel = "quantile"
)

// ValidLabelName reports whether name matches [a-zA-Z_][a-zA-Z0-9_]*.
func ValidLabelName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// NoLabels is the empty label set, used for unlabelled metrics.
type NoLabels struct{}

// EncodeLabels writes nothing.
func (NoLabels) EncodeLabels(*LabelEncoder) error { return nil }

// Label is a single name/value pair. It is itself a LabelSet.
type Label struct {
	Name  string
	Value string
}

// EncodeLabels writes the pair.
func (l Label) EncodeLabels(enc *LabelEncoder) error {
	return enc.String(l.Name, l.Value)
}

// Labels is an immutable, ordered list of label pairs that can be used as
// a Family key when the label names are only known at runtime. Two Labels
// are equal when they hold the same pairs in the same order.
type Labels struct {
	// length-prefixed name/value strings, so Labels stays comparable
	packed string
}

// NewLabels builds Labels from alternating names and values. The order of
// the pairs is the order they are rendered in.
//
// Parameters:
//   - pairs: name1, value1, name2, value2, ...
//
// Returns:
//   - Labels: a comparable label set usable as a Family key
//   - error: ErrOddLabelPairs or ErrInvalidLabelName; reserved names such as
//     "le" are rejected when the labels are encoded
//
// Example:
//
//	ls, err := metrics.NewLabels("method", "GET", "path", "/metrics")
func NewLabels(pairs ...string) (Labels, error) {
	if len(pairs)%2 != 0 {
		return Labels{}, fmt.Errorf("%w: got %d strings", ErrOddLabelPairs, len(pairs))
	}
	var buf []byte
	for i, s := range pairs {
		if i%2 == 0 && !ValidLabelName(s) {
			return Labels{}, fmt.Errorf("%w: %q", ErrInvalidLabelName, s)
		}
		buf = binary.AppendUvarint(buf, uint64(len(s)))
		buf = append(buf, s...)
	}
	return Labels{packed: string(buf)}, nil
}

// MustLabels is like NewLabels but panics on error. Use it for label sets
// known at compile time.
func MustLabels(pairs ...string) Labels {
	ls, err := NewLabels(pairs...)
	if err != nil {
		panic(err)
	}
	return ls
}

// Pairs returns the pairs in order.
func (l Labels) Pairs() []Label {
	var out []Label
	l.each(func(name, value string) bool {
		out = append(out, Label{Name: name, Value: value})
		return true
	})
	return out
}

// EncodeLabels writes the pairs in order.
func (l Labels) EncodeLabels(enc *LabelEncoder) error {
	var err error
	l.each(func(name, value string) bool {
		err = enc.String(name, value)
		return err == nil
	})
	return err
}

func (l Labels) each(fn func(name, value string) bool) {
	rest := l.packed
	for len(rest) > 0 {
		name, r := unpack(rest)
		value, r := unpack(r)
		if !fn(name, value) {
			return
		}
		rest = r
	}
}

func unpack(s string) (string, string) {
	n, w := binary.Uvarint([]byte(s[:min(len(s), binary.MaxVarintLen64)]))
	s = s[w:]
	return s[:n], s[n:]
}

func appendEscapedLabelValue(dst []byte, s string) []byte {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			dst = append(dst, '\\', '\\')
		case '"':
			dst = append(dst, '\\', '"')
		case '\n':
			dst = append(dst, '\\', 'n')
		default:
			dst = append(dst, c)
		}
	}
	return dst
}
