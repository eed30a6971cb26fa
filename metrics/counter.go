package metrics

import (
	"fmt"
	"math"
)

// OverflowPolicy decides what a Counter does when an increment would push
// its value past the range of its cell.
type OverflowPolicy int

const (
	// OverflowWrap lets the value wrap around the way a hardware add does.
	// A scraper sees the wrap as a counter reset. Float counters do not
	// wrap; their value becomes +Inf. This is the default and the only
	// policy that does not need a compare-and-swap loop.
	OverflowWrap OverflowPolicy = iota

	// OverflowSaturate clamps the value at the largest representable number.
	OverflowSaturate

	// OverflowError rejects the increment with ErrCounterOverflow and leaves
	// the value unchanged.
	OverflowError
)

// String returns the policy name.
func (p OverflowPolicy) String() string {
	switch p {
	case OverflowWrap:
		return "wrap"
	case OverflowSaturate:
		return "saturate"
	case OverflowError:
		return "error"
	default:
		return fmt.Sprintf("OverflowPolicy(%d)", int(p))
	}
}

type counterConfig struct {
	overflow OverflowPolicy
}

// CounterOption configures a Counter built by NewCounter.
type CounterOption func(*counterConfig)

// WithOverflowPolicy sets the overflow policy of the counter.
func WithOverflowPolicy(p OverflowPolicy) CounterOption {
	return func(cfg *counterConfig) { cfg.overflow = p }
}

// Counter is a monotonically non-decreasing metric, e.g. the number of
// requests served. It is rendered with the _total suffix.
//
// A Counter never goes down. Resetting it is left to the process restart.
type Counter[N Number] struct {
	value    Cell[N]
	overflow OverflowPolicy
}

// NewCounter returns a counter starting at zero.
//
// Parameters:
//   - opts: WithOverflowPolicy; the default policy is OverflowWrap
//
// Returns:
//   - *Counter[N]: a counter safe for concurrent use
//
// Example:
//
//	requests := metrics.NewCounter[uint64]()
//	_ = requests.Inc()
func NewCounter[N Number](opts ...CounterOption) *Counter[N] {
	var cfg counterConfig
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	return &Counter[N]{value: NewCell[N](), overflow: cfg.overflow}
}

// Inc increments the counter by one.
func (c *Counter[N]) Inc() error {
	return c.Add(1)
}

// Add increments the counter by delta.
//
// A negative or NaN delta is rejected with ErrNegativeDelta and the value is
// left unchanged. Overflow is handled according to the counter's
// OverflowPolicy.
//
// Parameters:
//   - delta: The non-negative amount to add
//
// Returns:
//   - error: ErrNegativeDelta, or ErrCounterOverflow under OverflowError
func (c *Counter[N]) Add(delta N) error {
	if delta < 0 || isNaN(delta) {
		return fmt.Errorf("%w: %v", ErrNegativeDelta, delta)
	}
	if c.overflow == OverflowWrap {
		c.value.Add(delta)
		return nil
	}

	for {
		old := c.value.Get()
		next, ok := addChecked(old, delta)
		if !ok {
			if c.overflow == OverflowError {
				return fmt.Errorf("%w: %v + %v", ErrCounterOverflow, old, delta)
			}
			next = maxOf[N]()
		}
		if c.value.CompareAndSwap(old, next) {
			return nil
		}
	}
}

// Get returns the current value.
func (c *Counter[N]) Get() N {
	return c.value.Get()
}

// Type reports TypeCounter.
func (c *Counter[N]) Type() Type { return TypeCounter }

// Encode writes the counter value to w.
func (c *Counter[N]) Encode(labels LabelSet, w SampleWriter) error {
	return w.WriteCounter(labels, ValueOf(c.Get()))
}

// Collect writes the counter as a single unlabelled series.
func (c *Counter[N]) Collect(w SampleWriter) error {
	return c.Encode(NoLabels{}, w)
}

// addChecked returns old+delta and whether the addition stayed in range.
// delta is known to be non-negative.
func addChecked[N Number](old, delta N) (N, bool) {
	sum := old + delta
	if f, ok := any(sum).(float64); ok {
		return sum, !math.IsInf(f, 1)
	}
	return sum, sum >= old
}

func maxOf[N Number]() N {
	var zero N
	switch any(zero).(type) {
	case int64:
		return any(int64(math.MaxInt64)).(N)
	case uint64:
		return any(uint64(math.MaxUint64)).(N)
	default:
		return any(math.MaxFloat64).(N)
	}
}

func isNaN[N Number](v N) bool {
	f, ok := any(v).(float64)
	return ok && math.IsNaN(f)
}
