package metrics

import (
	"math"
	"sync/atomic"
)

// Number is the set of value types a metric cell can hold.
type Number interface {
	int64 | uint64 | float64
}

// Cell is a thread-safe mutable numeric slot. Every metric stores its
// values in one or more cells.
//
// All methods are safe for concurrent use. None of them block on a lock.
type Cell[N Number] interface {
	// Get returns the current value.
	Get() N

	// Set stores v, discarding the previous value.
	Set(v N)

	// Add adds delta and returns the value held before the addition.
	Add(delta N) N

	// CompareAndSwap stores new only if the cell still holds old.
	CompareAndSwap(old, new N) bool
}

// NewCell returns the cell implementation matching N.
func NewCell[N Number]() Cell[N] {
	var zero N
	switch any(zero).(type) {
	case int64:
		return any(&Int64Cell{}).(Cell[N])
	case uint64:
		return any(&Uint64Cell{}).(Cell[N])
	default:
		return any(&Float64Cell{}).(Cell[N])
	}
}

// Int64Cell is a Cell backed by atomic.Int64.
type Int64Cell struct {
	v atomic.Int64
}

func (c *Int64Cell) Get() int64 { return c.v.Load() }

func (c *Int64Cell) Set(v int64) { c.v.Store(v) }

func (c *Int64Cell) Add(delta int64) int64 { return c.v.Add(delta) - delta }

func (c *Int64Cell) CompareAndSwap(old, new int64) bool { return c.v.CompareAndSwap(old, new) }

// Uint64Cell is a Cell backed by atomic.Uint64. Add wraps on overflow.
type Uint64Cell struct {
	v atomic.Uint64
}

func (c *Uint64Cell) Get() uint64 { return c.v.Load() }

func (c *Uint64Cell) Set(v uint64) { c.v.Store(v) }

func (c *Uint64Cell) Add(delta uint64) uint64 { return c.v.Add(delta) - delta }

func (c *Uint64Cell) CompareAndSwap(old, new uint64) bool { return c.v.CompareAndSwap(old, new) }

// Float64Cell stores the IEEE-754 bit pattern of a float64 in an
// atomic.Uint64.
//
// Add is a compare-and-swap retry loop: under heavy contention a caller may
// loop a few extra times, but no addition is ever lost.
type Float64Cell struct {
	bits atomic.Uint64
}

func (c *Float64Cell) Get() float64 { return math.Float64frombits(c.bits.Load()) }

func (c *Float64Cell) Set(v float64) { c.bits.Store(math.Float64bits(v)) }

func (c *Float64Cell) Add(delta float64) float64 {
	for {
		oldBits := c.bits.Load()
		old := math.Float64frombits(oldBits)
		if c.bits.CompareAndSwap(oldBits, math.Float64bits(old+delta)) {
			return old
		}
	}
}

// CompareAndSwap compares bit patterns, so a cell holding NaN only swaps
// when old carries the same NaN payload.
func (c *Float64Cell) CompareAndSwap(old, new float64) bool {
	return c.bits.CompareAndSwap(math.Float64bits(old), math.Float64bits(new))
}
