package metrics_test

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aalemi-dev/openmetrics/metrics"
)

func TestNewCell_PicksImplementation(t *testing.T) {
	t.Parallel()
	assert.IsType(t, &metrics.Int64Cell{}, metrics.NewCell[int64]())
	assert.IsType(t, &metrics.Uint64Cell{}, metrics.NewCell[uint64]())
	assert.IsType(t, &metrics.Float64Cell{}, metrics.NewCell[float64]())
}

func TestCell_AddReturnsPrevious(t *testing.T) {
	t.Parallel()

	i := metrics.NewCell[int64]()
	i.Set(5)
	assert.Equal(t, int64(5), i.Add(-7))
	assert.Equal(t, int64(-2), i.Get())

	u := metrics.NewCell[uint64]()
	assert.Equal(t, uint64(0), u.Add(3))
	assert.Equal(t, uint64(3), u.Get())

	f := metrics.NewCell[float64]()
	f.Set(1.5)
	assert.Equal(t, 1.5, f.Add(0.25))
	assert.Equal(t, 1.75, f.Get())
}

func TestCell_CompareAndSwap(t *testing.T) {
	t.Parallel()
	f := metrics.NewCell[float64]()
	f.Set(2)
	assert.False(t, f.CompareAndSwap(3, 4))
	assert.True(t, f.CompareAndSwap(2, 4))
	assert.Equal(t, 4.0, f.Get())

	u := metrics.NewCell[uint64]()
	assert.True(t, u.CompareAndSwap(0, math.MaxUint64))
	assert.Equal(t, uint64(math.MaxUint64), u.Get())
}

func TestFloat64Cell_ConcurrentAddLosesNothing(t *testing.T) {
	t.Parallel()
	const goroutines, adds = 64, 1000

	var c metrics.Float64Cell
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < adds; i++ {
				c.Add(0.5)
			}
		}()
	}
	wg.Wait()

	// 0.5 and every partial sum are exact in float64
	assert.Equal(t, float64(goroutines*adds)*0.5, c.Get())
}
