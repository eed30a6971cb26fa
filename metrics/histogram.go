package metrics

import (
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Histogram counts observations into buckets with fixed upper bounds, plus
// an implicit +Inf bucket, and keeps their sum and count.
//
// Bucket counts are stored cumulatively: an observation increments every
// bucket whose bound is greater than or equal to it. Observe walks the
// buckets from the highest bound down, so a reader walking them in ascending
// order never sees a count smaller than the one before it.
//
// Observations go to one of two sets of cells, the hot one. Snapshot swaps
// hot and cold, waits for the observations already started on the old hot
// set to finish, reads it, and folds it into the new hot set. Buckets, sum
// and count of a snapshot therefore describe the same set of observations,
// and Observe never waits on Snapshot.
type Histogram struct {
	upperBounds []float64

	// countAndHotIdx holds the index of the hot set in its top bit and the
	// number of observations started in the other 63.
	countAndHotIdx atomic.Uint64
	counts         [2]*histogramCounts

	// snapMu serializes Snapshot; Observe never takes it.
	snapMu sync.Mutex
}

type histogramCounts struct {
	// buckets has one more slot than upperBounds; the last one is +Inf.
	buckets []Uint64Cell
	sum     Float64Cell
	// count is incremented last and marks an observation as complete.
	count Uint64Cell
}

func newHistogramCounts(n int) *histogramCounts {
	return &histogramCounts{buckets: make([]Uint64Cell, n)}
}

// Bucket is one cumulative bucket of a HistogramSnapshot.
type Bucket struct {
	UpperBound float64
	Count      uint64
}

// HistogramSnapshot is a point-in-time copy of a Histogram. The last bucket
// always has an UpperBound of +Inf.
type HistogramSnapshot struct {
	Buckets []Bucket
	Sum     float64
	Count   uint64
}

// NewHistogram returns a histogram with the given bucket upper bounds.
//
// The bounds must be non-empty, free of NaN and strictly increasing. A final
// +Inf bound is accepted and dropped since the +Inf bucket is always added.
// The slice is copied.
//
// Parameters:
//   - buckets: Finite upper bounds in increasing order, such as DefBuckets
//
// Returns:
//   - *Histogram: a histogram with every count at zero
//   - error: ErrInvalidBuckets when the bounds are unusable
//
// Example:
//
//	latency, err := metrics.NewHistogram(metrics.ExponentialBuckets(0.001, 2, 12))
func NewHistogram(buckets []float64) (*Histogram, error) {
	bounds, err := validateBuckets(buckets)
	if err != nil {
		return nil, err
	}
	return newHistogram(bounds), nil
}

// newHistogram expects bounds already validated. Histograms of one family
// share the bounds slice.
func newHistogram(bounds []float64) *Histogram {
	return &Histogram{
		upperBounds: bounds,
		counts: [2]*histogramCounts{
			newHistogramCounts(len(bounds) + 1),
			newHistogramCounts(len(bounds) + 1),
		},
	}
}

func validateBuckets(buckets []float64) ([]float64, error) {
	bounds := make([]float64, 0, len(buckets))
	for i, b := range buckets {
		if math.IsNaN(b) {
			return nil, fmt.Errorf("%w: bound %d is NaN", ErrInvalidBuckets, i)
		}
		if i > 0 && b <= buckets[i-1] {
			return nil, fmt.Errorf("%w: bounds must be strictly increasing, got %v after %v",
				ErrInvalidBuckets, b, buckets[i-1])
		}
		if math.IsInf(b, 1) && i == len(buckets)-1 {
			break
		}
		bounds = append(bounds, b)
	}
	if len(bounds) == 0 {
		return nil, fmt.Errorf("%w: at least one finite bound is required", ErrInvalidBuckets)
	}
	return bounds, nil
}

// Observe records v: every bucket with a bound of at least v, the sum and
// the count. It never blocks, even while a Snapshot is being taken.
func (h *Histogram) Observe(v float64) {
	// first bucket with bound >= v; NaN lands in +Inf only
	first := sort.SearchFloat64s(h.upperBounds, v)
	n := h.countAndHotIdx.Add(1)
	hot := h.counts[n>>63]
	for i := len(hot.buckets) - 1; i >= first; i-- {
		hot.buckets[i].Add(1)
	}
	hot.sum.Add(v)
	hot.count.Add(1)
}

// ObserveSince records the seconds elapsed since start.
func (h *Histogram) ObserveSince(start time.Time) {
	h.Observe(time.Since(start).Seconds())
}

// UpperBounds returns a copy of the finite bucket bounds.
func (h *Histogram) UpperBounds() []float64 {
	out := make([]float64, len(h.upperBounds))
	copy(out, h.upperBounds)
	return out
}

// Snapshot returns the bucket counts, sum and count of every observation
// started before the call. The last bucket's count always equals Count.
//
// Concurrent Snapshot calls run one at a time. Observe keeps running while a
// snapshot is taken.
func (h *Histogram) Snapshot() HistogramSnapshot {
	h.snapMu.Lock()
	defer h.snapMu.Unlock()

	// flip the hot bit; observations from now on go to the other set
	n := h.countAndHotIdx.Add(1 << 63)
	count := n & (1<<63 - 1)
	hot := h.counts[n>>63]
	cold := h.counts[(^n)>>63]

	// wait for observations that picked cold before the flip
	for cold.count.Get() != count {
		runtime.Gosched()
	}

	s := HistogramSnapshot{
		Buckets: make([]Bucket, len(cold.buckets)),
		Sum:     cold.sum.Get(),
		Count:   count,
	}
	for i := range cold.buckets {
		bound := math.Inf(1)
		if i < len(h.upperBounds) {
			bound = h.upperBounds[i]
		}
		s.Buckets[i] = Bucket{UpperBound: bound, Count: cold.buckets[i].Get()}
	}

	// fold cold into hot so the next snapshot sees the full history
	for i := range cold.buckets {
		hot.buckets[i].Add(cold.buckets[i].Get())
		cold.buckets[i].Set(0)
	}
	hot.sum.Add(cold.sum.Get())
	cold.sum.Set(0)
	hot.count.Add(count)
	cold.count.Set(0)
	return s
}

// Type reports TypeHistogram.
func (h *Histogram) Type() Type { return TypeHistogram }

// Encode writes a snapshot of the histogram to w.
func (h *Histogram) Encode(labels LabelSet, w SampleWriter) error {
	return w.WriteHistogram(labels, h.Snapshot())
}

// Collect writes the histogram as a single unlabelled series.
func (h *Histogram) Collect(w SampleWriter) error {
	return h.Encode(NoLabels{}, w)
}
