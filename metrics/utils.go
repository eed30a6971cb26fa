package metrics

// DefBuckets are general purpose bucket bounds for latencies in seconds,
// from 5ms to 10s.
var DefBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// LinearBuckets returns count bounds, the first being start and each
// following one width larger.
//
// It returns nil if count is less than 1, which NewHistogram rejects.
//
// Example:
//
//	metrics.LinearBuckets(10, 10, 4) // [10 20 30 40]
func LinearBuckets(start, width float64, count int) []float64 {
	if count < 1 {
		return nil
	}
	buckets := make([]float64, count)
	for i := range buckets {
		buckets[i] = start
		start += width
	}
	return buckets
}

// ExponentialBuckets returns count bounds, the first being start and each
// following one factor times larger.
//
// It returns nil if count is less than 1, start is not positive or factor
// is not greater than 1.
//
// Example:
//
//	metrics.ExponentialBuckets(1, 2, 5) // [1 2 4 8 16]
func ExponentialBuckets(start, factor float64, count int) []float64 {
	if count < 1 || start <= 0 || factor <= 1 {
		return nil
	}
	buckets := make([]float64, count)
	for i := range buckets {
		buckets[i] = start
		start *= factor
	}
	return buckets
}
