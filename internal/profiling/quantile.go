package profiling

import "math"

// Quantile returns the p-quantile of sorted data by linear interpolation
// between closest ranks (Hyndman-Fan type 7, the numpy and pandas default).
// sorted must be ascending and free of NaN.
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 || p < 0 || p > 1 {
		return math.NaN()
	}
	h := float64(n-1) * p
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}
