package plotting

import (
	"math"
)

// Bins selects the histogram binning. AutoBins picks the count from the data;
// any positive value is used as a fixed bin count.
type Bins int

// AutoBins chooses the smaller bin width of the Sturges and Freedman-Diaconis rules
const AutoBins Bins = 0

// binCount resolves the number of histogram bins for s
func (b Bins) binCount(s Summary) int {
	if b > 0 {
		return int(b)
	}
	span := s.Max - s.Min
	if span == 0 || s.N < 2 {
		return 1
	}
	n := float64(s.N)

	sturges := span / (math.Log2(n) + 1)
	width := sturges
	if fd := 2 * (s.Q3 - s.Q1) * math.Pow(n, -1.0/3); fd > 0 {
		width = math.Min(fd, sturges)
	}
	return max(1, int(math.Ceil(span/width)))
}
