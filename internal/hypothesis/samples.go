package hypothesis

import (
	"math"
	"sort"

	"statbook/domain/core"
)

// omitNaN returns a copy of x without missing observations
func omitNaN(x []float64) []float64 {
	out := make([]float64, 0, len(x))
	for _, v := range x {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// omitNaNAll applies omitNaN to every sample
func omitNaNAll(samples [][]float64) [][]float64 {
	out := make([][]float64, len(samples))
	for i, s := range samples {
		out[i] = omitNaN(s)
	}
	return out
}

// completeCases drops every row in which any sample is missing. Samples must
// be positionally aligned.
func completeCases(samples ...[]float64) ([][]float64, error) {
	if len(samples) == 0 {
		return nil, nil
	}
	n := len(samples[0])
	for _, s := range samples[1:] {
		if len(s) != n {
			return nil, core.ErrUnequalLengths
		}
	}

	out := make([][]float64, len(samples))
	for i := range out {
		out[i] = make([]float64, 0, n)
	}
rows:
	for r := 0; r < n; r++ {
		for _, s := range samples {
			if math.IsNaN(s[r]) {
				continue rows
			}
		}
		for i, s := range samples {
			out[i] = append(out[i], s[r])
		}
	}
	return out, nil
}

// rankAverage assigns 1-based ranks to x, giving tied values the mean of the
// ranks they span. It also returns the size of every tie group (groups of one
// are omitted).
func rankAverage(x []float64) (ranks []float64, ties []int) {
	n := len(x)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return x[idx[a]] < x[idx[b]] })

	ranks = make([]float64, n)
	for i := 0; i < n; {
		j := i + 1
		for j < n && x[idx[j]] == x[idx[i]] {
			j++
		}
		// positions i..j-1 share ranks i+1..j
		avg := float64(i+1+j) / 2
		for k := i; k < j; k++ {
			ranks[idx[k]] = avg
		}
		if j-i > 1 {
			ties = append(ties, j-i)
		}
		i = j
	}
	return ranks, ties
}

// tieTerm returns sum(t^3 - t) over tie group sizes
func tieTerm(ties []int) float64 {
	var sum float64
	for _, t := range ties {
		ft := float64(t)
		sum += ft*ft*ft - ft
	}
	return sum
}

func sum(x []float64) float64 {
	var s float64
	for _, v := range x {
		s += v
	}
	return s
}

// ExactlyTwo unpacks the samples of a two-sample test
func ExactlyTwo(test string, samples [][]float64) ([]float64, []float64, error) {
	if len(samples) != 2 {
		return nil, nil, core.NewSampleCountError(test, "exactly 2", len(samples))
	}
	return samples[0], samples[1], nil
}
