package hypothesis

import (
	"math"

	"statbook/domain/core"
	domainstats "statbook/domain/stats"
)

// wilcoxonExactMaxN bounds the sample size for the exact null distribution
const wilcoxonExactMaxN = 50

// Wilcoxon is the signed-rank test on the paired differences a - b. Zero
// differences are discarded. For the two-sided alternative the statistic is
// min(R+, R-); for one-sided alternatives it is R+.
func Wilcoxon(a, b []float64, alt domainstats.Alternative) (Result, error) {
	pairs, err := completeCases(a, b)
	if err != nil {
		return Result{}, err
	}

	d := make([]float64, 0, len(pairs[0]))
	zeros := 0
	for i := range pairs[0] {
		diff := pairs[0][i] - pairs[1][i]
		if diff == 0 {
			zeros++
			continue
		}
		d = append(d, diff)
	}
	n := len(d)
	if n == 0 {
		return Result{}, core.NewInsufficientDataError("wilcoxon", 1, 0)
	}

	abs := make([]float64, n)
	for i, v := range d {
		abs[i] = math.Abs(v)
	}
	ranks, ties := rankAverage(abs)

	var rPlus, rMinus float64
	for i, v := range d {
		if v > 0 {
			rPlus += ranks[i]
		} else {
			rMinus += ranks[i]
		}
	}

	statistic := rPlus
	if alt == domainstats.TwoSided || alt == "" {
		statistic = math.Min(rPlus, rMinus)
	}

	var p float64
	if n <= wilcoxonExactMaxN && len(ties) == 0 && zeros == 0 {
		p = wilcoxonExactPValue(rPlus, statistic, n, alt)
	} else {
		mean := float64(n*(n+1)) / 4
		variance := (float64(n*(n+1)*(2*n+1)) - 0.5*tieTerm(ties)) / 24
		z := (statistic - mean) / math.Sqrt(variance)
		if alt == domainstats.TwoSided || alt == "" {
			p = normalPValue(-math.Abs(z), domainstats.Less) * 2
			p = math.Min(1, p)
		} else {
			p = normalPValue(z, alt)
		}
	}

	return Result{Statistic: statistic, PValue: p, N: n}, nil
}

// signedRankCounts returns, for every achievable R+ value s, the number of
// sign assignments over ranks 1..n producing it.
func signedRankCounts(n int) []float64 {
	total := n * (n + 1) / 2
	counts := make([]float64, total+1)
	counts[0] = 1
	for r := 1; r <= n; r++ {
		for s := total; s >= r; s-- {
			counts[s] += counts[s-r]
		}
	}
	return counts
}

func wilcoxonExactPValue(rPlus, statistic float64, n int, alt domainstats.Alternative) float64 {
	counts := signedRankCounts(n)
	outcomes := math.Exp2(float64(n))

	cdf := func(w int) float64 {
		if w < 0 {
			return 0
		}
		if w >= len(counts) {
			w = len(counts) - 1
		}
		var c float64
		for s := 0; s <= w; s++ {
			c += counts[s]
		}
		return c / outcomes
	}

	switch alt {
	case domainstats.Less:
		return cdf(int(math.Round(rPlus)))
	case domainstats.Greater:
		return 1 - cdf(int(math.Round(rPlus))-1)
	default:
		return math.Min(1, 2*cdf(int(math.Round(statistic))))
	}
}
