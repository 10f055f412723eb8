package hypothesis

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"statbook/domain/core"
	domainstats "statbook/domain/stats"
)

// LeveneTrimProportion is cut from each end of a sample when center is trimmed
const LeveneTrimProportion = 0.05

// Levene tests the null hypothesis that all samples come from populations with
// equal variances. center selects the location the absolute deviations are
// measured from (the median variant is the Brown-Forsythe test).
func Levene(center domainstats.Center, samples ...[]float64) (Result, error) {
	k := len(samples)
	if k < 2 {
		return Result{}, core.NewSampleCountError("levene", ">= 2", k)
	}
	samples = omitNaNAll(samples)

	deviations := make([][]float64, k)
	total := 0
	for i, s := range samples {
		if len(s) == 0 {
			return Result{}, core.NewInsufficientDataError("levene", 1, 0)
		}
		if center == domainstats.CenterTrimmed {
			s = trimBoth(s, LeveneTrimProportion)
		}
		c, err := location(center, s)
		if err != nil {
			return Result{}, err
		}
		z := make([]float64, len(s))
		for j, v := range s {
			z[j] = math.Abs(v - c)
		}
		deviations[i] = z
		total += len(z)
	}

	// one-way ANOVA on the absolute deviations
	f, err := fStatistic(deviations)
	if err != nil {
		return Result{}, err
	}
	return Result{Statistic: f, PValue: fSurvival(f, k-1, total-k), N: total}, nil
}

func location(center domainstats.Center, x []float64) (float64, error) {
	switch center {
	case domainstats.CenterMedian:
		return stats.Median(x)
	case domainstats.CenterMean, domainstats.CenterTrimmed, "":
		return stat.Mean(x, nil), nil
	}
	return 0, core.NewOptionError("center", string(center))
}

// trimBoth sorts x and drops int(proportion*n) values from each end
func trimBoth(x []float64, proportion float64) []float64 {
	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)
	cut := int(proportion * float64(len(sorted)))
	if 2*cut >= len(sorted) {
		return sorted
	}
	return sorted[cut : len(sorted)-cut]
}
