package hypothesis

import (
	"statbook/domain/core"
)

// Friedman tests whether k >= 3 repeated measurements on the same subjects
// share a distribution. Each sample is one treatment; rows with any missing
// value are dropped.
func Friedman(samples ...[]float64) (Result, error) {
	k := len(samples)
	if k < 3 {
		return Result{}, core.NewSampleCountError("friedman", ">= 3", k)
	}
	rows, err := completeCases(samples...)
	if err != nil {
		return Result{}, err
	}
	n := len(rows[0])
	if n == 0 {
		return Result{}, core.NewInsufficientDataError("friedman", 1, 0)
	}

	rankSums := make([]float64, k)
	var ties float64
	block := make([]float64, k)
	for r := 0; r < n; r++ {
		for j := 0; j < k; j++ {
			block[j] = rows[j][r]
		}
		ranks, t := rankAverage(block)
		for j, rk := range ranks {
			rankSums[j] += rk
		}
		ties += tieTerm(t)
	}

	fk, fn := float64(k), float64(n)
	var ssr float64
	for _, rs := range rankSums {
		ssr += rs * rs
	}
	chi2 := 12/(fn*fk*(fk+1))*ssr - 3*fn*(fk+1)
	correction := 1 - ties/(fn*fk*(fk*fk-1))
	chi2 /= correction

	return Result{Statistic: chi2, PValue: chiSquareSurvival(chi2, k-1), N: n}, nil
}
