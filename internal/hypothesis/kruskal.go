package hypothesis

import (
	"fmt"

	"statbook/domain/core"
)

// Kruskal is the Kruskal-Wallis H-test for two or more independent samples.
func Kruskal(samples ...[]float64) (Result, error) {
	k := len(samples)
	if k < 2 {
		return Result{}, core.NewSampleCountError("kruskal", ">= 2", k)
	}
	samples = omitNaNAll(samples)

	var pooled []float64
	for _, s := range samples {
		if len(s) == 0 {
			return Result{}, core.NewInsufficientDataError("kruskal", 1, 0)
		}
		pooled = append(pooled, s...)
	}
	ranks, ties := rankAverage(pooled)

	n := float64(len(pooled))
	var h float64
	offset := 0
	for _, s := range samples {
		r := sum(ranks[offset : offset+len(s)])
		h += r * r / float64(len(s))
		offset += len(s)
	}
	h = 12/(n*(n+1))*h - 3*(n+1)

	correction := 1 - tieTerm(ties)/(n*n*n-n)
	if correction == 0 {
		return Result{}, fmt.Errorf("%w: all numbers are identical in kruskal", core.ErrInvalidSamples)
	}
	h /= correction

	return Result{Statistic: h, PValue: chiSquareSurvival(h, k-1), N: len(pooled)}, nil
}
