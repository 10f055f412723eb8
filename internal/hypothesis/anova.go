package hypothesis

import (
	"gonum.org/v1/gonum/stat"

	"statbook/domain/core"
)

// OneWayANOVA tests the null hypothesis that two or more groups share the
// same population mean.
func OneWayANOVA(samples ...[]float64) (Result, error) {
	k := len(samples)
	if k < 2 {
		return Result{}, core.NewSampleCountError("anova", ">= 2", k)
	}
	samples = omitNaNAll(samples)

	total := 0
	for _, s := range samples {
		if len(s) == 0 {
			return Result{}, core.NewInsufficientDataError("anova", 1, 0)
		}
		total += len(s)
	}
	if total <= k {
		return Result{}, core.NewInsufficientDataError("anova", k+1, total)
	}

	f, err := fStatistic(samples)
	if err != nil {
		return Result{}, err
	}
	return Result{Statistic: f, PValue: fSurvival(f, k-1, total-k), N: total}, nil
}

// fStatistic is the ratio of between-group to within-group mean squares
func fStatistic(groups [][]float64) (float64, error) {
	k := len(groups)
	var all []float64
	for _, g := range groups {
		all = append(all, g...)
	}
	n := len(all)
	if n <= k {
		return 0, core.NewInsufficientDataError("f-test", k+1, n)
	}
	grand := stat.Mean(all, nil)

	var ssBetween, ssWithin float64
	for _, g := range groups {
		m := stat.Mean(g, nil)
		d := m - grand
		ssBetween += float64(len(g)) * d * d
		for _, v := range g {
			e := v - m
			ssWithin += e * e
		}
	}

	msBetween := ssBetween / float64(k-1)
	msWithin := ssWithin / float64(n-k)
	return msBetween / msWithin, nil
}
