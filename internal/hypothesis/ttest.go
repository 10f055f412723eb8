package hypothesis

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"statbook/domain/core"
	domainstats "statbook/domain/stats"
)

// TTestInd compares the means of two independent samples. With equalVar the
// pooled-variance Student test is used, otherwise Welch's test.
func TTestInd(a, b []float64, equalVar bool, alt domainstats.Alternative) (Result, error) {
	a, b = omitNaN(a), omitNaN(b)
	n1, n2 := float64(len(a)), float64(len(b))
	if len(a) < 2 || len(b) < 2 {
		return Result{}, core.NewInsufficientDataError("ttest_ind", 2, min(len(a), len(b)))
	}

	m1, v1 := stat.MeanVariance(a, nil)
	m2, v2 := stat.MeanVariance(b, nil)

	var se2, df float64
	if equalVar {
		df = n1 + n2 - 2
		pooled := ((n1-1)*v1 + (n2-1)*v2) / df
		se2 = pooled * (1/n1 + 1/n2)
	} else {
		q1, q2 := v1/n1, v2/n2
		se2 = q1 + q2
		df = se2 * se2 / (q1*q1/(n1-1) + q2*q2/(n2-1))
	}

	t := (m1 - m2) / math.Sqrt(se2)
	return Result{Statistic: t, PValue: studentTPValue(t, df, alt), N: len(a) + len(b)}, nil
}

// TTestRel compares the means of two related samples (paired observations).
// Pairs with a missing side are dropped.
func TTestRel(a, b []float64, alt domainstats.Alternative) (Result, error) {
	pairs, err := completeCases(a, b)
	if err != nil {
		return Result{}, err
	}
	n := len(pairs[0])
	if n < 2 {
		return Result{}, core.NewInsufficientDataError("ttest_rel", 2, n)
	}

	d := make([]float64, n)
	for i := range d {
		d[i] = pairs[0][i] - pairs[1][i]
	}
	m, v := stat.MeanVariance(d, nil)
	t := m / math.Sqrt(v/float64(n))
	return Result{Statistic: t, PValue: studentTPValue(t, float64(n-1), alt), N: n}, nil
}
