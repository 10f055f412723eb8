package hypothesis

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"statbook/domain/stats"
)

// tailPValue picks the tail probability for the alternative hypothesis
func tailPValue(cdf, sf float64, alt stats.Alternative) float64 {
	switch alt {
	case stats.Less:
		return cdf
	case stats.Greater:
		return sf
	default:
		return math.Min(1, 2*math.Min(cdf, sf))
	}
}

// studentTPValue computes the p-value of a t statistic with df degrees of freedom
func studentTPValue(t, df float64, alt stats.Alternative) float64 {
	if math.IsNaN(t) || df <= 0 {
		return math.NaN()
	}
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return tailPValue(dist.CDF(t), dist.Survival(t), alt)
}

// normalPValue computes the p-value of a standard normal score
func normalPValue(z float64, alt stats.Alternative) float64 {
	if math.IsNaN(z) {
		return math.NaN()
	}
	return tailPValue(distuv.UnitNormal.CDF(z), distuv.UnitNormal.Survival(z), alt)
}

// fSurvival computes the upper tail of the F distribution (ANOVA, Levene)
func fSurvival(f float64, df1, df2 int) float64 {
	if math.IsNaN(f) || df1 <= 0 || df2 <= 0 {
		return math.NaN()
	}
	return distuv.F{D1: float64(df1), D2: float64(df2)}.Survival(f)
}

// chiSquareSurvival computes the upper tail of the chi-square distribution
func chiSquareSurvival(x float64, df int) float64 {
	if math.IsNaN(x) || df <= 0 {
		return math.NaN()
	}
	return distuv.ChiSquared{K: float64(df)}.Survival(x)
}
