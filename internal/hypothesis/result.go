package hypothesis

import "statbook/domain/stats"

// Result is the raw outcome of a statistical routine
type Result struct {
	Statistic float64
	PValue    float64
	N         int // observations used after omitting missing values
}

// Decide applies the significance threshold to the result
func (r Result) Decide(test stats.TestName, alpha float64) stats.TestResult {
	return stats.NewTestResult(test, r.Statistic, r.PValue, alpha)
}
