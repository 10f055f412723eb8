package stats

import (
	"fmt"
	"strings"

	"statbook/domain/core"
)

// DefaultAlpha is the significance threshold used when none is supplied
const DefaultAlpha = 0.05

// TestName identifies a hypothesis test
type TestName string

const (
	TestShapiroWilk  TestName = "shapiro"
	TestLevene       TestName = "levene"
	TestTTestInd     TestName = "ttest_ind"
	TestTTestRel     TestName = "ttest_rel"
	TestANOVA        TestName = "anova"
	TestWilcoxon     TestName = "wilcoxon"
	TestMannWhitneyU TestName = "mannwhitneyu"
	TestFriedman     TestName = "friedman"
	TestKruskal      TestName = "kruskal"

	// TestShapiroLevene runs Shapiro-Wilk on every column, then Levene
	TestShapiroLevene TestName = "shapiro_levene"
)

// TestNames lists every runnable test
var TestNames = []TestName{
	TestShapiroWilk, TestLevene, TestShapiroLevene, TestTTestInd, TestTTestRel,
	TestANOVA, TestWilcoxon, TestMannWhitneyU, TestFriedman, TestKruskal,
}

// ParseTestName validates a test name
func ParseTestName(s string) (TestName, error) {
	name := TestName(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range TestNames {
		if name == known {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w %q", core.ErrTestNotFound, s)
}

// Alternative is the direction of the alternative hypothesis
type Alternative string

const (
	TwoSided Alternative = "two-sided"
	Less     Alternative = "less"
	Greater  Alternative = "greater"
)

// ParseAlternative validates an alternative hypothesis name
func ParseAlternative(s string) (Alternative, error) {
	switch Alternative(strings.ToLower(strings.TrimSpace(s))) {
	case "", TwoSided:
		return TwoSided, nil
	case Less:
		return Less, nil
	case Greater:
		return Greater, nil
	}
	return "", core.NewOptionError("alternative", s)
}

// Center is the location statistic Levene's test measures deviations from
type Center string

const (
	CenterMean    Center = "mean"
	CenterMedian  Center = "median"
	CenterTrimmed Center = "trimmed"
)

// ParseCenter validates a Levene center name
func ParseCenter(s string) (Center, error) {
	switch Center(strings.ToLower(strings.TrimSpace(s))) {
	case "", CenterMean:
		return CenterMean, nil
	case CenterMedian:
		return CenterMedian, nil
	case CenterTrimmed:
		return CenterTrimmed, nil
	}
	return "", core.NewOptionError("center", s)
}

// Decision is the outcome of comparing a p-value with alpha
type Decision string

const (
	FailToReject Decision = "fail_to_reject"
	Reject       Decision = "reject"
)

// Decide rejects the null hypothesis unless p is strictly greater than alpha
func Decide(pValue, alpha float64) Decision {
	if pValue > alpha {
		return FailToReject
	}
	return Reject
}

// TestResult is the outcome of a single hypothesis test
type TestResult struct {
	Test      TestName `json:"test"`
	Sample    string   `json:"sample,omitempty"` // column name for per-column tests
	Statistic float64  `json:"statistic"`
	PValue    float64  `json:"p_value"`
	Alpha     float64  `json:"alpha"`
	Decision  Decision `json:"decision"`
}

// NewTestResult builds a result and applies the decision rule
func NewTestResult(test TestName, statistic, pValue, alpha float64) TestResult {
	return TestResult{
		Test:      test,
		Statistic: statistic,
		PValue:    pValue,
		Alpha:     alpha,
		Decision:  Decide(pValue, alpha),
	}
}

// Rejected reports whether the null hypothesis was rejected
func (r TestResult) Rejected() bool {
	return r.Decision == Reject
}
