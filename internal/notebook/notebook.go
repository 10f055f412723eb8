// Package notebook provides the notebook-style helpers: each runs a
// statistical test over the columns of a dataset and prints the statistic and
// a plain-language conclusion against a significance threshold.
package notebook

import (
	"fmt"
	"io"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"statbook/domain/core"
	"statbook/domain/dataset"
	"statbook/domain/stats"
	"statbook/internal"
	"statbook/internal/errors"
	"statbook/internal/hypothesis"
)

// Config holds the defaults shared by every helper
type Config struct {
	Language language.Tag
	Alpha    float64
	Logger   *internal.Logger
}

// Notebook writes test reports to an output stream
type Notebook struct {
	out     io.Writer
	printer *message.Printer
	alpha   float64
	logger  *internal.Logger
}

// New creates a notebook writing to out. A zero Alpha means DefaultAlpha.
func New(out io.Writer, cfg Config) *Notebook {
	alpha := cfg.Alpha
	if alpha == 0 {
		alpha = stats.DefaultAlpha
	}
	logger := cfg.Logger
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Notebook{
		out:     out,
		printer: message.NewPrinter(cfg.Language),
		alpha:   alpha,
		logger:  logger,
	}
}

type settings struct {
	alpha       float64
	center      stats.Center
	alternative stats.Alternative
	equalVar    bool
}

// Option adjusts a single test run
type Option func(*settings)

// WithAlpha sets the significance threshold
func WithAlpha(alpha float64) Option {
	return func(s *settings) { s.alpha = alpha }
}

// WithCenter sets the location statistic for Levene's test
func WithCenter(center stats.Center) Option {
	return func(s *settings) { s.center = center }
}

// WithAlternative sets the alternative hypothesis direction
func WithAlternative(alt stats.Alternative) Option {
	return func(s *settings) { s.alternative = alt }
}

// WithEqualVariances chooses between Student's (true) and Welch's (false) t-test
func WithEqualVariances(equal bool) Option {
	return func(s *settings) { s.equalVar = equal }
}

func (nb *Notebook) settings(opts []Option) settings {
	s := settings{
		alpha:       nb.alpha,
		center:      stats.CenterMean,
		alternative: stats.TwoSided,
		equalVar:    true,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func (nb *Notebook) line(key string, args ...interface{}) {
	nb.printer.Fprintf(nb.out, key, args...)
	fmt.Fprintln(nb.out)
}

// conclusion picks the sentence for each branch of the decision rule
type conclusion struct {
	failToReject string
	reject       string
}

var nullHypothesis = conclusion{failToReject: msgFailToReject, reject: msgRejectNull}

// report prints the statistic and the decision for one routine result
func (nb *Notebook) report(test stats.TestName, label string, r hypothesis.Result, alpha float64, c conclusion, args ...interface{}) stats.TestResult {
	nb.line(msgStatistic, nb.printer.Sprintf(label), threeDecimals(r.Statistic))
	result := r.Decide(test, alpha)
	key := c.reject
	if !result.Rejected() {
		key = c.failToReject
	}
	nb.line(key, append(args, threeDecimals(r.PValue))...)
	return result
}

// threeDecimals renders a number the same way in every language: a point as
// decimal separator and no digit grouping
func threeDecimals(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func (nb *Notebook) run(test stats.TestName, header, label string, ds *dataset.Dataset, opts []Option,
	routine func(s settings, samples [][]float64) (hypothesis.Result, error)) (stats.TestResult, error) {
	s := nb.settings(opts)
	nb.line(header)
	nb.logger.Debug("%s: %d columns, alpha=%g", test, ds.Width(), s.alpha)

	r, err := routine(s, ds.Vectors())
	if err != nil {
		return stats.TestResult{}, errors.Wrapf(err, "%s", test)
	}
	return nb.report(test, label, r, s.alpha, nullHypothesis), nil
}

// Shapiro runs the Shapiro-Wilk normality test on every column
func (nb *Notebook) Shapiro(ds *dataset.Dataset, opts ...Option) ([]stats.TestResult, error) {
	s := nb.settings(opts)
	nb.line(msgShapiroHeader)

	results := make([]stats.TestResult, 0, ds.Width())
	for _, col := range ds.Columns() {
		r, err := hypothesis.ShapiroWilk(col.Values)
		if err != nil {
			return results, errors.Wrapf(err, "%s: column %q", stats.TestShapiroWilk, col.Name)
		}
		result := nb.report(stats.TestShapiroWilk, labelShapiro, r, s.alpha,
			conclusion{failToReject: msgNormal, reject: msgNotNormal}, col.Name)
		result.Sample = col.Name
		results = append(results, result)
	}
	return results, nil
}

// Levene tests whether all columns have equal variances
func (nb *Notebook) Levene(ds *dataset.Dataset, opts ...Option) (stats.TestResult, error) {
	s := nb.settings(opts)
	nb.line(msgLeveneHeader)
	nb.logger.Debug("%s: %d columns, center=%s", stats.TestLevene, ds.Width(), s.center)

	r, err := hypothesis.Levene(s.center, ds.Vectors()...)
	if err != nil {
		return stats.TestResult{}, errors.Wrapf(err, "%s", stats.TestLevene)
	}
	return nb.report(stats.TestLevene, labelLevene, r, s.alpha,
		conclusion{failToReject: msgEqualVar, reject: msgUnequalVar}), nil
}

// ShapiroLevene checks normality of every column, then homogeneity of variances
func (nb *Notebook) ShapiroLevene(ds *dataset.Dataset, opts ...Option) ([]stats.TestResult, error) {
	results, err := nb.Shapiro(ds, opts...)
	if err != nil {
		return results, err
	}
	fmt.Fprintln(nb.out)

	levene, err := nb.Levene(ds, opts...)
	if err != nil {
		return results, err
	}
	return append(results, levene), nil
}

// TTestInd compares the means of two independent columns
func (nb *Notebook) TTestInd(ds *dataset.Dataset, opts ...Option) (stats.TestResult, error) {
	return nb.run(stats.TestTTestInd, msgStudentHeader, labelTTest, ds, opts,
		func(s settings, samples [][]float64) (hypothesis.Result, error) {
			a, b, err := hypothesis.ExactlyTwo(string(stats.TestTTestInd), samples)
			if err != nil {
				return hypothesis.Result{}, err
			}
			return hypothesis.TTestInd(a, b, s.equalVar, s.alternative)
		})
}

// TTestRel compares the means of two paired columns
func (nb *Notebook) TTestRel(ds *dataset.Dataset, opts ...Option) (stats.TestResult, error) {
	return nb.run(stats.TestTTestRel, msgStudentHeader, labelTTest, ds, opts,
		func(s settings, samples [][]float64) (hypothesis.Result, error) {
			a, b, err := hypothesis.ExactlyTwo(string(stats.TestTTestRel), samples)
			if err != nil {
				return hypothesis.Result{}, err
			}
			return hypothesis.TTestRel(a, b, s.alternative)
		})
}

// ANOVA compares the means of two or more independent columns
func (nb *Notebook) ANOVA(ds *dataset.Dataset, opts ...Option) (stats.TestResult, error) {
	return nb.run(stats.TestANOVA, msgANOVAHeader, labelF, ds, opts,
		func(_ settings, samples [][]float64) (hypothesis.Result, error) {
			return hypothesis.OneWayANOVA(samples...)
		})
}

// Wilcoxon runs the signed-rank test on two paired columns
func (nb *Notebook) Wilcoxon(ds *dataset.Dataset, opts ...Option) (stats.TestResult, error) {
	return nb.run(stats.TestWilcoxon, msgWilcoxonHeader, labelWilcoxon, ds, opts,
		func(s settings, samples [][]float64) (hypothesis.Result, error) {
			a, b, err := hypothesis.ExactlyTwo(string(stats.TestWilcoxon), samples)
			if err != nil {
				return hypothesis.Result{}, err
			}
			return hypothesis.Wilcoxon(a, b, s.alternative)
		})
}

// MannWhitney runs the rank-sum test on two independent columns
func (nb *Notebook) MannWhitney(ds *dataset.Dataset, opts ...Option) (stats.TestResult, error) {
	return nb.run(stats.TestMannWhitneyU, msgMannWhitneyHeader, labelMannWhitney, ds, opts,
		func(s settings, samples [][]float64) (hypothesis.Result, error) {
			a, b, err := hypothesis.ExactlyTwo(string(stats.TestMannWhitneyU), samples)
			if err != nil {
				return hypothesis.Result{}, err
			}
			return hypothesis.MannWhitneyU(a, b, s.alternative)
		})
}

// Friedman compares three or more repeated measurements
func (nb *Notebook) Friedman(ds *dataset.Dataset, opts ...Option) (stats.TestResult, error) {
	return nb.run(stats.TestFriedman, msgFriedmanHeader, labelFriedman, ds, opts,
		func(_ settings, samples [][]float64) (hypothesis.Result, error) {
			return hypothesis.Friedman(samples...)
		})
}

// Kruskal compares two or more independent columns by rank
func (nb *Notebook) Kruskal(ds *dataset.Dataset, opts ...Option) (stats.TestResult, error) {
	return nb.run(stats.TestKruskal, msgKruskalHeader, labelKruskal, ds, opts,
		func(_ settings, samples [][]float64) (hypothesis.Result, error) {
			return hypothesis.Kruskal(samples...)
		})
}

// Run dispatches to the helper named by test
func (nb *Notebook) Run(test stats.TestName, ds *dataset.Dataset, opts ...Option) ([]stats.TestResult, error) {
	single := func(r stats.TestResult, err error) ([]stats.TestResult, error) {
		if err != nil {
			return nil, err
		}
		return []stats.TestResult{r}, nil
	}

	switch test {
	case stats.TestShapiroWilk:
		return nb.Shapiro(ds, opts...)
	case stats.TestLevene:
		return single(nb.Levene(ds, opts...))
	case stats.TestShapiroLevene:
		return nb.ShapiroLevene(ds, opts...)
	case stats.TestTTestInd:
		return single(nb.TTestInd(ds, opts...))
	case stats.TestTTestRel:
		return single(nb.TTestRel(ds, opts...))
	case stats.TestANOVA:
		return single(nb.ANOVA(ds, opts...))
	case stats.TestWilcoxon:
		return single(nb.Wilcoxon(ds, opts...))
	case stats.TestMannWhitneyU:
		return single(nb.MannWhitney(ds, opts...))
	case stats.TestFriedman:
		return single(nb.Friedman(ds, opts...))
	case stats.TestKruskal:
		return single(nb.Kruskal(ds, opts...))
	}
	return nil, fmt.Errorf("%w %q", core.ErrTestNotFound, test)
}
