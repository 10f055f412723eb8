// Package profiling summarizes the shape of every numeric column of a dataset.
package profiling

import (
	"fmt"
	"io"
	"math"
	"sort"
	"text/tabwriter"

	"github.com/montanaflynn/stats"

	"statbook/domain/dataset"
	"statbook/internal"
	"statbook/internal/hypothesis"
)

// Profile holds the descriptive statistics of one column
type Profile struct {
	Column   string
	N        int
	Missing  int
	Mean     float64
	StdDev   float64 // sample standard deviation
	Min      float64
	Q1       float64
	Median   float64
	Q3       float64
	Max      float64
	Skewness float64 // adjusted Fisher-Pearson
	Kurtosis float64 // bias-corrected excess kurtosis
	Outliers int     // beyond 1.5 IQR from the quartiles
	ShapiroP float64
}

// ProfileColumn computes the profile of col. Text columns and columns with no
// observations yield a profile with only the counts filled in.
func ProfileColumn(col *dataset.Column) Profile {
	p := Profile{
		Column:   col.Name,
		Missing:  col.MissingCount(),
		Mean:     math.NaN(),
		StdDev:   math.NaN(),
		Min:      math.NaN(),
		Q1:       math.NaN(),
		Median:   math.NaN(),
		Q3:       math.NaN(),
		Max:      math.NaN(),
		Skewness: math.NaN(),
		Kurtosis: math.NaN(),
		ShapiroP: math.NaN(),
	}
	if !col.IsNumeric() {
		p.N = col.Len() - p.Missing
		return p
	}

	data := stats.Float64Data(col.Observed())
	p.N = data.Len()
	if p.N == 0 {
		return p
	}

	p.Mean, _ = data.Mean()
	p.Min, _ = data.Min()
	p.Max, _ = data.Max()
	p.Median, _ = data.Median()

	sorted := append([]float64(nil), data...)
	sort.Float64s(sorted)
	p.Q1 = Quantile(sorted, 0.25)
	p.Q3 = Quantile(sorted, 0.75)
	p.Outliers = detectOutliers(sorted, p.Q1, p.Q3)

	if p.N > 1 {
		p.StdDev, _ = data.StandardDeviationSample()
	}
	p.Skewness = calculateSkewness(sorted, p.Mean)
	p.Kurtosis = calculateKurtosis(sorted, p.Mean)

	if r, err := hypothesis.ShapiroWilk(sorted); err == nil {
		p.ShapiroP = r.PValue
	} else {
		internal.DefaultLogger.Debug("profiling %s: %v", col.Name, err)
	}
	return p
}

// ProfileDataset profiles every column in dataset order
func ProfileDataset(ds *dataset.Dataset) []Profile {
	profiles := make([]Profile, 0, ds.Width())
	for _, col := range ds.Columns() {
		profiles = append(profiles, ProfileColumn(col))
	}
	return profiles
}

// centralMoment returns the k-th population central moment
func centralMoment(data []float64, mean float64, k int) float64 {
	m := 0.0
	for _, x := range data {
		m += math.Pow(x-mean, float64(k))
	}
	return m / float64(len(data))
}

// calculateSkewness computes sample skewness using the adjusted Fisher-Pearson coefficient
func calculateSkewness(data []float64, mean float64) float64 {
	n := float64(len(data))
	if n < 3 {
		return math.NaN()
	}
	m2 := centralMoment(data, mean, 2)
	if m2 == 0 {
		return math.NaN()
	}
	g1 := centralMoment(data, mean, 3) / math.Pow(m2, 1.5)
	return g1 * math.Sqrt(n*(n-1)) / (n - 2)
}

// calculateKurtosis computes the bias-corrected sample excess kurtosis
func calculateKurtosis(data []float64, mean float64) float64 {
	n := float64(len(data))
	if n < 4 {
		return math.NaN()
	}
	m2 := centralMoment(data, mean, 2)
	if m2 == 0 {
		return math.NaN()
	}
	g2 := centralMoment(data, mean, 4)/(m2*m2) - 3
	return ((n+1)*g2 + 6) * (n - 1) / ((n - 2) * (n - 3))
}

// detectOutliers identifies outliers using IQR method
func detectOutliers(data []float64, q1, q3 float64) int {
	iqr := q3 - q1
	lowerBound := q1 - 1.5*iqr
	upperBound := q3 + 1.5*iqr

	outlierCount := 0
	for _, x := range data {
		if x < lowerBound || x > upperBound {
			outlierCount++
		}
	}
	return outlierCount
}

var profileHeaders = []string{"n", "missing", "mean", "std", "min", "25%", "50%", "75%", "max", "skew", "kurt", "outliers", "shapiro_p"}

// WriteText prints one row per column with aligned fields
func WriteText(w io.Writer, profiles []Profile) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "column\t")
	for _, h := range profileHeaders {
		fmt.Fprintf(tw, "%s\t", h)
	}
	fmt.Fprintln(tw)
	for _, p := range profiles {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%d\t%s\t\n",
			p.Column, p.N, p.Missing,
			num(p.Mean), num(p.StdDev), num(p.Min), num(p.Q1), num(p.Median), num(p.Q3), num(p.Max),
			num(p.Skewness), num(p.Kurtosis), p.Outliers, num(p.ShapiroP))
	}
	return tw.Flush()
}

func num(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.3f", v)
}
