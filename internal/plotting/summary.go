package plotting

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"statbook/domain/core"
	"statbook/internal/profiling"
)

// Summary holds the reference values drawn on a distribution composite
type Summary struct {
	N      int
	Mean   float64
	Median float64
	Mode   float64 // smallest of the most frequent values
	Min    float64
	Max    float64
	Q1     float64
	Q3     float64
	Bins   int
}

// Summarize computes the reference values of x, ignoring NaNs
func Summarize(x []float64) (Summary, error) {
	data := make(stats.Float64Data, 0, len(x))
	for _, v := range x {
		if !math.IsNaN(v) {
			data = append(data, v)
		}
	}
	if len(data) == 0 {
		return Summary{}, core.NewInsufficientDataError("histogram", 1, 0)
	}

	s := Summary{N: len(data)}
	var err error
	if s.Mean, err = data.Mean(); err != nil {
		return Summary{}, err
	}
	if s.Median, err = data.Median(); err != nil {
		return Summary{}, err
	}
	if s.Min, err = data.Min(); err != nil {
		return Summary{}, err
	}
	if s.Max, err = data.Max(); err != nil {
		return Summary{}, err
	}
	modes, err := data.Mode()
	if err != nil {
		return Summary{}, err
	}
	if len(modes) > 0 {
		s.Mode = modes[0]
	} else {
		// every value occurs once, so every value is a mode
		s.Mode = s.Min
	}

	sorted := append([]float64(nil), data...)
	sort.Float64s(sorted)
	s.Q1 = profiling.Quantile(sorted, 0.25)
	s.Q3 = profiling.Quantile(sorted, 0.75)
	return s, nil
}
