package profiling

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuantile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"lower quartile", []float64{1, 2, 3, 4}, 0.25, 1.75},
		{"upper quartile", []float64{1, 2, 3, 4}, 0.75, 3.25},
		{"median of odd length", []float64{1, 2, 2, 3, 3, 3, 4, 10}, 0.5, 3},
		{"minimum", []float64{1, 2, 3, 4}, 0, 1},
		{"maximum", []float64{1, 2, 3, 4}, 1, 4},
		{"single value", []float64{7}, 0.25, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Quantile(tt.sorted, tt.p), 1e-12)
		})
	}

	assert.True(t, math.IsNaN(Quantile(nil, 0.5)))
	assert.True(t, math.IsNaN(Quantile([]float64{1}, 1.5)))
}
