package profiling

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statbook/domain/dataset"
)

func TestProfileColumn(t *testing.T) {
	col := dataset.NewNumericColumn("x", []float64{2, 4, 4, math.NaN(), 4, 5, 5, 7, 9, 30})

	p := ProfileColumn(col)
	assert.Equal(t, "x", p.Column)
	assert.Equal(t, 9, p.N)
	assert.Equal(t, 1, p.Missing)
	assert.InDelta(t, 7.777777777777778, p.Mean, 1e-9)
	assert.InDelta(t, 8.56997342145496, p.StdDev, 1e-9)
	assert.Equal(t, 5.0, p.Median)
	assert.Equal(t, 2.0, p.Min)
	assert.Equal(t, 30.0, p.Max)
	assert.Equal(t, 4.0, p.Q1)
	assert.Equal(t, 7.0, p.Q3)
	assert.InDelta(t, 2.700918689576976, p.Skewness, 1e-9)
	assert.InDelta(t, 7.630047373716136, p.Kurtosis, 1e-9)
	assert.Equal(t, 1, p.Outliers)
	assert.Less(t, p.ShapiroP, 0.05)
}

func TestProfileColumn_InterpolatedQuartiles(t *testing.T) {
	p := ProfileColumn(dataset.NewNumericColumn("x", []float64{3, 1, 4, 2}))
	assert.InDelta(t, 1.75, p.Q1, 1e-12)
	assert.InDelta(t, 2.5, p.Median, 1e-12)
	assert.InDelta(t, 3.25, p.Q3, 1e-12)
	assert.Equal(t, 0, p.Outliers)
}

func TestProfileColumn_TextAndTinyColumns(t *testing.T) {
	text := ProfileColumn(dataset.NewTextColumn("grade", []string{"A", "B", "", "A"}))
	assert.Equal(t, 3, text.N)
	assert.Equal(t, 1, text.Missing)
	assert.True(t, math.IsNaN(text.Mean))

	pair := ProfileColumn(dataset.NewNumericColumn("pair", []float64{1, 3}))
	assert.Equal(t, 2.0, pair.Mean)
	assert.True(t, math.IsNaN(pair.Skewness))
	assert.True(t, math.IsNaN(pair.ShapiroP))

	constant := ProfileColumn(dataset.NewNumericColumn("flat", []float64{4, 4, 4, 4}))
	assert.Equal(t, 0.0, constant.StdDev)
	assert.True(t, math.IsNaN(constant.Kurtosis))
}

func TestWriteText(t *testing.T) {
	ds, err := dataset.New(
		dataset.NewNumericColumn("a", []float64{1, 2, 3, 4}),
		dataset.NewTextColumn("b", []string{"x", "y", "x", "z"}),
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, ProfileDataset(ds)))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "shapiro_p")
	assert.Contains(t, lines[1], "2.500")
	assert.Contains(t, lines[2], "-")
}
