package plotting

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statbook/domain/core"
	"statbook/domain/dataset"
)

func sampleDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New(dataset.NewNumericColumn("value",
		[]float64{1, 2, 2, 3, 3, 3, 4, math.NaN(), 10}))
	require.NoError(t, err)
	return ds
}

func TestSummarize(t *testing.T) {
	s, err := Summarize([]float64{1, 2, 2, 3, 3, 3, 4, math.NaN(), 10})
	require.NoError(t, err)
	assert.Equal(t, 8, s.N)
	assert.InDelta(t, 3.5, s.Mean, 1e-12)
	assert.Equal(t, 3.0, s.Median)
	assert.Equal(t, 3.0, s.Mode)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 10.0, s.Max)
	assert.InDelta(t, 2.0, s.Q1, 1e-12)
	assert.InDelta(t, 3.25, s.Q3, 1e-12)

	s, err = Summarize([]float64{4, 1, 3, 2})
	require.NoError(t, err)
	assert.InDelta(t, 1.75, s.Q1, 1e-12)
	assert.InDelta(t, 3.25, s.Q3, 1e-12)
}

func TestSummarize_FirstModeIsSmallest(t *testing.T) {
	s, err := Summarize([]float64{5, 5, 1, 1, 3})
	require.NoError(t, err)
	assert.Equal(t, 1.0, s.Mode)

	s, err = Summarize([]float64{7, 4, 9})
	require.NoError(t, err)
	assert.Equal(t, 4.0, s.Mode, "all values unique")
}

func TestSummarize_Empty(t *testing.T) {
	_, err := Summarize([]float64{math.NaN()})
	assert.ErrorIs(t, err, core.ErrInsufficientData)
}

func TestBins(t *testing.T) {
	s := Summary{N: 100, Min: 0, Max: 10, Q1: 2.5, Q3: 7.5}
	assert.Equal(t, 7, Bins(7).binCount(s))

	// wide IQR: Sturges width 10/(log2(100)+1) is narrower than FD
	assert.Equal(t, 8, AutoBins.binCount(s))

	// narrow IQR: FD width 2/100^(1/3) wins
	s.Q1, s.Q3 = 4.5, 5.5
	assert.Equal(t, 24, AutoBins.binCount(s))

	assert.Equal(t, 1, AutoBins.binCount(Summary{N: 5, Min: 2, Max: 2}))

	// zero IQR falls back to Sturges
	s = Summary{N: 8, Min: 0, Max: 8, Q1: 3, Q3: 3}
	assert.Equal(t, 4, AutoBins.binCount(s))
}

func TestHistBox_PNG(t *testing.T) {
	var buf bytes.Buffer
	summary, err := HistBox(sampleDataset(t), "value", &buf, DefaultOptions())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")), "output is a PNG")
	assert.Equal(t, 3.0, summary.Mode)
	assert.GreaterOrEqual(t, summary.Bins, 1)
}

func TestHistBox_SVGWithFixedBins(t *testing.T) {
	opts := DefaultOptions()
	opts.Format = SVG
	opts.Bins = 4

	var buf bytes.Buffer
	summary, err := HistBox(sampleDataset(t), "value", &buf, opts)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "<svg")
	assert.Equal(t, 4, summary.Bins)
}

func TestHistBox_Errors(t *testing.T) {
	var buf bytes.Buffer
	_, err := HistBox(sampleDataset(t), "missing", &buf, DefaultOptions())
	assert.ErrorIs(t, err, core.ErrColumnNotFound)

	opts := DefaultOptions()
	opts.Format = "gif"
	_, err = HistBox(sampleDataset(t), "value", &buf, opts)
	assert.ErrorIs(t, err, core.ErrInvalidOption)
	assert.Zero(t, buf.Len())
}
