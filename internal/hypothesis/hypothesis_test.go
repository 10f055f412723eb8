package hypothesis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statbook/domain/core"
	domainstats "statbook/domain/stats"
)

const tol = 1e-6

var (
	leveneA = []float64{8.88, 9.12, 9.04, 8.98, 9.00, 9.08, 9.01, 8.85, 9.06, 8.99}
	leveneB = []float64{8.88, 8.95, 9.29, 9.44, 9.15, 9.58, 8.36, 9.18, 8.67, 9.05}
	leveneC = []float64{8.95, 9.12, 8.95, 8.85, 9.03, 8.84, 9.07, 8.98, 8.86, 8.98}
)

func TestShapiroWilk_KnownValues(t *testing.T) {
	tests := []struct {
		name  string
		data  []float64
		wantW float64
		wantP float64
	}{
		{"skewed n=11", []float64{148, 154, 158, 160, 161, 162, 166, 170, 182, 195, 236}, 0.7888146948353878, 0.006703814056502999},
		{"n=3 exact", []float64{1, 2, 4}, 0.9642857142857146, 0.6368868450289714},
		{"n=5", []float64{2.1, 3.4, 1.9, 5.6, 4.4}, 0.9320849396015234, 0.6106559050550942},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ShapiroWilk(tt.data)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantW, r.Statistic, tol)
			assert.InDelta(t, tt.wantP, r.PValue, tol)
		})
	}
}

func TestShapiroWilk_OmitsMissingAndRejectsTinySamples(t *testing.T) {
	withNaN := []float64{148, math.NaN(), 154, 158, 160, 161, 162, 166, 170, 182, 195, 236}
	r, err := ShapiroWilk(withNaN)
	require.NoError(t, err)
	assert.Equal(t, 11, r.N)
	assert.InDelta(t, 0.7888146948353878, r.Statistic, tol)

	_, err = ShapiroWilk([]float64{1, math.NaN(), 2})
	assert.ErrorIs(t, err, core.ErrInsufficientData)
}

func TestShapiroWilk_ConstantInput(t *testing.T) {
	r, err := ShapiroWilk([]float64{3, 3, 3, 3})
	require.NoError(t, err)
	assert.Equal(t, 1.0, r.Statistic)
	assert.Equal(t, 1.0, r.PValue)
}

func TestShapiroWilk_NormalScoresLookNormal(t *testing.T) {
	// expected normal order statistics are as normal as a sample gets
	n := 60
	x := make([]float64, n)
	for i := range x {
		x[i] = math.Sqrt2 * math.Erfinv(2*(float64(i)+0.5)/float64(n)-1)
	}
	r, err := ShapiroWilk(x)
	require.NoError(t, err)
	assert.Greater(t, r.Statistic, 0.98)
	assert.Greater(t, r.PValue, 0.5)
}

func TestLevene_Centers(t *testing.T) {
	tests := []struct {
		center domainstats.Center
		stat   float64
		p      float64
	}{
		{domainstats.CenterMedian, 7.584952754501659, 0.0024315059672496936},
		{domainstats.CenterMean, 7.905194483442055, 0.0019837958174727366},
		{domainstats.CenterTrimmed, 7.905194483442052, 0.001983795817472742},
	}
	for _, tt := range tests {
		t.Run(string(tt.center), func(t *testing.T) {
			r, err := Levene(tt.center, leveneA, leveneB, leveneC)
			require.NoError(t, err)
			assert.InDelta(t, tt.stat, r.Statistic, tol)
			assert.InDelta(t, tt.p, r.PValue, tol)
		})
	}
}

func TestLevene_Errors(t *testing.T) {
	_, err := Levene(domainstats.CenterMean, leveneA)
	assert.ErrorIs(t, err, core.ErrInvalidSamples)

	_, err = Levene("mode", leveneA, leveneB)
	assert.ErrorIs(t, err, core.ErrInvalidOption)
}

func TestTTestInd(t *testing.T) {
	s1 := []float64{2, 1, 3, 4}
	s2 := []float64{6, 5, 7, 9}

	r, err := TTestInd(s1, s2, true, domainstats.TwoSided)
	require.NoError(t, err)
	assert.InDelta(t, -3.9703446152237674, r.Statistic, tol)
	assert.InDelta(t, 0.0073640592242113214, r.PValue, tol)

	r, err = TTestInd(s1, s2, false, domainstats.TwoSided)
	require.NoError(t, err)
	assert.InDelta(t, 0.0085128631313781695, r.PValue, tol)

	less, err := TTestInd(s1, s2, true, domainstats.Less)
	require.NoError(t, err)
	greater, err := TTestInd(s1, s2, true, domainstats.Greater)
	require.NoError(t, err)
	assert.InDelta(t, 0.0073640592242113214/2, less.PValue, tol)
	assert.InDelta(t, 1, less.PValue+greater.PValue, tol)
}

func TestTTestInd_IdenticalSamples(t *testing.T) {
	s := []float64{2, 1, 3, 4, math.NaN()}
	r, err := TTestInd(s, s, true, domainstats.TwoSided)
	require.NoError(t, err)
	assert.Equal(t, 0.0, r.Statistic)
	assert.InDelta(t, 1.0, r.PValue, 1e-12)
	assert.Equal(t, 8, r.N)
}

func TestTTestRel(t *testing.T) {
	r, err := TTestRel([]float64{2, 1, 3, 4}, []float64{6, 5, 7, 9}, domainstats.TwoSided)
	require.NoError(t, err)
	assert.InDelta(t, -17.0, r.Statistic, tol)
	assert.InDelta(t, 0.00044334353831207749, r.PValue, tol)

	// the pair with a missing side is dropped
	r, err = TTestRel([]float64{2, 1, 3, 4, 100}, []float64{6, 5, 7, 9, math.NaN()}, domainstats.TwoSided)
	require.NoError(t, err)
	assert.Equal(t, 4, r.N)
	assert.InDelta(t, -17.0, r.Statistic, tol)

	_, err = TTestRel([]float64{1, 2, 3}, []float64{1, 2}, domainstats.TwoSided)
	assert.ErrorIs(t, err, core.ErrUnequalLengths)
}

func TestOneWayANOVA(t *testing.T) {
	tillamook := []float64{0.0571, 0.0813, 0.0831, 0.0976, 0.0817, 0.0859, 0.0735, 0.0659, 0.0923, 0.0836}
	newport := []float64{0.0873, 0.0662, 0.0672, 0.0819, 0.0749, 0.0649, 0.0835, 0.0725}
	petersburg := []float64{0.0974, 0.1352, 0.0817, 0.1016, 0.0968, 0.1064, 0.105}
	magadan := []float64{0.1033, 0.0915, 0.0781, 0.0685, 0.0677, 0.0697, 0.0764, 0.0689}
	tvarminne := []float64{0.0703, 0.1026, 0.0956, 0.0973, 0.1039, 0.1045}

	r, err := OneWayANOVA(tillamook, newport, petersburg, magadan, tvarminne)
	require.NoError(t, err)
	assert.InDelta(t, 7.121019471642447, r.Statistic, tol)
	assert.InDelta(t, 0.0002812242314534544, r.PValue, tol)

	_, err = OneWayANOVA(tillamook)
	assert.ErrorIs(t, err, core.ErrInvalidSamples)
}

func TestWilcoxon_Exact(t *testing.T) {
	d := []float64{6, 8, 14, 16, 23, 24, 28, 29, 41, -48, 49, 56, 60, -67, 75}
	zeros := make([]float64, len(d))

	r, err := Wilcoxon(d, zeros, domainstats.TwoSided)
	require.NoError(t, err)
	assert.Equal(t, 24.0, r.Statistic)
	assert.InDelta(t, 0.041259765625, r.PValue, 1e-12)

	r, err = Wilcoxon(d, zeros, domainstats.Greater)
	require.NoError(t, err)
	assert.Equal(t, 96.0, r.Statistic)
	assert.InDelta(t, 0.0206298828125, r.PValue, 1e-12)

	r, err = Wilcoxon(d, zeros, domainstats.Less)
	require.NoError(t, err)
	assert.InDelta(t, 0.982330322265625, r.PValue, 1e-12)
}

func TestWilcoxon_NormalApproximationWithTiesAndZeros(t *testing.T) {
	a := []float64{125, 115, 130, 140, 140, 115, 140, 125, 140, 135}
	b := []float64{110, 122, 125, 120, 140, 124, 123, 137, 135, 145}

	r, err := Wilcoxon(a, b, domainstats.TwoSided)
	require.NoError(t, err)
	assert.Equal(t, 9, r.N, "zero difference is discarded")
	assert.Equal(t, 18.0, r.Statistic)
	assert.InDelta(t, 0.5936305914425295, r.PValue, tol)
}

func TestMannWhitneyU(t *testing.T) {
	males := []float64{19, 22, 16, 29, 24}
	females := []float64{20, 11, 17, 12}

	r, err := MannWhitneyU(males, females, domainstats.TwoSided)
	require.NoError(t, err)
	assert.Equal(t, 17.0, r.Statistic)
	assert.InDelta(t, 0.1111111111111111, r.PValue, 1e-12)

	r, err = MannWhitneyU(males, females, domainstats.Greater)
	require.NoError(t, err)
	assert.InDelta(t, 0.05555555555555555, r.PValue, 1e-12)

	r, err = MannWhitneyU([]float64{1, 2, 3, 4}, []float64{5, 6, 7, 8}, domainstats.TwoSided)
	require.NoError(t, err)
	assert.Equal(t, 0.0, r.Statistic)
	assert.InDelta(t, 2.0/70, r.PValue, 1e-12)
}

func TestMannWhitneyU_ExactWhenOneSampleIsSmall(t *testing.T) {
	a := []float64{1.1, 2.3, 3.5, 4.2, 5.9}
	b := []float64{3.0, 4.8, 5.1, 6.3, 6.7, 7.2, 7.9, 8.4, 9.1, 9.6, 10.2, 11.5}

	r, err := MannWhitneyU(a, b, domainstats.TwoSided)
	require.NoError(t, err)
	assert.Equal(t, 5.0, r.Statistic)
	assert.InDelta(t, 0.006140917905623788, r.PValue, 1e-12)

	r, err = MannWhitneyU(a, b, domainstats.Greater)
	require.NoError(t, err)
	assert.InDelta(t, 0.9980607627666451, r.PValue, 1e-12)

	// the larger sample first gives the same exact p-value
	r, err = MannWhitneyU(b, a, domainstats.TwoSided)
	require.NoError(t, err)
	assert.Equal(t, 55.0, r.Statistic)
	assert.InDelta(t, 0.006140917905623788, r.PValue, 1e-12)
}

func TestMannWhitneyU_Asymptotic(t *testing.T) {
	x := []float64{1, 2, 2, 3, 4, 5, 6, 7, 8, 9}
	y := []float64{3, 4, 4, 5, 6, 7, 8, 9, 10, 11}

	r, err := MannWhitneyU(x, y, domainstats.TwoSided)
	require.NoError(t, err)
	assert.Equal(t, 30.0, r.Statistic)
	assert.InDelta(t, 0.1388211445072094, r.PValue, tol)

	r, err = MannWhitneyU(x, y, domainstats.Less)
	require.NoError(t, err)
	assert.InDelta(t, 0.0694105722536047, r.PValue, tol)
}

func TestFriedman(t *testing.T) {
	before := []float64{72, 96, 88, 92, 74, 76, 82}
	immediately := []float64{120, 120, 132, 120, 101, 96, 112}
	after := []float64{76, 95, 104, 96, 84, 72, 76}

	r, err := Friedman(before, immediately, after)
	require.NoError(t, err)
	assert.InDelta(t, 10.57142857142857, r.Statistic, tol)
	assert.InDelta(t, 0.005063414171757498, r.PValue, tol)

	_, err = Friedman(before, after)
	assert.ErrorIs(t, err, core.ErrInvalidSamples)
}

func TestKruskal(t *testing.T) {
	r, err := Kruskal([]float64{1, 3, 5, 7, 9}, []float64{2, 4, 6, 8, 10})
	require.NoError(t, err)
	assert.InDelta(t, 0.2727272727272734, r.Statistic, tol)
	assert.InDelta(t, 0.6015081344405895, r.PValue, tol)

	r, err = Kruskal([]float64{1, 1, 1}, []float64{2, 2, 2}, []float64{2, 2, math.NaN()})
	require.NoError(t, err)
	assert.InDelta(t, 7.0, r.Statistic, tol)
	assert.InDelta(t, 0.0301973834223185, r.PValue, tol)

	_, err = Kruskal([]float64{4, 4}, []float64{4, 4})
	assert.ErrorIs(t, err, core.ErrInvalidSamples)
}

func TestRankAverage(t *testing.T) {
	ranks, ties := rankAverage([]float64{10, 20, 10, 30, 20, 20})
	assert.Equal(t, []float64{1.5, 4, 1.5, 6, 4, 4}, ranks)
	assert.ElementsMatch(t, []int{2, 3}, ties)
	assert.Equal(t, 6.0+24.0, tieTerm(ties))
}

func TestSignedRankCounts_SumToPowerOfTwo(t *testing.T) {
	for n := 1; n <= 20; n++ {
		assert.Equal(t, math.Exp2(float64(n)), sum(signedRankCounts(n)), "n=%d", n)
	}
}

func TestMannWhitneyCounts_SumToBinomial(t *testing.T) {
	counts := mannWhitneyCounts(4, 4)
	assert.Len(t, counts, 17)
	assert.Equal(t, 70.0, sum(counts))
	assert.Equal(t, 1.0, counts[0])
	assert.Equal(t, 1.0, counts[16])

	// 5 of 17 ranks
	assert.Equal(t, 6188.0, sum(mannWhitneyCounts(5, 12)))
	assert.Equal(t, mannWhitneyCounts(5, 12), mannWhitneyCounts(12, 5))
}

func TestExactlyTwo(t *testing.T) {
	a, b, err := ExactlyTwo("ttest_ind", [][]float64{{1}, {2}})
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, a)
	assert.Equal(t, []float64{2}, b)

	_, _, err = ExactlyTwo("ttest_ind", [][]float64{{1}, {2}, {3}})
	assert.ErrorIs(t, err, core.ErrInvalidSamples)
}
