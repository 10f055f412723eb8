package hypothesis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"statbook/domain/core"
	"statbook/internal"
)

// Polynomial coefficients from Royston (1995), algorithm AS R94
var (
	swC1 = []float64{0, 0.221157, -0.147981, -2.07119, 4.434685, -2.706056}
	swC2 = []float64{0, 0.042981, -0.293762, -1.752461, 5.682633, -3.582633}
	swC3 = []float64{0.544, -0.39978, 0.025054, -6.714e-4}
	swC4 = []float64{1.3822, -0.77857, 0.062767, -0.0020322}
	swC5 = []float64{-1.5861, -0.31082, -0.083751, 0.0038915}
	swC6 = []float64{-0.4803, -0.082676, 0.0030302}
	swG  = []float64{-2.273, 0.459}
)

const swMaxN = 5000

// poly evaluates c[0] + c[1]*x + c[2]*x^2 + ...
func poly(c []float64, x float64) float64 {
	result := 0.0
	for i := len(c) - 1; i >= 0; i-- {
		result = result*x + c[i]
	}
	return result
}

// ShapiroWilk tests the null hypothesis that x was drawn from a normal
// distribution. The statistic is W; p-values follow Royston's approximation.
func ShapiroWilk(x []float64) (Result, error) {
	data := omitNaN(x)
	n := len(data)
	if n < 3 {
		return Result{}, core.NewInsufficientDataError("shapiro", 3, n)
	}
	if n > swMaxN {
		internal.DefaultLogger.Warn("shapiro: p-value may be inaccurate for n=%d > %d", n, swMaxN)
	}
	sort.Float64s(data)

	if data[n-1]-data[0] < 1e-19 {
		internal.DefaultLogger.Warn("shapiro: input data has range zero, returning W=1")
		return Result{Statistic: 1, PValue: 1, N: n}, nil
	}

	a := swCoefficients(n)

	mean := sum(data) / float64(n)
	var ssq, num float64
	for _, v := range data {
		d := v - mean
		ssq += d * d
	}
	for i := range a {
		num += a[i] * (data[n-1-i] - data[i])
	}
	w := num * num / ssq
	if w > 1 {
		w = 1
	}

	return Result{Statistic: w, PValue: swPValue(w, n), N: n}, nil
}

// swCoefficients returns the upper half of the antisymmetric weight vector,
// largest weight first.
func swCoefficients(n int) []float64 {
	half := n / 2
	a := make([]float64, half)
	if n == 3 {
		a[0] = math.Sqrt(0.5)
		return a
	}

	an := float64(n)
	m := make([]float64, half)
	var summ2 float64
	for i := range m {
		m[i] = distuv.UnitNormal.Quantile((float64(i+1) - 0.375) / (an + 0.25))
		summ2 += m[i] * m[i]
	}
	summ2 *= 2
	ssumm2 := math.Sqrt(summ2)
	rsn := 1 / math.Sqrt(an)
	a1 := poly(swC1, rsn) - m[0]/ssumm2

	first := 1
	var fac float64
	if n > 5 {
		first = 2
		a2 := -m[1]/ssumm2 + poly(swC2, rsn)
		fac = math.Sqrt((summ2 - 2*m[0]*m[0] - 2*m[1]*m[1]) / (1 - 2*a1*a1 - 2*a2*a2))
		a[1] = a2
	} else {
		fac = math.Sqrt((summ2 - 2*m[0]*m[0]) / (1 - 2*a1*a1))
	}
	a[0] = a1
	for i := first; i < half; i++ {
		a[i] = -m[i] / fac
	}
	return a
}

func swPValue(w float64, n int) float64 {
	if n == 3 {
		const pi6, stqr = 6 / math.Pi, math.Pi / 3
		p := pi6 * (math.Asin(math.Sqrt(w)) - stqr)
		return math.Max(0, math.Min(1, p))
	}

	an := float64(n)
	y := math.Log(1 - w)
	var m, s float64
	if n <= 11 {
		gamma := poly(swG, an)
		if y >= gamma {
			return 1e-99
		}
		y = -math.Log(gamma - y)
		m = poly(swC3, an)
		s = math.Exp(poly(swC4, an))
	} else {
		xx := math.Log(an)
		m = poly(swC5, xx)
		s = math.Exp(poly(swC6, xx))
	}
	return distuv.UnitNormal.Survival((y - m) / s)
}
