package stattest

import "math"

// MacKinnon (1994) approximate asymptotic p-value regressions. The test
// statistic is mapped through a fitted polynomial to a normal quantile;
// which polynomial applies depends on whether the statistic falls in the
// small-p or large-p region.
var (
	tauStar = map[Regression]float64{
		RegressionNone:          -1.04,
		RegressionConstant:      -1.61,
		RegressionConstantTrend: -2.89,
	}
	tauMin = map[Regression]float64{
		RegressionNone:          -19.04,
		RegressionConstant:      -18.83,
		RegressionConstantTrend: -16.18,
	}
	tauMax = map[Regression]float64{
		RegressionNone:          1.51,
		RegressionConstant:      2.74,
		RegressionConstantTrend: 0.70,
	}
	tauSmallP = map[Regression][]float64{
		RegressionNone:          {0.6344, 1.2378, 3.2496e-2},
		RegressionConstant:      {2.1659, 1.4412, 3.8269e-2},
		RegressionConstantTrend: {3.2512, 1.6047, 4.9588e-2},
	}
	tauLargeP = map[Regression][]float64{
		RegressionNone:          {0.4797, 9.3557e-1, -6.999e-2, 3.3066e-3},
		RegressionConstant:      {1.7339, 9.3202e-1, -1.2745e-1, -1.0368e-2},
		RegressionConstantTrend: {2.5261, 6.1654e-1, -3.7956e-1, -6.0285e-2},
	}
)

// MacKinnon (2010) response-surface estimates of finite-sample critical
// values: crit = b0 + b1/N + b2/N^2 + b3/N^3.
var critSurface = map[Regression][3][4]float64{
	RegressionNone: {
		{-2.56574, -2.2358, -3.627, 0},       // 1%
		{-1.94100, -0.2686, -3.365, 31.223},  // 5%
		{-1.61682, 0.2656, -2.714, 25.364},   // 10%
	},
	RegressionConstant: {
		{-3.43035, -6.5393, -16.786, -79.433},
		{-2.86154, -2.8903, -4.234, -40.040},
		{-2.56677, -1.5384, -2.809, 0},
	},
	RegressionConstantTrend: {
		{-3.95877, -9.0531, -28.428, -134.155},
		{-3.41049, -4.3904, -9.036, -45.374},
		{-3.12705, -2.5856, -3.925, -22.380},
	},
}

// mackinnonPValue returns the approximate asymptotic p-value for an ADF
// statistic under the given regression kind.
func mackinnonPValue(stat float64, regression Regression) float64 {
	if stat > tauMax[regression] {
		return 1.0
	}
	if stat < tauMin[regression] {
		return 0.0
	}

	var coeffs []float64
	if stat <= tauStar[regression] {
		coeffs = tauSmallP[regression]
	} else {
		coeffs = tauLargeP[regression]
	}

	return normCDF(polyval(coeffs, stat))
}

// mackinnonCriticalValues evaluates the finite-sample response surface at
// the given effective sample size.
func mackinnonCriticalValues(regression Regression, nobs int) CriticalValues {
	n := float64(nobs)
	surface := critSurface[regression]
	eval := func(b [4]float64) float64 {
		return b[0] + b[1]/n + b[2]/(n*n) + b[3]/(n*n*n)
	}
	return CriticalValues{
		Pct1:  eval(surface[0]),
		Pct5:  eval(surface[1]),
		Pct10: eval(surface[2]),
	}
}

// polyval evaluates c[0] + c[1]*x + c[2]*x^2 + ...
func polyval(coeffs []float64, x float64) float64 {
	sum := 0.0
	pow := 1.0
	for _, c := range coeffs {
		sum += c * pow
		pow *= x
	}
	return sum
}

// normCDF is the standard normal cumulative distribution function.
func normCDF(x float64) float64 {
	return 0.5 * math.Erfc(-x/math.Sqrt2)
}
