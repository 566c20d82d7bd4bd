package stattest

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// tStatThreshold is the 5% one-sided normal critical value used by the
// t-stat lag-selection rule to decide whether the last lag is significant.
const tStatThreshold = 1.6449

// adfFit captures the pieces of one fitted ADF regression that the test
// and the lag-selection search need.
type adfFit struct {
	stat     float64 // t-statistic of the lagged-level coefficient
	lastLagT float64 // t-statistic of the highest lagged difference
	ssr      float64
	nobs     int
	nparams  int
}

// buildRegression assembles the design matrix and response vector for an
// ADF regression with the given number of lagged differences. Rows start
// at index start of the differenced series so that lag-selection can fit
// every candidate on a common sample.
func buildRegression(data []float64, regression Regression, lags, start int) (*mat.Dense, *mat.VecDense) {
	diffs := make([]float64, len(data)-1)
	for i := range diffs {
		diffs[i] = data[i+1] - data[i]
	}

	rows := len(diffs) - start
	cols := 1 + lags + nDeterministic(regression)

	x := mat.NewDense(rows, cols, nil)
	y := mat.NewVecDense(rows, nil)

	for j := 0; j < rows; j++ {
		t := start + j
		y.SetVec(j, diffs[t])

		// Lagged level first so its t-statistic is always column zero.
		x.Set(j, 0, data[t])
		for l := 1; l <= lags; l++ {
			x.Set(j, l, diffs[t-l])
		}
		switch regression {
		case RegressionConstant:
			x.Set(j, 1+lags, 1)
		case RegressionConstantTrend:
			x.Set(j, 1+lags, 1)
			x.Set(j, 2+lags, float64(j+1))
		}
	}

	return x, y
}

// olsFit solves the least-squares problem and returns per-coefficient
// t-statistics alongside the residual sum of squares.
func olsFit(x *mat.Dense, y *mat.VecDense) (tstats []float64, ssr float64, err error) {
	rows, cols := x.Dims()
	df := rows - cols
	if df < 1 {
		return nil, 0, fmt.Errorf("not enough observations for %d regressors", cols)
	}

	var beta mat.VecDense
	if err := beta.SolveVec(x, y); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrDegenerateSeries, err)
	}

	var fitted mat.VecDense
	fitted.MulVec(x, &beta)

	ssr = 0
	for i := 0; i < rows; i++ {
		r := y.AtVec(i) - fitted.AtVec(i)
		ssr += r * r
	}

	sigma2 := ssr / float64(df)
	if sigma2 <= 0 || sigma2 < 1e-290 {
		return nil, 0, ErrDegenerateSeries
	}

	var xtx, inv mat.Dense
	xtx.Mul(x.T(), x)
	if err := inv.Inverse(&xtx); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrDegenerateSeries, err)
	}

	tstats = make([]float64, cols)
	for i := 0; i < cols; i++ {
		se := math.Sqrt(sigma2 * inv.At(i, i))
		if se == 0 || math.IsNaN(se) {
			return nil, 0, ErrDegenerateSeries
		}
		tstats[i] = beta.AtVec(i) / se
	}

	return tstats, ssr, nil
}

// fitADF fits the test regression with the given lag order on the longest
// usable sample.
func fitADF(data []float64, regression Regression, lags int) (*adfFit, error) {
	x, y := buildRegression(data, regression, lags, lags)
	rows, cols := x.Dims()

	tstats, ssr, err := olsFit(x, y)
	if err != nil {
		return nil, err
	}

	fit := &adfFit{
		stat:    tstats[0],
		ssr:     ssr,
		nobs:    rows,
		nparams: cols,
	}
	if lags > 0 {
		fit.lastLagT = tstats[lags]
	}
	return fit, nil
}

// selectLags picks the lag order within [0, maxLags] according to the
// requested method. Information-criterion methods fit every candidate on
// a common sample aligned at maxLags; the t-stat method walks down from
// maxLags until the last lagged difference is significant.
func selectLags(data []float64, regression Regression, maxLags int, method LagMethod) (int, error) {
	if maxLags == 0 {
		return 0, nil
	}

	fitAt := func(k int) (*adfFit, error) {
		x, y := buildRegression(data, regression, k, maxLags)
		rows, cols := x.Dims()
		tstats, ssr, err := olsFit(x, y)
		if err != nil {
			return nil, err
		}
		fit := &adfFit{stat: tstats[0], ssr: ssr, nobs: rows, nparams: cols}
		if k > 0 {
			fit.lastLagT = tstats[k]
		}
		return fit, nil
	}

	if method == LagMethodTStat {
		for k := maxLags; k >= 1; k-- {
			fit, err := fitAt(k)
			if err != nil {
				return 0, err
			}
			if math.Abs(fit.lastLagT) >= tStatThreshold {
				return k, nil
			}
		}
		return 0, nil
	}

	best := 0
	bestIC := math.Inf(1)
	for k := 0; k <= maxLags; k++ {
		fit, err := fitAt(k)
		if err != nil {
			return 0, err
		}
		ic := informationCriterion(fit, method)
		if ic < bestIC {
			bestIC = ic
			best = k
		}
	}
	return best, nil
}

// informationCriterion computes the per-observation AIC or BIC of a fit.
// Constant terms common to all candidates are dropped since only the
// ordering matters for selection.
func informationCriterion(fit *adfFit, method LagMethod) float64 {
	n := float64(fit.nobs)
	k := float64(fit.nparams)
	logSigma2 := math.Log(fit.ssr / n)
	if method == LagMethodBIC {
		return logSigma2 + k*math.Log(n)/n
	}
	return logSigma2 + 2*k/n
}
