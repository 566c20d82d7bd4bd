package stattest

import (
	"errors"
	"fmt"
	"math"
)

// Regression identifies which deterministic terms enter the test regression.
type Regression string

// Supported regression kinds
const (
	RegressionNone          Regression = "n"
	RegressionConstant      Regression = "c"
	RegressionConstantTrend Regression = "ct"
)

// LagMethod identifies the criterion used to pick the number of lagged
// difference terms in the test regression.
type LagMethod string

// Supported lag-selection methods
const (
	LagMethodAIC   LagMethod = "aic"
	LagMethodBIC   LagMethod = "bic"
	LagMethodTStat LagMethod = "t-stat"
)

// SignificanceLevel is the fixed threshold used to decide stationarity.
const SignificanceLevel = 0.05

// MinSeriesLength is the smallest series the test accepts, counted both
// before and after non-finite values are dropped.
const MinSeriesLength = 10

// Common validation errors
var (
	ErrSeriesTooShort    = fmt.Errorf("series must contain at least %d observations", MinSeriesLength)
	ErrInvalidRegression = errors.New("regression must be one of 'n', 'c', 'ct'")
	ErrInvalidLagMethod  = errors.New("lag method must be one of 'aic', 'bic', 't-stat'")
	ErrNegativeMaxLags   = errors.New("max lags must be non-negative")
	ErrDegenerateSeries  = errors.New("series is numerically degenerate, test statistic is undefined")
)

var regressionDescriptions = map[Regression]string{
	RegressionNone:          "no deterministic terms",
	RegressionConstant:      "constant only",
	RegressionConstantTrend: "constant and linear trend",
}

var lagMethodDescriptions = map[LagMethod]string{
	LagMethodAIC:   "Akaike information criterion",
	LagMethodBIC:   "Bayesian information criterion",
	LagMethodTStat: "t-statistic significance of the last lag",
}

// CriticalValues holds the test's critical values at the three
// conventional significance levels.
type CriticalValues struct {
	Pct1  float64 `json:"1%"`
	Pct5  float64 `json:"5%"`
	Pct10 float64 `json:"10%"`
}

// Result is the outcome of a single ADF test.
type Result struct {
	Statistic             float64        `json:"statistic"`
	PValue                float64        `json:"p_value"`
	CriticalValues        CriticalValues `json:"critical_values"`
	IsStationary          bool           `json:"is_stationary"`
	LagsUsed              int            `json:"lags_used"`
	RegressionType        string         `json:"regression_type"`
	RegressionDescription string         `json:"regression_description"`
	LagsMethod            string         `json:"lags_method"`
	LagsMethodDescription string         `json:"lags_method_description"`
	DataLength            int            `json:"data_length"`
	MaxLags               int            `json:"max_lags"`
}

// Tester runs ADF stationarity tests. The zero value is ready to use.
type Tester struct{}

// NewTester creates a new Tester.
func NewTester() *Tester {
	return &Tester{}
}

// Clean returns a copy of the series with NaN and infinite values removed.
func Clean(series []float64) []float64 {
	out := make([]float64, 0, len(series))
	for _, v := range series {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Test runs the ADF test on the given series and returns a structured
// result. The series is cleaned of non-finite values first; validation
// errors are returned before any regression is attempted.
func (t *Tester) Test(series []float64, regression Regression, maxLags int, lagMethod LagMethod) (*Result, error) {
	if len(series) < MinSeriesLength {
		return nil, ErrSeriesTooShort
	}

	data := Clean(series)
	if len(data) < MinSeriesLength {
		return nil, fmt.Errorf("%w after removing non-numeric values", ErrSeriesTooShort)
	}

	if _, ok := regressionDescriptions[regression]; !ok {
		return nil, ErrInvalidRegression
	}
	if _, ok := lagMethodDescriptions[lagMethod]; !ok {
		return nil, ErrInvalidLagMethod
	}
	if maxLags < 0 {
		return nil, ErrNegativeMaxLags
	}

	// Keep the regression well-posed: never search beyond floor(n/2)-1
	// lags, and never let a candidate eat all residual degrees of freedom.
	n := len(data)
	clamped := maxLags
	if limit := n/2 - 1; clamped > limit {
		clamped = limit
	}
	if feasible := feasibleMaxLag(n, regression); clamped > feasible {
		clamped = feasible
	}
	if clamped < 0 {
		clamped = 0
	}

	lags, err := selectLags(data, regression, clamped, lagMethod)
	if err != nil {
		return nil, err
	}

	fit, err := fitADF(data, regression, lags)
	if err != nil {
		return nil, err
	}

	statistic := fit.stat
	pValue := mackinnonPValue(statistic, regression)
	crit := mackinnonCriticalValues(regression, fit.nobs)

	return &Result{
		Statistic:             statistic,
		PValue:                pValue,
		CriticalValues:        crit,
		IsStationary:          pValue < SignificanceLevel,
		LagsUsed:              lags,
		RegressionType:        string(regression),
		RegressionDescription: regressionDescriptions[regression],
		LagsMethod:            string(lagMethod),
		LagsMethodDescription: lagMethodDescriptions[lagMethod],
		DataLength:            n,
		MaxLags:               clamped,
	}, nil
}

// nDeterministic returns how many deterministic regressors the given
// regression kind contributes.
func nDeterministic(regression Regression) int {
	switch regression {
	case RegressionConstant:
		return 1
	case RegressionConstantTrend:
		return 2
	default:
		return 0
	}
}

// feasibleMaxLag is the largest lag order that still leaves at least one
// residual degree of freedom in the test regression.
func feasibleMaxLag(n int, regression Regression) int {
	return (n - 3 - nDeterministic(regression)) / 2
}
