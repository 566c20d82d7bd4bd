package stattest

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// meanRevertingSeries is a seeded AR(1) with a coefficient far below one,
// a decisively stationary series.
func meanRevertingSeries(n int) []float64 {
	rng := rand.New(rand.NewSource(7))
	series := make([]float64, n)
	level := 0.0
	for i := range series {
		level = 0.2*level + rng.NormFloat64()
		series[i] = level
	}
	return series
}

// driftingWalk integrates a strong positive drift with small noise, a
// textbook non-stationary series.
func driftingWalk(n int) []float64 {
	rng := rand.New(rand.NewSource(42))
	series := make([]float64, n)
	level := 0.0
	for i := range series {
		level += 0.5 + 0.1*rng.NormFloat64()
		series[i] = level
	}
	return series
}

func TestTestRejectsShortSeries(t *testing.T) {
	tester := NewTester()

	_, err := tester.Test([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9}, RegressionConstant, 10, LagMethodAIC)
	assert.ErrorIs(t, err, ErrSeriesTooShort)
}

func TestTestRejectsShortSeriesAfterCleaning(t *testing.T) {
	tester := NewTester()

	// 12 raw values, only 9 finite
	series := []float64{1, 2, 3, math.NaN(), 4, 5, math.Inf(1), 6, 7, 8, math.NaN(), 9}
	_, err := tester.Test(series, RegressionConstant, 10, LagMethodAIC)
	assert.ErrorIs(t, err, ErrSeriesTooShort)
}

func TestTestValidatesParameters(t *testing.T) {
	tester := NewTester()
	series := meanRevertingSeries(40)

	_, err := tester.Test(series, Regression("x"), 10, LagMethodAIC)
	assert.ErrorIs(t, err, ErrInvalidRegression)

	_, err = tester.Test(series, RegressionConstant, 10, LagMethod("hqic"))
	assert.ErrorIs(t, err, ErrInvalidLagMethod)

	_, err = tester.Test(series, RegressionConstant, -1, LagMethodAIC)
	assert.ErrorIs(t, err, ErrNegativeMaxLags)
}

func TestCleanRemovesNonFiniteValues(t *testing.T) {
	series := []float64{1, math.NaN(), 2, math.Inf(1), 3, math.Inf(-1)}

	cleaned := Clean(series)

	assert.Equal(t, []float64{1, 2, 3}, cleaned)
}

func TestStationarySeriesIsDetected(t *testing.T) {
	tester := NewTester()

	result, err := tester.Test(meanRevertingSeries(60), RegressionConstant, 10, LagMethodAIC)
	require.NoError(t, err)

	assert.True(t, result.IsStationary)
	assert.Less(t, result.PValue, SignificanceLevel)
	assert.Less(t, result.Statistic, result.CriticalValues.Pct1)
	assert.Equal(t, 60, result.DataLength)
}

func TestNonStationarySeriesIsDetected(t *testing.T) {
	tester := NewTester()

	result, err := tester.Test(driftingWalk(200), RegressionConstant, 5, LagMethodAIC)
	require.NoError(t, err)

	assert.False(t, result.IsStationary)
	assert.Greater(t, result.PValue, SignificanceLevel)
}

func TestMaxLagsIsClamped(t *testing.T) {
	tester := NewTester()

	result, err := tester.Test(meanRevertingSeries(20), RegressionConstant, 50, LagMethodAIC)
	require.NoError(t, err)

	// floor(20/2)-1 caps the search; feasibility may cap it further
	assert.LessOrEqual(t, result.MaxLags, 9)
	assert.LessOrEqual(t, result.LagsUsed, result.MaxLags)
	assert.GreaterOrEqual(t, result.LagsUsed, 0)
}

func TestMinimalValidSeriesSucceeds(t *testing.T) {
	tester := NewTester()
	series := []float64{3.1, 4.7, 2.2, 5.9, 3.3, 4.1, 2.8, 5.5, 3.6, 4.4, 2.5, 5.1}

	result, err := tester.Test(series, RegressionConstant, 10, LagMethodAIC)
	require.NoError(t, err)

	assert.Equal(t, 12, result.DataLength)
	assert.NotZero(t, result.Statistic)
}

func TestCriticalValuesAreOrdered(t *testing.T) {
	tester := NewTester()

	for _, regression := range []Regression{RegressionNone, RegressionConstant, RegressionConstantTrend} {
		result, err := tester.Test(meanRevertingSeries(80), regression, 4, LagMethodBIC)
		require.NoError(t, err, "regression %q", regression)

		assert.Less(t, result.CriticalValues.Pct1, result.CriticalValues.Pct5)
		assert.Less(t, result.CriticalValues.Pct5, result.CriticalValues.Pct10)
	}
}

func TestTStatLagSelection(t *testing.T) {
	tester := NewTester()

	result, err := tester.Test(meanRevertingSeries(80), RegressionConstant, 6, LagMethodTStat)
	require.NoError(t, err)

	assert.Equal(t, string(LagMethodTStat), result.LagsMethod)
	assert.GreaterOrEqual(t, result.LagsUsed, 0)
	assert.LessOrEqual(t, result.LagsUsed, result.MaxLags)
}

func TestPValueBounds(t *testing.T) {
	// Far outside the tabulated range the p-value saturates.
	assert.Equal(t, 0.0, mackinnonPValue(-25, RegressionConstant))
	assert.Equal(t, 1.0, mackinnonPValue(5, RegressionConstant))

	p := mackinnonPValue(-2.0, RegressionConstant)
	assert.Greater(t, p, 0.0)
	assert.Less(t, p, 1.0)
}

func TestInterpretMentionsConclusion(t *testing.T) {
	crit := CriticalValues{Pct1: -3.43, Pct5: -2.86, Pct10: -2.57}

	text := Interpret(-4.2, 0.001, crit, RegressionConstant)
	assert.Contains(t, text, "the series is stationary")
	assert.Contains(t, text, "-4.200000")

	text = Interpret(-1.1, 0.71, crit, RegressionConstant)
	assert.Contains(t, text, "the series is non-stationary")
	assert.Contains(t, text, "cannot be rejected")
}

func TestInterpretationIncludesTechnicalDetails(t *testing.T) {
	tester := NewTester()

	result, err := tester.Test(meanRevertingSeries(60), RegressionConstant, 4, LagMethodAIC)
	require.NoError(t, err)

	text := result.Interpretation()
	assert.Contains(t, text, "Technical details")
	assert.Contains(t, text, "Akaike information criterion")
}
