package stattest

import (
	"fmt"
	"strings"
)

// Interpret renders a prose reading of an ADF outcome from its raw pieces.
// It is the backing for the interpretation endpoint, where the caller
// supplies a result obtained elsewhere.
func Interpret(statistic, pValue float64, crit CriticalValues, regression Regression) string {
	desc, ok := regressionDescriptions[regression]
	if !ok {
		desc = string(regression)
	}

	stationary := pValue < SignificanceLevel
	conclusion := "the series is non-stationary"
	rejection := "cannot be rejected"
	comparison := ">"
	if stationary {
		conclusion = "the series is stationary"
		rejection = "is rejected"
		comparison = "<"
	}

	var b strings.Builder
	b.WriteString("ADF test interpretation:\n\n")
	fmt.Fprintf(&b, "1. Test statistic: %.6f\n", statistic)
	fmt.Fprintf(&b, "2. P-value: %.6f\n", pValue)
	b.WriteString("3. Critical values:\n")
	fmt.Fprintf(&b, "   - 1%% significance level: %.6f\n", crit.Pct1)
	fmt.Fprintf(&b, "   - 5%% significance level: %.6f\n", crit.Pct5)
	fmt.Fprintf(&b, "   - 10%% significance level: %.6f\n", crit.Pct10)
	fmt.Fprintf(&b, "4. Conclusion: %s\n", conclusion)
	fmt.Fprintf(&b, "   - At the 5%% significance level the null hypothesis of a unit root %s\n", rejection)
	fmt.Fprintf(&b, "   - p-value %.6f %s %.2f\n", pValue, comparison, SignificanceLevel)
	fmt.Fprintf(&b, "5. Regression: %s", desc)

	return b.String()
}

// Interpretation renders the full prose reading of a completed test,
// including the technical details of how the test was run.
func (r *Result) Interpretation() string {
	base := Interpret(r.Statistic, r.PValue, r.CriticalValues, Regression(r.RegressionType))

	var b strings.Builder
	b.WriteString(base)
	b.WriteString("\n6. Technical details:\n")
	fmt.Fprintf(&b, "   - Lag-selection method: %s\n", r.LagsMethodDescription)
	fmt.Fprintf(&b, "   - Lags used: %d\n", r.LagsUsed)
	fmt.Fprintf(&b, "   - Observations: %d", r.DataLength)

	return b.String()
}
