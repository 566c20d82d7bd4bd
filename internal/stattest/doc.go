// Package stattest implements the augmented Dickey-Fuller (ADF) test for
// time-series stationarity. It is consumed by the analysis pipeline as a
// black-box collaborator: callers hand it a numeric series and test
// parameters and receive a structured result or a validation error.
package stattest
