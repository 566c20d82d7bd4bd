// Package dataload reads tabular and delimited-text source files into
// numeric series for analysis. It supports two extraction modes: direct
// use of a named value column, and aggregation of timestamped events into
// fixed one-minute activity counts (used for log-activity analysis).
package dataload
