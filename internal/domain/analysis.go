package domain

import (
	"errors"

	"github.com/statforge/adf-api/internal/stattest"
)

// AnalysisType selects how a source file is turned into a series.
type AnalysisType string

// Possible analysis types. Only log-activity analysis changes loading
// behavior; the other two use the named value column directly.
const (
	AnalysisTypeLogActivity AnalysisType = "log_analysis"
	AnalysisTypeFull        AnalysisType = "full"
	AnalysisTypeQuick       AnalysisType = "quick"
)

// Common validation errors for analysis requests
var (
	ErrSourceRequired     = errors.New("exactly one of the csv or txt file paths must be provided")
	ErrInvalidAnalysis    = errors.New("analysis type must be one of 'log_analysis', 'full', 'quick'")
	ErrSourceFileNotFound = errors.New("source file not found")
)

// AnalysisParams is the request payload of a file analysis. It is stored
// unchanged on the task record for audit and must not be mutated after
// submission.
type AnalysisParams struct {
	CSVPath         string       `json:"csv,omitempty"`
	TxtPath         string       `json:"txt,omitempty"`
	TimestampColumn string       `json:"timestamp_col"`
	ValueColumn     string       `json:"value_col"`
	Delimiter       string       `json:"delimiter"`
	HasHeader       bool         `json:"has_header"`
	Regression      string       `json:"regression"`
	MaxLags         int          `json:"max_lags"`
	LagsMethod      string       `json:"lags_method"`
	AnalysisType    AnalysisType `json:"analysis_type"`
}

// SourcePath returns whichever of the two file paths is set.
func (p AnalysisParams) SourcePath() string {
	if p.CSVPath != "" {
		return p.CSVPath
	}
	return p.TxtPath
}

// ValueRange summarizes the spread of the analyzed series.
type ValueRange struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

// DataSummary describes the cleaned series that was actually tested.
type DataSummary struct {
	TimeSeriesLength int        `json:"time_series_length"`
	ValueRange       ValueRange `json:"value_range"`
}

// AnalysisResult is the structured summary attached to a succeeded
// file-analysis task.
type AnalysisResult struct {
	Status          string           `json:"status"`
	AnalysisType    AnalysisType     `json:"analysis_type"`
	FilePath        string           `json:"file_path"`
	FileType        string           `json:"file_type"`
	DataSummary     DataSummary      `json:"data_summary"`
	ADFResult       *stattest.Result `json:"adf_result"`
	Interpretation  string           `json:"interpretation"`
	Recommendations []string         `json:"recommendations"`
}

// BatchItemResult is one entry of a batch test response. Failures are
// recorded inline so one bad series never aborts its siblings.
type BatchItemResult struct {
	Status string           `json:"status"`
	Result *stattest.Result `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
}
