package api

import (
	"github.com/statforge/adf-api/internal/domain"
	"github.com/statforge/adf-api/internal/stattest"
	"github.com/statforge/adf-api/internal/task"
)

// Request defaults applied when a field is omitted. They mirror the
// conventions of the log files this service most often analyzes.
const (
	defaultTimestampColumn = "Date"
	defaultValueColumn     = "EventId"
	defaultDelimiter       = " "
	defaultRegression      = string(stattest.RegressionConstant)
	defaultMaxLags         = 10
	defaultLagsMethod      = string(stattest.LagMethodAIC)
	defaultAnalysisType    = domain.AnalysisTypeLogActivity
)

// TestSeriesRequest represents the request body for a synchronous
// stationarity test on an in-memory series.
type TestSeriesRequest struct {
	Series     []float64 `json:"series"      validate:"required,min=1"`
	Regression string    `json:"regression"  validate:"omitempty,oneof=n c ct"`
	MaxLags    *int      `json:"max_lags"    validate:"omitempty,gte=0"`
	LagsMethod string    `json:"lags_method" validate:"omitempty,oneof=aic bic t-stat"`
}

// TestSeriesResponse represents the response for a successful synchronous
// test.
type TestSeriesResponse struct {
	Status string           `json:"status"`
	Result *stattest.Result `json:"result"`
}

// BatchTestRequest represents the request body for testing several named
// series in one call.
type BatchTestRequest struct {
	Series     map[string][]float64 `json:"series"      validate:"required,min=1"`
	Regression string               `json:"regression"  validate:"omitempty,oneof=n c ct"`
	MaxLags    *int                 `json:"max_lags"    validate:"omitempty,gte=0"`
	LagsMethod string               `json:"lags_method" validate:"omitempty,oneof=aic bic t-stat"`
}

// BatchTestResponse represents the response for a batch test. Individual
// failures are reported inside Results, not as an HTTP error.
type BatchTestResponse struct {
	Status  string                            `json:"status"`
	Count   int                               `json:"count"`
	Results map[string]domain.BatchItemResult `json:"results"`
}

// InterpretRequest represents the request body for rendering a prose
// interpretation of a previously obtained test result.
type InterpretRequest struct {
	Statistic      *float64                `json:"statistic" validate:"required"`
	PValue         *float64                `json:"p_value"   validate:"required,gte=0,lte=1"`
	CriticalValues stattest.CriticalValues `json:"critical_values"`
	Regression     string                  `json:"regression" validate:"omitempty,oneof=n c ct"`
}

// InterpretResponse represents the response for an interpretation request.
type InterpretResponse struct {
	Status         string `json:"status"`
	Interpretation string `json:"interpretation"`
}

// AnalyzeFileRequest represents the request body for submitting a file
// analysis. Enum and file checks happen in the service so an invalid
// submission still yields a pollable task record; only the JSON shape is
// checked here.
type AnalyzeFileRequest struct {
	CSVPath         string `json:"csv"`
	TxtPath         string `json:"txt"`
	TimestampColumn string `json:"timestamp_col"`
	ValueColumn     string `json:"value_col"`
	Delimiter       string `json:"delimiter"`
	HasHeader       *bool  `json:"has_header"`
	Regression      string `json:"regression"`
	MaxLags         *int   `json:"max_lags"`
	LagsMethod      string `json:"lags_method"`
	AnalysisType    string `json:"analysis_type"`
}

// toParams applies request defaults and produces the domain payload.
func (r AnalyzeFileRequest) toParams() domain.AnalysisParams {
	params := domain.AnalysisParams{
		CSVPath:         r.CSVPath,
		TxtPath:         r.TxtPath,
		TimestampColumn: defaultTimestampColumn,
		ValueColumn:     defaultValueColumn,
		Delimiter:       defaultDelimiter,
		HasHeader:       true,
		Regression:      defaultRegression,
		MaxLags:         defaultMaxLags,
		LagsMethod:      defaultLagsMethod,
		AnalysisType:    defaultAnalysisType,
	}
	if r.TimestampColumn != "" {
		params.TimestampColumn = r.TimestampColumn
	}
	if r.ValueColumn != "" {
		params.ValueColumn = r.ValueColumn
	}
	if r.Delimiter != "" {
		params.Delimiter = r.Delimiter
	}
	if r.HasHeader != nil {
		params.HasHeader = *r.HasHeader
	}
	if r.Regression != "" {
		params.Regression = r.Regression
	}
	if r.MaxLags != nil {
		params.MaxLags = *r.MaxLags
	}
	if r.LagsMethod != "" {
		params.LagsMethod = r.LagsMethod
	}
	if r.AnalysisType != "" {
		params.AnalysisType = domain.AnalysisType(r.AnalysisType)
	}
	return params
}

// ListTasksResponse represents the response for a task listing. Entries
// are complete task records, matching what a single-task lookup returns.
type ListTasksResponse struct {
	Count int           `json:"count"`
	Tasks []task.Record `json:"tasks"`
}

// resolveKnobs applies the shared defaults for the synchronous test
// endpoints.
func resolveKnobs(regression string, maxLags *int, lagsMethod string) (string, int, string) {
	if regression == "" {
		regression = defaultRegression
	}
	lags := defaultMaxLags
	if maxLags != nil {
		lags = *maxLags
	}
	if lagsMethod == "" {
		lagsMethod = defaultLagsMethod
	}
	return regression, lags, lagsMethod
}
