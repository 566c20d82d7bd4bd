package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/statforge/adf-api/internal/dataload"
	"github.com/statforge/adf-api/internal/domain"
	"github.com/statforge/adf-api/internal/stattest"
)

// smallSampleThreshold is the series length below which the
// recommendations suggest collecting more data.
const smallSampleThreshold = 100

// Progress checkpoints reported at each stage boundary. They give a
// polling client a coarse sense of advancement, not an exact work unit.
const (
	progressStarted   = 0.1
	progressResolved  = 0.2
	progressLoaded    = 0.5
	progressValidated = 0.7
	progressTested    = 0.9
)

// Common errors
var (
	ErrNilRegistry = errors.New("registry cannot be nil")
	ErrNilLoader   = errors.New("loader cannot be nil")
	ErrNilTester   = errors.New("tester cannot be nil")
	ErrNilLogger   = errors.New("logger cannot be nil")
)

// SeriesLoader loads a source file into a numeric series.
type SeriesLoader interface {
	Load(path string, format dataload.SourceFormat, opts dataload.Options) ([]float64, error)
}

// StationarityTester runs an ADF test on an in-memory series.
type StationarityTester interface {
	Test(series []float64, regression stattest.Regression, maxLags int, lagMethod stattest.LagMethod) (*stattest.Result, error)
}

// FileAnalysisJob runs the file-analysis pipeline for one task record:
// load the series, validate it, run the stationarity test, and assemble
// the structured summary. Intermediate progress is reported into the
// registry at each stage boundary.
type FileAnalysisJob struct {
	id       uuid.UUID
	params   domain.AnalysisParams
	registry *Registry
	loader   SeriesLoader
	tester   StationarityTester
	logger   *slog.Logger
}

// NewFileAnalysisJob creates a job reporting into the record with the
// given id. The params must already have passed submission validation.
func NewFileAnalysisJob(
	id uuid.UUID,
	params domain.AnalysisParams,
	registry *Registry,
	loader SeriesLoader,
	tester StationarityTester,
	logger *slog.Logger,
) (*FileAnalysisJob, error) {
	if registry == nil {
		return nil, ErrNilRegistry
	}
	if loader == nil {
		return nil, ErrNilLoader
	}
	if tester == nil {
		return nil, ErrNilTester
	}
	if logger == nil {
		return nil, ErrNilLogger
	}

	return &FileAnalysisJob{
		id:       id,
		params:   params,
		registry: registry,
		loader:   loader,
		tester:   tester,
		logger:   logger.With("task_type", TypeFileAnalysis, "task_id", id),
	}, nil
}

// ID returns the identifier of the task record this job reports into.
func (j *FileAnalysisJob) ID() uuid.UUID {
	return j.id
}

// Type returns the task type identifier.
func (j *FileAnalysisJob) Type() string {
	return TypeFileAnalysis
}

// Execute runs the pipeline and returns the summary to attach as the
// record's result. Any returned error fails the record.
func (j *FileAnalysisJob) Execute(ctx context.Context) (any, error) {
	j.registry.MarkRunning(j.id)
	j.registry.SetProgress(j.id, progressStarted)

	path := j.params.SourcePath()
	format := dataload.FormatText
	if j.params.CSVPath != "" {
		format = dataload.FormatCSV
	}
	j.registry.SetProgress(j.id, progressResolved)

	series, err := j.loader.Load(path, format, dataload.Options{
		TimestampColumn: j.params.TimestampColumn,
		ValueColumn:     j.params.ValueColumn,
		Delimiter:       j.params.Delimiter,
		HasHeader:       j.params.HasHeader,
		Aggregate:       j.params.AnalysisType == domain.AnalysisTypeLogActivity,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load series: %w", err)
	}
	j.registry.SetProgress(j.id, progressLoaded)
	j.logger.Debug("series loaded", "raw_length", len(series))

	if len(series) < stattest.MinSeriesLength {
		return nil, stattest.ErrSeriesTooShort
	}
	cleaned := stattest.Clean(series)
	if len(cleaned) < stattest.MinSeriesLength {
		return nil, fmt.Errorf("%w after removing non-numeric values", stattest.ErrSeriesTooShort)
	}
	j.registry.SetProgress(j.id, progressValidated)

	// Clamp the lag search so the test regression stays well-posed.
	maxLags := j.params.MaxLags
	if limit := len(cleaned)/2 - 1; maxLags > limit {
		maxLags = limit
	}

	result, err := j.tester.Test(
		cleaned,
		stattest.Regression(j.params.Regression),
		maxLags,
		stattest.LagMethod(j.params.LagsMethod),
	)
	if err != nil {
		return nil, fmt.Errorf("stationarity test failed: %w", err)
	}
	j.registry.SetProgress(j.id, progressTested)

	summary := &domain.AnalysisResult{
		Status:       "success",
		AnalysisType: j.params.AnalysisType,
		FilePath:     path,
		FileType:     string(format),
		DataSummary: domain.DataSummary{
			TimeSeriesLength: len(cleaned),
			ValueRange: domain.ValueRange{
				Min:  floats.Min(cleaned),
				Max:  floats.Max(cleaned),
				Mean: stat.Mean(cleaned, nil),
				Std:  stat.PopStdDev(cleaned, nil),
			},
		},
		ADFResult:       result,
		Interpretation:  result.Interpretation(),
		Recommendations: recommendations(result, len(cleaned)),
	}

	return summary, nil
}

// recommendations derives qualitative guidance from the test outcome and
// the sample size.
func recommendations(result *stattest.Result, length int) []string {
	var recs []string
	if result.IsStationary {
		recs = append(recs,
			"The series is stationary and suitable for modeling on its levels (e.g. ARIMA).",
			"Short-term forecasting on this series is viable.")
	} else {
		recs = append(recs,
			"The series is non-stationary; apply differencing before modeling.",
			"Consider an ARIMA model on the differenced series.")
	}
	if length < smallSampleThreshold {
		recs = append(recs, "The sample is small; collect more data to improve the reliability of the analysis.")
	}
	return recs
}
