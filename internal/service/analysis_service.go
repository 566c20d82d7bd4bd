package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/statforge/adf-api/internal/domain"
	"github.com/statforge/adf-api/internal/stattest"
	"github.com/statforge/adf-api/internal/task"
)

// AnalysisService provides stationarity-testing operations.
type AnalysisService interface {
	// TestSeries runs a synchronous ADF test on an in-memory series
	TestSeries(series []float64, regression string, maxLags int, lagsMethod string) (*stattest.Result, error)

	// TestBatch runs a synchronous ADF test on each named series. A
	// failing series is reported in its own entry and never aborts the
	// others.
	TestBatch(series map[string][]float64, regression string, maxLags int, lagsMethod string) map[string]domain.BatchItemResult

	// Interpret renders a prose reading of an ADF result obtained earlier
	Interpret(statistic, pValue float64, crit stattest.CriticalValues, regression string) (string, error)

	// SubmitFileAnalysis registers a file-analysis task and dispatches it
	// for background execution. It never waits for a concurrency slot.
	// Requests failing validation still produce a task record, already in
	// its failed state, so every submission yields a pollable id.
	SubmitFileAnalysis(ctx context.Context, params domain.AnalysisParams) (task.Record, error)

	// GetTask returns a snapshot of the task with the given id. Unknown
	// and malformed ids yield ErrTaskNotFound.
	GetTask(id string) (task.Record, error)

	// ListTasks returns snapshots of all known tasks in creation order
	ListTasks() []task.Record
}

// analysisServiceImpl implements the AnalysisService interface
type analysisServiceImpl struct {
	registry *task.Registry
	runner   *task.Runner
	loader   task.SeriesLoader
	tester   task.StationarityTester
	logger   *slog.Logger
}

// NewAnalysisService creates a new AnalysisService.
// It returns an error if any of the required dependencies are nil.
func NewAnalysisService(
	registry *task.Registry,
	runner *task.Runner,
	loader task.SeriesLoader,
	tester task.StationarityTester,
	logger *slog.Logger,
) (AnalysisService, error) {
	if registry == nil {
		return nil, task.ErrNilRegistry
	}
	if runner == nil {
		return nil, fmt.Errorf("runner cannot be nil")
	}
	if loader == nil {
		return nil, task.ErrNilLoader
	}
	if tester == nil {
		return nil, task.ErrNilTester
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &analysisServiceImpl{
		registry: registry,
		runner:   runner,
		loader:   loader,
		tester:   tester,
		logger:   logger.With(slog.String("component", "analysis_service")),
	}, nil
}

// TestSeries implements AnalysisService.TestSeries
func (s *analysisServiceImpl) TestSeries(
	series []float64,
	regression string,
	maxLags int,
	lagsMethod string,
) (*stattest.Result, error) {
	// Reject bad requests before the tester is ever involved.
	if err := validateTestArgs(regression, maxLags, lagsMethod); err != nil {
		return nil, err
	}
	if len(series) < stattest.MinSeriesLength {
		return nil, stattest.ErrSeriesTooShort
	}
	if len(stattest.Clean(series)) < stattest.MinSeriesLength {
		return nil, fmt.Errorf("%w after removing non-numeric values", stattest.ErrSeriesTooShort)
	}

	result, err := s.tester.Test(series, stattest.Regression(regression), maxLags, stattest.LagMethod(lagsMethod))
	if err != nil {
		return nil, err
	}

	s.logger.Debug("series tested",
		"length", result.DataLength,
		"statistic", result.Statistic,
		"is_stationary", result.IsStationary)
	return result, nil
}

// TestBatch implements AnalysisService.TestBatch
func (s *analysisServiceImpl) TestBatch(
	series map[string][]float64,
	regression string,
	maxLags int,
	lagsMethod string,
) map[string]domain.BatchItemResult {
	results := make(map[string]domain.BatchItemResult, len(series))
	for name, values := range series {
		result, err := s.tester.Test(values, stattest.Regression(regression), maxLags, stattest.LagMethod(lagsMethod))
		if err != nil {
			results[name] = domain.BatchItemResult{
				Status: "failed",
				Error:  err.Error(),
			}
			continue
		}
		results[name] = domain.BatchItemResult{
			Status: "success",
			Result: result,
		}
	}

	s.logger.Debug("batch tested", "series_count", len(series))
	return results
}

// Interpret implements AnalysisService.Interpret
func (s *analysisServiceImpl) Interpret(
	statistic, pValue float64,
	crit stattest.CriticalValues,
	regression string,
) (string, error) {
	switch stattest.Regression(regression) {
	case stattest.RegressionNone, stattest.RegressionConstant, stattest.RegressionConstantTrend:
	default:
		return "", stattest.ErrInvalidRegression
	}
	return stattest.Interpret(statistic, pValue, crit, stattest.Regression(regression)), nil
}

// SubmitFileAnalysis implements AnalysisService.SubmitFileAnalysis
func (s *analysisServiceImpl) SubmitFileAnalysis(
	ctx context.Context,
	params domain.AnalysisParams,
) (task.Record, error) {
	record := s.registry.Create(task.TypeFileAnalysis, params)

	if err := validateAnalysisParams(params); err != nil {
		s.logger.Info("file analysis rejected", "task_id", record.ID, "error", err)
		s.registry.MarkFailed(record.ID, err.Error(), "")
		failed, _ := s.registry.Get(record.ID)
		return failed, nil
	}

	job, err := task.NewFileAnalysisJob(record.ID, params, s.registry, s.loader, s.tester, s.logger)
	if err != nil {
		s.registry.MarkFailed(record.ID, "internal error while preparing analysis", "")
		return task.Record{}, fmt.Errorf("failed to construct analysis job: %w", err)
	}

	s.runner.Dispatch(job)
	s.logger.Info("file analysis submitted", "task_id", record.ID, "path", params.SourcePath())
	return record, nil
}

// GetTask implements AnalysisService.GetTask
func (s *analysisServiceImpl) GetTask(id string) (task.Record, error) {
	taskID, err := uuid.Parse(id)
	if err != nil {
		return task.Record{}, ErrTaskNotFound
	}
	record, ok := s.registry.Get(taskID)
	if !ok {
		return task.Record{}, ErrTaskNotFound
	}
	return record, nil
}

// ListTasks implements AnalysisService.ListTasks
func (s *analysisServiceImpl) ListTasks() []task.Record {
	return s.registry.List()
}

// validateAnalysisParams checks a submission before it is dispatched.
// The checks that depend on the file's content stay in the job itself.
func validateAnalysisParams(params domain.AnalysisParams) error {
	if (params.CSVPath == "") == (params.TxtPath == "") {
		return domain.ErrSourceRequired
	}

	switch params.AnalysisType {
	case domain.AnalysisTypeLogActivity, domain.AnalysisTypeFull, domain.AnalysisTypeQuick:
	default:
		return domain.ErrInvalidAnalysis
	}

	if err := validateTestArgs(params.Regression, params.MaxLags, params.LagsMethod); err != nil {
		return err
	}

	if _, err := os.Stat(params.SourcePath()); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrSourceFileNotFound, params.SourcePath())
	}

	return nil
}

// validateTestArgs checks the test knobs shared by the synchronous and
// file-analysis paths.
func validateTestArgs(regression string, maxLags int, lagsMethod string) error {
	switch stattest.Regression(regression) {
	case stattest.RegressionNone, stattest.RegressionConstant, stattest.RegressionConstantTrend:
	default:
		return stattest.ErrInvalidRegression
	}

	switch stattest.LagMethod(lagsMethod) {
	case stattest.LagMethodAIC, stattest.LagMethodBIC, stattest.LagMethodTStat:
	default:
		return stattest.ErrInvalidLagMethod
	}

	if maxLags < 0 {
		return stattest.ErrNegativeMaxLags
	}

	return nil
}
