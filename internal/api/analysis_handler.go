package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/statforge/adf-api/internal/api/shared"
	"github.com/statforge/adf-api/internal/service"
	"github.com/statforge/adf-api/internal/task"
)

// AnalysisHandler handles stationarity-testing HTTP requests.
type AnalysisHandler struct {
	analysisService service.AnalysisService
	validator       *validator.Validate
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analysisService service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
		validator:       validator.New(),
	}
}

// TestSeries handles POST /api/stationarity/test requests. The test runs
// inline and the result is returned in the response body.
func (h *AnalysisHandler) TestSeries(w http.ResponseWriter, r *http.Request) {
	var req TestSeriesRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	regression, maxLags, lagsMethod := resolveKnobs(req.Regression, req.MaxLags, req.LagsMethod)
	result, err := h.analysisService.TestSeries(req.Series, regression, maxLags, lagsMethod)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TestSeriesResponse{
		Status: "success",
		Result: result,
	})
}

// TestBatch handles POST /api/stationarity/batch requests. Each named
// series is tested independently; a failing series is reported in its own
// entry while the rest complete normally.
func (h *AnalysisHandler) TestBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchTestRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	regression, maxLags, lagsMethod := resolveKnobs(req.Regression, req.MaxLags, req.LagsMethod)
	results := h.analysisService.TestBatch(req.Series, regression, maxLags, lagsMethod)

	shared.RespondWithJSON(w, r, http.StatusOK, BatchTestResponse{
		Status:  "success",
		Count:   len(results),
		Results: results,
	})
}

// Interpret handles POST /api/stationarity/interpret requests.
func (h *AnalysisHandler) Interpret(w http.ResponseWriter, r *http.Request) {
	var req InterpretRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	regression := req.Regression
	if regression == "" {
		regression = defaultRegression
	}
	interpretation, err := h.analysisService.Interpret(*req.Statistic, *req.PValue, req.CriticalValues, regression)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, InterpretResponse{
		Status:         "success",
		Interpretation: interpretation,
	})
}

// AnalyzeFile handles POST /api/analyses requests. The analysis runs in
// the background; the response carries the task record to poll. Invalid
// parameters still produce a record, already failed, returned with a 400
// so the caller sees the rejection without polling.
func (h *AnalysisHandler) AnalyzeFile(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeFileRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	record, err := h.analysisService.SubmitFileAnalysis(r.Context(), req.toParams())
	if err != nil {
		slog.Error("failed to submit file analysis", "error", err)
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to submit analysis", err)
		return
	}

	if record.Status == task.StatusFailed {
		shared.RespondWithJSON(w, r, http.StatusBadRequest, record)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, record)
}
