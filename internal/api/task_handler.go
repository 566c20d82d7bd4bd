package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/statforge/adf-api/internal/api/shared"
	"github.com/statforge/adf-api/internal/service"
	"github.com/statforge/adf-api/internal/task"
)

// TaskHandler handles task lookup HTTP requests.
type TaskHandler struct {
	analysisService service.AnalysisService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(analysisService service.AnalysisService) *TaskHandler {
	return &TaskHandler{analysisService: analysisService}
}

// GetTask handles GET /api/tasks/{id} requests. An unknown or malformed
// id yields an empty object rather than an error, so pollers can treat
// "not there yet" and "never existed" uniformly.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	record, err := h.analysisService.GetTask(id)
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			shared.RespondWithJSON(w, r, http.StatusOK, struct{}{})
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to look up task", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, record)
}

// ListTasks handles GET /api/tasks requests. Every record is returned in
// full, results and errors included, alongside the count.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	records := h.analysisService.ListTasks()
	if records == nil {
		records = []task.Record{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ListTasksResponse{
		Count: len(records),
		Tasks: records,
	})
}
