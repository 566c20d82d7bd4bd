package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/statforge/adf-api/internal/api"
	apiMiddleware "github.com/statforge/adf-api/internal/api/middleware"
	"github.com/statforge/adf-api/internal/service"
)

// newRouter configures the application router with all routes and
// middleware.
func newRouter(analysisService service.AnalysisService, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	analysisHandler := api.NewAnalysisHandler(analysisService)
	taskHandler := api.NewTaskHandler(analysisService)

	r.Route("/api", func(r chi.Router) {
		// Synchronous test endpoints
		r.Post("/stationarity/test", analysisHandler.TestSeries)
		r.Post("/stationarity/batch", analysisHandler.TestBatch)
		r.Post("/stationarity/interpret", analysisHandler.Interpret)

		// Asynchronous file analyses
		r.Post("/analyses", analysisHandler.AnalyzeFile)

		// Task tracking
		r.Get("/tasks", taskHandler.ListTasks)
		r.Get("/tasks/{id}", taskHandler.GetTask)
	})

	// Health check endpoint
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
