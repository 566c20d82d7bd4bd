package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/statforge/adf-api/internal/domain"
	"github.com/statforge/adf-api/internal/service"
	"github.com/statforge/adf-api/internal/stattest"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Request validation errors
	case errors.Is(err, stattest.ErrSeriesTooShort),
		errors.Is(err, stattest.ErrInvalidRegression),
		errors.Is(err, stattest.ErrInvalidLagMethod),
		errors.Is(err, stattest.ErrNegativeMaxLags),
		errors.Is(err, domain.ErrSourceRequired),
		errors.Is(err, domain.ErrInvalidAnalysis):
		return http.StatusBadRequest

	// Data that cannot support the test
	case errors.Is(err, stattest.ErrDegenerateSeries):
		return http.StatusUnprocessableEntity

	// Not found errors
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, domain.ErrSourceFileNotFound):
		return http.StatusNotFound

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. Known sentinel errors carry messages written
// for clients; anything else collapses to a generic message.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	known := []error{
		stattest.ErrSeriesTooShort,
		stattest.ErrInvalidRegression,
		stattest.ErrInvalidLagMethod,
		stattest.ErrNegativeMaxLags,
		stattest.ErrDegenerateSeries,
		domain.ErrSourceRequired,
		domain.ErrInvalidAnalysis,
		domain.ErrSourceFileNotFound,
		service.ErrTaskNotFound,
	}
	for _, sentinel := range known {
		if errors.Is(err, sentinel) {
			return err.Error()
		}
	}

	return "An unexpected error occurred"
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'TestSeriesRequest.Series' Error:Field
	// validation for 'Series' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "gte":
		return "value too small"
	case "lte":
		return "value too large"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
