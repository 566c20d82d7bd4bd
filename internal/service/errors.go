package service

import "errors"

// Common service errors - sentinel errors callers check with errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped with fmt.Errorf and %w
// 3. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrTaskNotFound indicates that no task record exists for the given
	// identifier. Malformed identifiers are treated the same way.
	ErrTaskNotFound = errors.New("task not found")
)
