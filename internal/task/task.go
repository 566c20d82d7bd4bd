package task

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a task record.
type Status string

// Possible task status values. Transitions are one-directional:
// queued -> running -> {succeeded, failed}, with a direct queued -> failed
// shortcut for requests rejected before dispatch.
const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Task type constants
const (
	// TypeFileAnalysis is the task type for background file analyses.
	TypeFileAnalysis = "adf_analyze_file"
)

// Terminal reports whether the status is final.
func (s Status) Terminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// Record is the unit of trackable state for one asynchronous job. ID,
// Type, Params and CreatedAt are fixed at creation; the remaining fields
// are mutated only by the goroutine that owns the job. Params and Result
// are treated as immutable once stored, which is what lets Get and List
// hand out shallow snapshots safely.
type Record struct {
	ID          uuid.UUID  `json:"id"`
	Type        string     `json:"type"`
	Params      any        `json:"params"`
	Status      Status     `json:"status"`
	Progress    float64    `json:"progress"`
	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
	Result      any        `json:"result"`
	Error       string     `json:"error,omitempty"`
	Trace       string     `json:"trace,omitempty"`
}

// Job is a unit of background work the Runner can execute. Execute
// returns the value to attach as the record's result, or an error that
// fails the record.
type Job interface {
	// ID returns the identifier of the task record this job reports into
	ID() uuid.UUID

	// Type returns the task type identifier
	Type() string

	// Execute runs the job's pipeline
	Execute(ctx context.Context) (any, error)
}
