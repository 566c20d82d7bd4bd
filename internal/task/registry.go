package task

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry is the thread-safe store of task records. A single mutex
// guards the backing map for the duration of each logical operation; the
// lock is never held across I/O or computation. Get and List return
// copies so a value handed to a caller never changes underneath it.
// Records are kept for the lifetime of the process.
type Registry struct {
	mu      sync.Mutex
	records map[uuid.UUID]*Record
	logger  *slog.Logger
}

// NewRegistry creates an empty Registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		records: make(map[uuid.UUID]*Record),
		logger:  logger,
	}
}

// Create adds a new queued record for the given job type and request
// payload and returns a snapshot of it. The record is visible to Get and
// List before Create returns.
func (r *Registry) Create(jobType string, params any) Record {
	record := &Record{
		ID:        uuid.New(),
		Type:      jobType,
		Params:    params,
		Status:    StatusQueued,
		Progress:  0,
		CreatedAt: time.Now(),
	}

	r.mu.Lock()
	r.records[record.ID] = record
	r.mu.Unlock()

	r.logger.Debug("task record created", "task_id", record.ID, "task_type", jobType)
	return *record
}

// MarkRunning transitions a queued record to running and stamps
// StartedAt. Unknown ids and records no longer queued are ignored.
func (r *Registry) MarkRunning(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[id]
	if !ok || record.Status != StatusQueued {
		return
	}
	now := time.Now()
	record.Status = StatusRunning
	record.StartedAt = &now
}

// SetProgress advances a running record's progress. Values below the
// current progress are ignored so observed progress never regresses.
func (r *Registry) SetProgress(id uuid.UUID, progress float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[id]
	if !ok || record.Status != StatusRunning || progress <= record.Progress {
		return
	}
	if progress > 1 {
		progress = 1
	}
	record.Progress = progress
}

// MarkSucceeded transitions a record to its terminal succeeded state,
// attaching the result and stamping CompletedAt. Records already in a
// terminal state are ignored.
func (r *Registry) MarkSucceeded(id uuid.UUID, result any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[id]
	if !ok || record.Status.Terminal() {
		return
	}
	now := time.Now()
	record.Status = StatusSucceeded
	record.Result = result
	record.Progress = 1
	record.CompletedAt = &now
}

// MarkFailed transitions a record to its terminal failed state. The
// trace is only populated for unexpected failures; expected validation
// and data errors pass an empty string. Records already in a terminal
// state are ignored.
func (r *Registry) MarkFailed(id uuid.UUID, errMsg, trace string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[id]
	if !ok || record.Status.Terminal() {
		return
	}
	now := time.Now()
	record.Status = StatusFailed
	record.Error = errMsg
	record.Trace = trace
	record.CompletedAt = &now
}

// Get returns a snapshot of the record with the given id. The second
// return value is false for unknown ids.
func (r *Registry) Get(id uuid.UUID) (Record, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[id]
	if !ok {
		return Record{}, false
	}
	return *record, true
}

// List returns snapshots of every record, ordered by creation time.
func (r *Registry) List() []Record {
	r.mu.Lock()
	records := make([]Record, 0, len(r.records))
	for _, record := range r.records {
		records = append(records, *record)
	}
	r.mu.Unlock()

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records
}
