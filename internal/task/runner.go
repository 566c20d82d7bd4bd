package task

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
)

// Runner executes jobs in the background, one goroutine per job. Each
// goroutine waits for a limiter slot, runs the job's pipeline, and
// records the terminal outcome in the registry. A panicking job is
// converted into a failed record carrying a diagnostic trace; it never
// takes the process or any sibling job down with it.
type Runner struct {
	registry *Registry
	limiter  *Limiter
	logger   *slog.Logger
	wg       sync.WaitGroup
}

// NewRunner creates a Runner reporting into the given registry and
// bounded by the given limiter.
func NewRunner(registry *Registry, limiter *Limiter, logger *slog.Logger) *Runner {
	return &Runner{
		registry: registry,
		limiter:  limiter,
		logger:   logger,
	}
}

// Dispatch starts the job in its own goroutine and returns immediately.
// The caller must have already created the job's record; the record stays
// queued until the goroutine acquires a limiter slot.
func (r *Runner) Dispatch(job Job) {
	r.wg.Add(1)
	go r.run(job)
}

func (r *Runner) run(job Job) {
	defer r.wg.Done()

	logger := r.logger.With("task_id", job.ID(), "task_type", job.Type())

	defer func() {
		if rec := recover(); rec != nil {
			trace := string(debug.Stack())
			logger.Error("job panicked", "panic", rec)
			r.registry.MarkFailed(job.ID(), fmt.Sprintf("unexpected failure: %v", rec), trace)
		}
	}()

	// Jobs wait indefinitely for a slot; there is no cancellation API.
	ctx := context.Background()
	if err := r.limiter.Acquire(ctx); err != nil {
		r.registry.MarkFailed(job.ID(), err.Error(), "")
		return
	}
	defer r.limiter.Release()

	logger.Info("job started", "slots_in_use", r.limiter.InUse(), "slots_total", r.limiter.Capacity())

	result, err := job.Execute(ctx)
	if err != nil {
		logger.Info("job failed", "error", err)
		r.registry.MarkFailed(job.ID(), err.Error(), "")
		return
	}

	r.registry.MarkSucceeded(job.ID(), result)
	logger.Info("job completed")
}

// Drain waits for all in-flight jobs to finish or the context to expire.
func (r *Runner) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("drain interrupted: %w", ctx.Err())
	}
}
