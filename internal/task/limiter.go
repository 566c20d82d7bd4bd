package task

import "context"

// DefaultMaxConcurrent is the limiter capacity used when none is
// configured. Statistical analyses are CPU and memory heavy, so the
// default is deliberately small.
const DefaultMaxConcurrent = 2

// Limiter is a counting semaphore bounding how many analysis jobs run
// simultaneously. There is no fairness guarantee beyond what the runtime
// provides and no timeout on acquisition: a job waits as long as it takes
// for a slot to free up.
type Limiter struct {
	slots chan struct{}
}

// NewLimiter creates a Limiter with the given capacity. Capacities below
// one fall back to DefaultMaxConcurrent.
func NewLimiter(capacity int) *Limiter {
	if capacity < 1 {
		capacity = DefaultMaxConcurrent
	}
	return &Limiter{slots: make(chan struct{}, capacity)}
}

// Acquire blocks until a slot is free or the context is cancelled.
func (l *Limiter) Acquire(ctx context.Context) error {
	select {
	case l.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release frees a slot. It must be called exactly once per successful
// Acquire, on every exit path.
func (l *Limiter) Release() {
	<-l.slots
}

// Capacity returns the configured slot count.
func (l *Limiter) Capacity() int {
	return cap(l.slots)
}

// InUse returns how many slots are currently held.
func (l *Limiter) InUse() int {
	return len(l.slots)
}
