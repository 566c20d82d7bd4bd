// Package task manages background job orchestration: the registry of task
// records, the concurrency limiter bounding simultaneous analyses, and the
// runner that executes one job per goroutine. Long-running file analyses
// run here so they never block HTTP request handling; clients poll the
// registry for progress and results.
package task
