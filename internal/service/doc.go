// Package service provides the application-level operations behind the
// HTTP API: synchronous stationarity tests, asynchronous file analyses,
// and task lookups. It validates requests, owns the submission rules for
// background jobs, and shields handlers from orchestration details.
package service
