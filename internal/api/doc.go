// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It adapts external clients to the internal
// analysis service: synchronous test endpoints respond inline, while file
// analyses are accepted, handed to the background runner, and tracked
// through the task endpoints.
package api
