// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Access control
	IncAuthFailure(reason string) // reason: AUTH_REQUIRED, AUTH_MALFORMED, AUTH_INVALID
	IncOwnershipDenied(resource string)
	IncLoginFailure()
	IncRateLimited()

	// Resource lifecycle
	IncUserRegistered()
	IncSkillCreated()
	IncSkillUpdated()
	IncSkillDeleted()
	IncCommentCreated()
	IncCommentUpdated()
	IncCommentDeleted()

	// Stats
	IncStatsCacheHit()
	IncStatsCacheMiss()
	ObserveStatsDuration(duration time.Duration)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
