package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

func (n *NoopRecorder) IncAuthFailure(reason string)                {}
func (n *NoopRecorder) IncOwnershipDenied(resource string)          {}
func (n *NoopRecorder) IncLoginFailure()                            {}
func (n *NoopRecorder) IncRateLimited()                             {}
func (n *NoopRecorder) IncUserRegistered()                          {}
func (n *NoopRecorder) IncSkillCreated()                            {}
func (n *NoopRecorder) IncSkillUpdated()                            {}
func (n *NoopRecorder) IncSkillDeleted()                            {}
func (n *NoopRecorder) IncCommentCreated()                          {}
func (n *NoopRecorder) IncCommentUpdated()                          {}
func (n *NoopRecorder) IncCommentDeleted()                          {}
func (n *NoopRecorder) IncStatsCacheHit()                           {}
func (n *NoopRecorder) IncStatsCacheMiss()                          {}
func (n *NoopRecorder) ObserveStatsDuration(duration time.Duration) {}
