package metrics

import "time"

// RebuildOutcome enumerates how a rebuild ended.
type RebuildOutcome string

const (
	OutcomeSuccess RebuildOutcome = "success"
	OutcomeWarning RebuildOutcome = "warning"
	OutcomeFailed  RebuildOutcome = "failed"
)

// Recorder defines observability hooks for the check/emit cycle run by the
// preview loop. Implementations must be safe for concurrent use.
type Recorder interface {
	ObserveRebuildDuration(d time.Duration)
	IncRebuildOutcome(outcome RebuildOutcome)
	SetDocuments(n int)
	SetCheckIssues(severity string, n int)
	IncWatchEvents(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveRebuildDuration(time.Duration) {}
func (NoopRecorder) IncRebuildOutcome(RebuildOutcome)     {}
func (NoopRecorder) SetDocuments(int)                     {}
func (NoopRecorder) SetCheckIssues(string, int)           {}
func (NoopRecorder) IncWatchEvents(int)                   {}
