package metrics

import "time"

// ResultLabel enumerates per-page result categories.
type ResultLabel string

const (
	ResultChanged   ResultLabel = "changed"
	ResultUnchanged ResultLabel = "unchanged"
	ResultSkipped   ResultLabel = "skipped"
	ResultFailed    ResultLabel = "failed"
)

// Recorder defines observability hooks for post-processing runs.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	IncStageResult(stage string, success bool)
	IncPageResult(result ResultLabel)
	ObserveRunDuration(d time.Duration)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) IncStageResult(string, bool)                {}
func (NoopRecorder) IncPageResult(ResultLabel)                  {}
func (NoopRecorder) ObserveRunDuration(time.Duration)           {}
