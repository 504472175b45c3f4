package metrics

import "time"

// ResultLabel enumerates stage and page result categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultSkipped  ResultLabel = "skipped"
	ResultWarning  ResultLabel = "warning"
	ResultFatal    ResultLabel = "fatal"
	ResultCanceled ResultLabel = "canceled"
)

// BuildOutcomeLabel is the final status of a publish run.
type BuildOutcomeLabel string

const (
	BuildOutcomeSuccess  BuildOutcomeLabel = "success"
	BuildOutcomeWarning  BuildOutcomeLabel = "warning"
	BuildOutcomeFailed   BuildOutcomeLabel = "failed"
	BuildOutcomeCanceled BuildOutcomeLabel = "canceled"
)

// Recorder defines observability hooks for publish runs. Implementations
// must tolerate being called from a single goroutine per build; the
// Prometheus implementation is safe for concurrent use.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	IncBuildOutcome(outcome BuildOutcomeLabel)
	ObservePageDuration(d time.Duration)
	IncPageResult(result ResultLabel)
	AddBlocks(kind string, n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)         {}
func (NoopRecorder) IncStageResult(string, ResultLabel)         {}
func (NoopRecorder) IncBuildOutcome(BuildOutcomeLabel)          {}
func (NoopRecorder) ObservePageDuration(time.Duration)          {}
func (NoopRecorder) IncPageResult(ResultLabel)                  {}
func (NoopRecorder) AddBlocks(string, int)                      {}
