package metrics

import (
	"testing"
	"time"
)

func TestNoopRecorderSatisfiesInterface(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveStageDuration("static", time.Millisecond)
	r.ObserveBuildDuration(time.Second)
	r.IncStageResult("static", ResultSuccess)
	r.IncBuildOutcome(BuildOutcomeSuccess)
	r.ObservePageDuration(time.Millisecond)
	r.IncPageResult(ResultSkipped)
	r.AddBlocks("heading", 2)
}

func TestPrometheusRecorderSatisfiesInterface(t *testing.T) {
	var _ Recorder = (*PrometheusRecorder)(nil)
}
