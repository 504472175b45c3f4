package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "mdsite"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	stageDuration *prom.HistogramVec
	buildDuration prom.Histogram
	stageResults  *prom.CounterVec
	buildOutcome  *prom.CounterVec
	pageDuration  prom.Histogram
	pageResults   *prom.CounterVec
	blocks        *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them on reg.
// A nil registry gets a fresh private one.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual publish stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Total publish duration",
			Buckets:   prom.DefBuckets,
		}),
		stageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Publish outcomes by final status",
		}, []string{"outcome"}),
		pageDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "page_render_duration_seconds",
			Help:      "Duration of rendering a single page",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		}),
		pageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "page_results_total",
			Help:      "Rendered pages by result",
		}, []string{"result"}),
		blocks: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "blocks_total",
			Help:      "Classified blocks by kind",
		}, []string{"kind"}),
	}
	reg.MustRegister(pr.stageDuration, pr.buildDuration, pr.stageResults, pr.buildOutcome,
		pr.pageDuration, pr.pageResults, pr.blocks)
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) {
	if p == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) ObservePageDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.pageDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncPageResult(result ResultLabel) {
	if p == nil {
		return
	}
	p.pageResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) AddBlocks(kind string, n int) {
	if p == nil || n <= 0 {
		return
	}
	p.blocks.WithLabelValues(kind).Add(float64(n))
}
