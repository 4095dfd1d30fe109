package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg           *prom.Registry
	stageDuration *prom.HistogramVec
	stageResults  *prom.CounterVec
	pageResults   *prom.CounterVec
	runDuration   prom.Histogram
}

// NewPrometheusRecorder constructs the collectors and registers them on reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "docsite",
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual post-processing stages per page",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"stage"}),
		stageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docsite",
			Name:      "stage_results_total",
			Help:      "Stage outcomes by stage and result",
		}, []string{"stage", "result"}),
		pageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docsite",
			Name:      "pages_total",
			Help:      "Pages seen by the post-processor by result",
		}, []string{"result"}),
		runDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "docsite",
			Name:      "run_duration_seconds",
			Help:      "Total duration of a directory processing run",
			Buckets:   prom.DefBuckets,
		}),
	}
	reg.MustRegister(pr.stageDuration, pr.stageResults, pr.pageResults, pr.runDuration)
	return pr
}

// Registry returns the registry the collectors are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.reg }

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, success bool) {
	if p == nil {
		return
	}
	res := "failed"
	if success {
		res = "success"
	}
	p.stageResults.WithLabelValues(stage, res).Inc()
}

func (p *PrometheusRecorder) IncPageResult(result ResultLabel) {
	if p == nil {
		return
	}
	p.pageResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

// WriteTextfile writes the current metric values in the Prometheus text format.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	return prom.WriteToTextfile(path, p.reg)
}
