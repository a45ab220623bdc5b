package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "notesite"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	rebuildDuration prom.Histogram
	rebuildOutcomes *prom.CounterVec
	documents       prom.Gauge
	checkIssues     *prom.GaugeVec
	watchEvents     prom.Counter
}

// NewPrometheusRecorder constructs the collectors and registers them on reg.
// A nil reg gets a private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		rebuildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "rebuild_duration_seconds",
			Help:      "Duration of discover, check and emit cycles",
			Buckets:   prom.DefBuckets,
		}),
		rebuildOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "rebuild_outcomes_total",
			Help:      "Rebuilds by final status",
		}, []string{"outcome"}),
		documents: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "documents",
			Help:      "Documents found by the last rebuild",
		}),
		checkIssues: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "check_issues",
			Help:      "Issues reported by the last check, by severity",
		}, []string{"severity"}),
		watchEvents: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "watch_events_total",
			Help:      "File system events received by the watcher",
		}),
	}
	reg.MustRegister(pr.rebuildDuration, pr.rebuildOutcomes, pr.documents, pr.checkIssues, pr.watchEvents)
	return pr
}

func (p *PrometheusRecorder) ObserveRebuildDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.rebuildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRebuildOutcome(outcome RebuildOutcome) {
	if p == nil {
		return
	}
	p.rebuildOutcomes.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetDocuments(n int) {
	if p == nil {
		return
	}
	p.documents.Set(float64(n))
}

func (p *PrometheusRecorder) SetCheckIssues(severity string, n int) {
	if p == nil {
		return
	}
	p.checkIssues.WithLabelValues(severity).Set(float64(n))
}

func (p *PrometheusRecorder) IncWatchEvents(n int) {
	if p == nil {
		return
	}
	p.watchEvents.Add(float64(n))
}
