// Package metrics exposes Prometheus metrics for engine runs and the
// dismissal surface.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/crestlinelabs/decisiond/internal/decision"
)

var (
	// EngineRunsTotal counts completed engine runs.
	EngineRunsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "decisiond",
			Subsystem: "engine",
			Name:      "runs_total",
			Help:      "Total number of completed engine runs",
		},
	)

	// EngineRunDuration tracks how long one full evaluate-and-postprocess
	// pass takes.
	EngineRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "decisiond",
			Subsystem: "engine",
			Name:      "run_duration_seconds",
			Help:      "Duration of engine runs in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// ItemsEmitted gauges how many items the latest run produced.
	// Labels: surface (action, intel), severity.
	ItemsEmitted = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "decisiond",
			Subsystem: "engine",
			Name:      "items_emitted",
			Help:      "Items produced by the latest engine run by surface and severity",
		},
		[]string{"surface", "severity"},
	)

	// DismissalsTotal counts dismissals recorded through the API.
	DismissalsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "decisiond",
			Subsystem: "dismissals",
			Name:      "recorded_total",
			Help:      "Total number of item dismissals recorded",
		},
	)
)

// ObserveEngineRun records one completed run.
func ObserveEngineRun(result decision.Result, elapsed time.Duration) {
	EngineRunsTotal.Inc()
	EngineRunDuration.Observe(elapsed.Seconds())

	ItemsEmitted.Reset()
	count := func(surface string, items []decision.Item) {
		for _, it := range items {
			ItemsEmitted.WithLabelValues(surface, string(it.Severity)).Inc()
		}
	}
	count(string(decision.SurfaceAction), result.ActionItems)
	count(string(decision.SurfaceIntel), result.IntelItems)
}
