// Package metrics exposes Prometheus collectors for the insights pipeline.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Step outcomes
const (
	OutcomeOK       = "ok"
	OutcomeDegraded = "degraded"
)

var (
	stepsTotal          *prometheus.CounterVec
	buildsTotal         *prometheus.CounterVec
	buildDurationSecond prometheus.Histogram

	once sync.Once
)

// Init registers the collectors. It is safe to call multiple times.
func Init() {
	once.Do(func() {
		stepsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "insights_steps_total",
				Help: "Pipeline sub-steps, labeled by step and outcome.",
			},
			[]string{"step", "outcome"},
		)

		buildsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "insights_builds_total",
				Help: "Brand context builds, labeled by result.",
			},
			[]string{"result"},
		)

		buildDurationSecond = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "insights_build_duration_seconds",
				Help:    "Wall time of a full brand context build.",
				Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 80},
			},
		)
	})
}

// ObserveStep counts one pipeline sub-step
func ObserveStep(step string, ok bool) {
	Init()
	outcome := OutcomeOK
	if !ok {
		outcome = OutcomeDegraded
	}
	stepsTotal.WithLabelValues(step, outcome).Inc()
}

// ObserveBuild counts one build and records how long it took
func ObserveBuild(result string, elapsed time.Duration) {
	Init()
	buildsTotal.WithLabelValues(result).Inc()
	buildDurationSecond.Observe(elapsed.Seconds())
}

// Handler serves the default registry
func Handler() http.Handler {
	Init()
	return promhttp.Handler()
}
