package runner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics are the runner's Prometheus collectors, registered on the
// runner's own registry.
type metrics struct {
	trials   *prometheus.CounterVec
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
	skipped  *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)

	return &metrics{
		trials: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "asymptote_trials_total",
			Help: "Trials executed, by algorithm",
		}, []string{"algorithm"}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "asymptote_trial_failures_total",
			Help: "Failed trials, by algorithm and cause",
		}, []string{"algorithm", "cause"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "asymptote_trial_duration_milliseconds",
			Help:    "Elapsed time reported by the algorithm, in milliseconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 14),
		}, []string{"algorithm"}),
		skipped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "asymptote_cells_skipped_total",
			Help: "Cells left missing, by algorithm and reason",
		}, []string{"algorithm", "reason"}),
	}
}
