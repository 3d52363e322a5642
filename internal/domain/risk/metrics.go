package risk

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	evaluationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "medilabo_risk_evaluations_total",
		Help: "Diabetes risk evaluations by resulting tier",
	}, []string{"tier"})

	evaluationErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "medilabo_risk_evaluation_errors_total",
		Help: "Diabetes risk evaluations that failed on a collaborator call",
	})

	evaluationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "medilabo_risk_evaluation_duration_seconds",
		Help:    "Diabetes risk evaluation latency including collaborator reads",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
	})

	evidenceCount = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "medilabo_risk_evidence_count",
		Help:    "Trigger-term evidence count per evaluated patient",
		Buckets: []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 10, 15, 20},
	})
)
