package recommend

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pipelineDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "gearmatch",
		Subsystem: "pipeline",
		Name:      "duration_seconds",
		Help:      "Recommendation pipeline execution latency",
		Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
	}, []string{"category"})

	prefilterEliminated = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "gearmatch",
		Subsystem: "prefilter",
		Name:      "eliminated_count",
		Help:      "Products eliminated by the hard pre-filter per run",
		Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
	}, []string{"category"})

	fallbackEngaged = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gearmatch",
		Subsystem: "pipeline",
		Name:      "fallback_total",
		Help:      "Runs where no product met the minimum score",
	}, []string{"category"})
)
