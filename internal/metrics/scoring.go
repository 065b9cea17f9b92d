package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Scoring Prometheus metrics.
var (
	ScoresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "posquality",
			Name:      "scores_total",
			Help:      "Total number of provider scoring calls",
		},
		[]string{"outcome"},
	)

	ScoreDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "posquality",
			Name:      "score_duration_seconds",
			Help:      "Provider scoring duration in seconds",
			Buckets:   []float64{0.000001, 0.000005, 0.00001, 0.00005, 0.0001, 0.0005, 0.001},
		},
	)

	ScoreValue = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "posquality",
			Name:      "score_value",
			Help:      "Distribution of successful quality scores",
			Buckets:   []float64{-0.01, -0.001, -0.0001, 0, 0.00001, 0.0001, 0.001, 0.01, 0.1},
		},
	)
)

var registerScoringOnce sync.Once

// RegisterScoringMetrics registers Prometheus scoring metrics. Safe to call more than once.
func RegisterScoringMetrics() {
	registerScoringOnce.Do(func() {
		prometheus.MustRegister(ScoresTotal)
		prometheus.MustRegister(ScoreDuration)
		prometheus.MustRegister(ScoreValue)
	})
}

// ScoringRecorder records scoring outcomes into the package metrics.
type ScoringRecorder struct{}

// NewScoringRecorder creates a recorder backed by the package metrics.
func NewScoringRecorder() *ScoringRecorder { return &ScoringRecorder{} }

// ObserveScore counts the outcome and, for successful calls, the score value.
func (ScoringRecorder) ObserveScore(outcome string, score float64, duration time.Duration) {
	ScoresTotal.WithLabelValues(outcome).Inc()
	ScoreDuration.Observe(duration.Seconds())
	if outcome == "ok" {
		ScoreValue.Observe(score)
	}
}
