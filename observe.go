package posquality

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	scoringuc "github.com/kailas-cloud/posquality/internal/usecase/scoring"
)

// scorerMetrics holds prometheus metrics registered for a Scorer.
type scorerMetrics struct {
	scores   *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newScorerMetrics(reg prometheus.Registerer) (*scorerMetrics, error) {
	m := &scorerMetrics{
		scores: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "posquality",
			Subsystem: "lib",
			Name:      "scores_total",
			Help:      "Total library scoring calls by operation and outcome.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "posquality",
			Subsystem: "lib",
			Name:      "score_duration_seconds",
			Help:      "Library scoring duration in seconds.",
			Buckets:   []float64{0.000001, 0.000005, 0.00001, 0.00005, 0.0001, 0.0005, 0.001},
		}, []string{"operation"}),
	}
	if err := registerOrReuse(reg, &m.scores); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers a collector or reuses an existing one.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	if err := reg.Register(*c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			existing, ok := are.ExistingCollector.(T)
			if !ok {
				return fmt.Errorf("posquality: metric already registered with incompatible type: %T",
					are.ExistingCollector)
			}
			*c = existing
			return nil
		}
		return fmt.Errorf("posquality: register metric: %w", err)
	}
	return nil
}

// observer logs and counts scoring calls. A nil observer does nothing.
type observer struct {
	logger  *slog.Logger
	metrics *scorerMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	if logger == nil && reg == nil {
		return nil, nil
	}
	var m *scorerMetrics
	if reg != nil {
		var err error
		m, err = newScorerMetrics(reg)
		if err != nil {
			return nil, err
		}
	}
	return &observer{logger: logger, metrics: m}, nil
}

func (o *observer) observe(op string, start time.Time, b Breakdown, err error) {
	if o == nil {
		return
	}
	dur := time.Since(start)
	outcome := scoringuc.OutcomeOf(err)

	if o.metrics != nil {
		o.metrics.scores.WithLabelValues(op, outcome).Inc()
		o.metrics.duration.WithLabelValues(op).Observe(dur.Seconds())
	}

	if o.logger != nil {
		if err != nil {
			o.logger.Debug("provider not scorable",
				"op", op,
				"outcome", outcome,
				"error", err,
			)
		} else {
			o.logger.Debug("provider scored",
				"op", op,
				"score", b.Score,
				"distance_km", b.DistanceKm,
				"duration", dur,
			)
		}
	}
}
