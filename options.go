package posquality

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/posquality/internal/domain/quality"
)

// Option configures a Scorer.
type Option interface {
	apply(*scorerConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*scorerConfig)

func (f optionFunc) apply(c *scorerConfig) { f(c) }

type scorerConfig struct {
	weights    quality.Weights
	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithWeights sets the timeliness and accuracy weights.
// Default: 0.5 each.
func WithWeights(w Weights) Option {
	return optionFunc(func(c *scorerConfig) {
		c.weights = w
	})
}

// WithTimelinessWeight sets the timeliness weight; accuracy becomes 1 minus it.
func WithTimelinessWeight(t float64) Option {
	return optionFunc(func(c *scorerConfig) {
		c.weights = quality.WeightsFromTimeliness(t)
	})
}

// WithLogger enables structured logging of scoring calls.
// Pass nil to disable (default).
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *scorerConfig) {
		c.logger = l
	})
}

// WithPrometheus registers scoring metrics (call counts by outcome and
// durations) on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *scorerConfig) {
		c.metricsReg = reg
	})
}
