package posquality

import (
	"fmt"
	"time"

	"github.com/kailas-cloud/posquality/internal/domain/quality"
)

// Scorer scores providers with fixed weights and reports undefined inputs as
// errors. It is safe for concurrent use.
type Scorer struct {
	weights quality.Weights
	obs     *observer
}

// NewScorer creates a Scorer. It fails if the configured weights are invalid.
func NewScorer(opts ...Option) (*Scorer, error) {
	cfg := &scorerConfig{weights: quality.DefaultWeights()}
	for _, o := range opts {
		o.apply(cfg)
	}

	if err := cfg.weights.Validate(); err != nil {
		return nil, fmt.Errorf("posquality: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}
	return &Scorer{weights: cfg.weights, obs: obs}, nil
}

// Weights returns the weights the Scorer was built with.
func (s *Scorer) Weights() Weights { return s.weights }

// Score scores a provider with positional attributes. Errors match
// ErrInvalidAttributeDomain, ErrNonPositiveAggregate or ErrZeroDistance,
// checked in that order. The Breakdown is filled in for the latter two.
func (s *Scorer) Score(userCoord, providerCoord Coordinate, user, provider Params) (Breakdown, error) {
	start := time.Now()
	b, err := quality.Score(userCoord, providerCoord, user, provider, s.weights)
	s.obs.observe("score", start, b, err)
	return b, err
}

// ScoreNamed scores a provider with named attributes. Names are paired across
// user and provider; a name missing on one side counts as "not given".
func (s *Scorer) ScoreNamed(userCoord, providerCoord Coordinate, user, provider NamedParams) (Breakdown, error) {
	start := time.Now()
	b, err := quality.ScoreNamed(userCoord, providerCoord, user, provider, s.weights)
	s.obs.observe("score_named", start, b, err)
	return b, err
}
