package scoring

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/posquality/internal/domain"
	dombatch "github.com/kailas-cloud/posquality/internal/domain/batch"
	"github.com/kailas-cloud/posquality/internal/domain/geo"
	"github.com/kailas-cloud/posquality/internal/domain/quality"
	"github.com/kailas-cloud/posquality/internal/logger"
)

// MaxBatchSize is the default maximum number of providers per batch request.
const MaxBatchSize = 100

// Outcome labels, one per domain failure plus success.
const (
	OutcomeOK                     = "ok"
	OutcomeInvalidAttributeDomain = "invalid_attribute_domain"
	OutcomeZeroDistance           = "zero_distance"
	OutcomeNonPositiveAggregate   = "non_positive_aggregate"
	OutcomeInvalidWeights         = "invalid_weights"
	OutcomeInvalidRequest         = "invalid_request"
	OutcomeError                  = "error"
)

// Service scores providers against a user's search request.
// It never sorts: batch results keep the order of the input.
type Service struct {
	weights      quality.Weights
	recorder     Recorder
	maxBatchSize int
}

// New creates a scoring service with default weights. recorder can be nil.
func New(weights quality.Weights, recorder Recorder) *Service {
	return &Service{weights: weights, recorder: recorder, maxBatchSize: MaxBatchSize}
}

// WithMaxBatchSize configures the maximum batch size.
func (s *Service) WithMaxBatchSize(size int) *Service {
	if size > 0 {
		s.maxBatchSize = size
	}
	return s
}

// Weights returns the default weights.
func (s *Service) Weights() quality.Weights { return s.weights }

// Score scores a single provider.
func (s *Service) Score(ctx context.Context, req Request) (quality.Breakdown, error) {
	w := s.resolveWeights(req.Weights)
	return s.score(ctx, req.User, req.Provider, w)
}

// ScoreBatch scores every provider against the same user and weights.
// Per-provider failures are reported in the results; the error return is
// reserved for problems with the batch itself.
func (s *Service) ScoreBatch(
	ctx context.Context, user Party, providers []Party, weights *quality.Weights,
) ([]dombatch.Result, error) {
	if len(providers) == 0 {
		return nil, fmt.Errorf("%w: at least one provider is required", domain.ErrInvalidRequest)
	}
	if len(providers) > s.maxBatchSize {
		return nil, fmt.Errorf("%w: batch size exceeds %d", domain.ErrInvalidRequest, s.maxBatchSize)
	}

	w := s.resolveWeights(weights)
	if err := w.Validate(); err != nil {
		return nil, err
	}

	results := make([]dombatch.Result, len(providers))
	for i, p := range providers {
		b, err := s.score(ctx, user, p, w)
		if err != nil {
			results[i] = dombatch.NewError(p.ID, err)
			continue
		}
		results[i] = dombatch.NewOK(p.ID, b)
	}
	return results, nil
}

func (s *Service) resolveWeights(override *quality.Weights) quality.Weights {
	if override != nil {
		return *override
	}
	return s.weights
}

func (s *Service) score(
	ctx context.Context, user, provider Party, w quality.Weights,
) (quality.Breakdown, error) {
	start := time.Now()

	b, err := s.compute(user, provider, w)

	outcome := OutcomeOf(err)
	s.observe(outcome, b.Score, time.Since(start))

	log := logger.FromContext(ctx)
	if err != nil {
		log.Debug("provider not scorable",
			zap.String("provider_id", provider.ID),
			zap.String("outcome", outcome),
			zap.Error(err),
		)
		return quality.Breakdown{}, err
	}

	log.Debug("provider scored",
		zap.String("provider_id", provider.ID),
		zap.Float64("score", b.Score),
		zap.Float64("distance_km", b.DistanceKm),
		zap.Float64("quantitative_total", b.QuantitativeTotal),
		zap.Int("categorical_total", b.CategoricalTotal),
	)
	return b, nil
}

func (s *Service) compute(user, provider Party, w quality.Weights) (quality.Breakdown, error) {
	if err := checkModes(user, provider); err != nil {
		return quality.Breakdown{}, err
	}

	if user.Named != nil {
		b, err := quality.ScoreNamed(user.Location, provider.Location, *user.Named, *provider.Named, w)
		if err != nil {
			return b, nameAttributeError(err, *user.Named, *provider.Named)
		}
		return b, nil
	}

	return quality.Score(user.Location, provider.Location, user.Params, provider.Params, w)
}

// nameAttributeError adds the attribute name to a positional domain error.
func nameAttributeError(err error, user, provider quality.NamedParams) error {
	var ade *domain.AttributeDomainError
	if !errors.As(err, &ade) {
		return err
	}
	names := quality.QuantitativeNames(user, provider)
	if ade.Index < 0 || ade.Index >= len(names) {
		return err
	}
	return fmt.Errorf("attribute %q: %w", names[ade.Index], err)
}

func (s *Service) observe(outcome string, score float64, d time.Duration) {
	if s.recorder == nil {
		return
	}
	s.recorder.ObserveScore(outcome, score, d)
}

// OutcomeOf maps a scoring error to its outcome label.
func OutcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, domain.ErrInvalidAttributeDomain):
		return OutcomeInvalidAttributeDomain
	case errors.Is(err, domain.ErrZeroDistance):
		return OutcomeZeroDistance
	case errors.Is(err, domain.ErrNonPositiveAggregate):
		return OutcomeNonPositiveAggregate
	case errors.Is(err, domain.ErrInvalidWeights):
		return OutcomeInvalidWeights
	case errors.Is(err, domain.ErrInvalidRequest):
		return OutcomeInvalidRequest
	default:
		return OutcomeError
	}
}

// canary is a request with a known finite, positive score.
var canary = Request{
	User: Party{
		ID:       "canary-user",
		Location: geo.Coordinate{Latitude: 6.5244, Longitude: 3.3792},
		Params:   quality.Params{Quantitative: []float64{30, 4.8}, Categorical: []string{"regular"}},
	},
	Provider: Party{
		ID:       "canary-provider",
		Location: geo.Coordinate{Latitude: 9.0765, Longitude: 7.3986},
		Params:   quality.Params{Quantitative: []float64{31.2, 4.7}, Categorical: []string{"regular"}},
	},
}

// HealthCheck validates the default weights and scores a fixed canary request.
// Canary calls are not recorded.
func (s *Service) HealthCheck(_ context.Context) error {
	b, err := s.compute(canary.User, canary.Provider, s.weights)
	if err != nil {
		return fmt.Errorf("canary score: %w", err)
	}
	if math.IsNaN(b.Score) || math.IsInf(b.Score, 0) || b.Score <= 0 {
		return fmt.Errorf("canary score out of range: %g", b.Score)
	}
	return nil
}
