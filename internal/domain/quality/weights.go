package quality

import (
	"fmt"
	"math"

	"github.com/kailas-cloud/posquality/internal/domain"
)

// weightSumTolerance absorbs float noise in user-supplied complements such as 0.7/0.3.
const weightSumTolerance = 1e-9

// Weights balances timeliness (proximity) against accuracy (attribute match).
// The two must sum to 1.
type Weights struct {
	Timeliness float64
	Accuracy   float64
}

// DefaultWeights returns the even 0.5/0.5 split.
func DefaultWeights() Weights {
	return Weights{Timeliness: 0.5, Accuracy: 0.5}
}

// WeightsFromTimeliness builds a pair whose accuracy is the complement of timeliness.
func WeightsFromTimeliness(timeliness float64) Weights {
	return Weights{Timeliness: timeliness, Accuracy: 1 - timeliness}
}

// Validate checks that both weights lie in [0, 1] and sum to 1.
func (w Weights) Validate() error {
	if w.Timeliness < 0 || w.Timeliness > 1 || math.IsNaN(w.Timeliness) {
		return fmt.Errorf("%w: timeliness must be between 0 and 1, got %g", domain.ErrInvalidWeights, w.Timeliness)
	}
	if w.Accuracy < 0 || w.Accuracy > 1 || math.IsNaN(w.Accuracy) {
		return fmt.Errorf("%w: accuracy must be between 0 and 1, got %g", domain.ErrInvalidWeights, w.Accuracy)
	}
	if math.Abs(w.Timeliness+w.Accuracy-1) > weightSumTolerance {
		return fmt.Errorf("%w: timeliness + accuracy must equal 1, got %g",
			domain.ErrInvalidWeights, w.Timeliness+w.Accuracy)
	}
	return nil
}

// Product is the exponent applied to the factor product.
// It is symmetric: (w, 1-w) and (1-w, w) give the same value, so swapping
// the two weights never changes a score.
func (w Weights) Product() float64 {
	return w.Timeliness * w.Accuracy
}
