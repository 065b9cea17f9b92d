package quality

import (
	"fmt"
	"math"

	"github.com/kailas-cloud/posquality/internal/domain"
	"github.com/kailas-cloud/posquality/internal/domain/geo"
)

// Breakdown holds the intermediate values of one scoring call.
type Breakdown struct {
	DistanceKm        float64
	QuantitativeTotal float64
	CategoricalTotal  int
	WeightProduct     float64
	Score             float64
}

// RawScore composes distance and attribute totals into a quality score and
// lets IEEE-754 special values through: coinciding coordinates divide by zero
// and a zero factor product takes the logarithm of zero.
func RawScore(
	userLoc, providerLoc geo.Coordinate,
	user, provider Params,
	w Weights,
) float64 {
	return compose(userLoc, providerLoc, user, provider, w).Score
}

// Score is RawScore with explicit failures. Checks run in order: weights,
// quantitative attribute domain, factor product, distance.
func Score(
	userLoc, providerLoc geo.Coordinate,
	user, provider Params,
	w Weights,
) (Breakdown, error) {
	if err := w.Validate(); err != nil {
		return Breakdown{}, err
	}
	if err := checkQuantitativeDomains(user.Quantitative, provider.Quantitative); err != nil {
		return Breakdown{}, err
	}

	b := compose(userLoc, providerLoc, user, provider, w)

	if product := b.QuantitativeTotal * float64(b.CategoricalTotal); product <= 0 {
		return b, fmt.Errorf("%w: quantitative total %g x categorical total %d",
			domain.ErrNonPositiveAggregate, b.QuantitativeTotal, b.CategoricalTotal)
	}
	if b.DistanceKm == 0 {
		return b, domain.ErrZeroDistance
	}
	return b, nil
}

// ScoreNamed aligns named attributes and scores them. Attribute domain errors
// carry the positional index into the lexically sorted quantitative names.
func ScoreNamed(
	userLoc, providerLoc geo.Coordinate,
	user, provider NamedParams,
	w Weights,
) (Breakdown, error) {
	u, p := Align(user, provider)
	return Score(userLoc, providerLoc, u, p, w)
}

func compose(
	userLoc, providerLoc geo.Coordinate,
	user, provider Params,
	w Weights,
) Breakdown {
	distance := userLoc.DistanceTo(providerLoc)
	qf := SumQuantitative(user.Quantitative, provider.Quantitative)
	cf := SumCategorical(user.Categorical, provider.Categorical)

	product := qf * float64(cf)
	wp := w.Product()
	adjusted := math.Pow(product, wp)
	normalized := math.Log10(adjusted)

	return Breakdown{
		DistanceKm:        distance,
		QuantitativeTotal: qf,
		CategoricalTotal:  cf,
		WeightProduct:     wp,
		Score:             normalized / distance,
	}
}
