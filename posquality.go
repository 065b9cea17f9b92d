package posquality

import (
	"github.com/kailas-cloud/posquality/internal/domain"
	"github.com/kailas-cloud/posquality/internal/domain/geo"
	"github.com/kailas-cloud/posquality/internal/domain/quality"
)

// Coordinate is a latitude/longitude pair in degrees.
type Coordinate = geo.Coordinate

// Params holds positional quantitative and categorical attributes.
// A zero quantitative value or an empty categorical value means "not given".
type Params = quality.Params

// NamedParams holds attributes keyed by name.
type NamedParams = quality.NamedParams

// Weights are the timeliness and accuracy weights. They must sum to 1.
type Weights = quality.Weights

// Breakdown is a score together with the values it was composed from.
type Breakdown = quality.Breakdown

// AttributeDomainError reports the quantitative attribute pair whose
// logarithmic ratio is undefined.
type AttributeDomainError = domain.AttributeDomainError

// Scoring errors.
var (
	ErrInvalidAttributeDomain = domain.ErrInvalidAttributeDomain
	ErrZeroDistance           = domain.ErrZeroDistance
	ErrNonPositiveAggregate   = domain.ErrNonPositiveAggregate
	ErrInvalidWeights         = domain.ErrInvalidWeights
)

// EarthRadiusKm is the mean Earth radius used for distances.
const EarthRadiusKm = geo.EarthRadiusKm

// DefaultWeights returns equal timeliness and accuracy weights.
func DefaultWeights() Weights { return quality.DefaultWeights() }

// HaversineDistance returns the great-circle distance in kilometers between
// two points given in degrees.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	return geo.Haversine(lat1, lon1, lat2, lon2)
}

// QuantitativeFactor compares a reference value with an observed one on a
// logarithmic scale: 0 when either is 0, 1 when equal, log10(min)/log10(max)
// otherwise.
func QuantitativeFactor(ref, i float64) float64 {
	return quality.QuantitativeFactor(ref, i)
}

// CategoricalFactor is 1 for equal non-empty values, 0 otherwise.
func CategoricalFactor(ref, i string) int {
	return quality.CategoricalFactor(ref, i)
}

// SumQuantitativeFactors sums QuantitativeFactor over positional pairs.
// Unpaired trailing elements are ignored.
func SumQuantitativeFactors(refs, observed []float64) float64 {
	return quality.SumQuantitative(refs, observed)
}

// SumCategoricalFactors counts positional pairs that match.
// Unpaired trailing elements are ignored.
func SumCategoricalFactors(refs, observed []string) int {
	return quality.SumCategorical(refs, observed)
}

// QualityScore scores a provider for a user with default weights.
// Undefined inputs yield ±Inf or NaN; use a Scorer for explicit errors.
func QualityScore(userCoord, providerCoord Coordinate, user, provider Params) float64 {
	return quality.RawScore(userCoord, providerCoord, user, provider, quality.DefaultWeights())
}
