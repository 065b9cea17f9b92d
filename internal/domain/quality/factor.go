// Package quality scores a point-of-sale provider against a user's search request.
//
// The pipeline is leaf to root: per-attribute factors, their positional sums,
// and the weighted composition with great-circle distance into one score.
// Scores are only comparable between providers evaluated against the same request.
package quality

import (
	"math"

	"github.com/kailas-cloud/posquality/internal/domain"
)

// QuantitativeFactor compares a reference value with an observed value on a
// logarithmic scale. A zero on either side means the attribute was not given
// and yields 0. Equal values yield 1. Otherwise the result is
// log10(min)/log10(max).
//
// Both values must be positive and different from 1 for the ratio to be
// defined; see CheckQuantitativeDomain.
func QuantitativeFactor(ref, i float64) float64 {
	if ref == 0 || i == 0 {
		return 0
	}
	if ref == i {
		return 1
	}
	lo, hi := math.Min(ref, i), math.Max(ref, i)
	return math.Log10(lo) / math.Log10(hi)
}

// CheckQuantitativeDomain reports whether QuantitativeFactor(ref, i) is a
// finite, well-defined ratio.
func CheckQuantitativeDomain(ref, i float64) error {
	if ref == 0 || i == 0 || ref == i {
		return nil
	}
	if ref <= 0 || i <= 0 || ref == 1 || i == 1 {
		return domain.ErrInvalidAttributeDomain
	}
	return nil
}

// CategoricalFactor is 1 when both values are non-empty and byte-equal, 0 otherwise.
func CategoricalFactor(ref, i string) int {
	if ref != "" && i != "" && ref == i {
		return 1
	}
	return 0
}
