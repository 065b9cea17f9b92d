package quality

import "github.com/kailas-cloud/posquality/internal/domain"

// SumQuantitative pairs refs and observed by position and sums their
// quantitative factors. Pairing stops at the shorter slice.
func SumQuantitative(refs, observed []float64) float64 {
	n := min(len(refs), len(observed))
	var total float64
	for k := 0; k < n; k++ {
		total += QuantitativeFactor(refs[k], observed[k])
	}
	return total
}

// SumCategorical pairs refs and observed by position and counts exact matches.
// Pairing stops at the shorter slice.
func SumCategorical(refs, observed []string) int {
	n := min(len(refs), len(observed))
	var total int
	for k := 0; k < n; k++ {
		total += CategoricalFactor(refs[k], observed[k])
	}
	return total
}

// checkQuantitativeDomains validates every paired quantitative attribute.
func checkQuantitativeDomains(refs, observed []float64) error {
	n := min(len(refs), len(observed))
	for k := 0; k < n; k++ {
		if CheckQuantitativeDomain(refs[k], observed[k]) != nil {
			return domain.NewAttributeDomainError(k, refs[k], observed[k])
		}
	}
	return nil
}
