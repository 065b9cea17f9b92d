// Package posquality scores point-of-sale providers against a user's search
// request. A score combines attribute similarity with the great-circle
// distance between the user and the provider: closer providers whose
// attributes match better score higher.
//
// Scores are only meaningful relative to other providers evaluated for the
// same request; there is no absolute scale.
//
// # Positional attributes
//
// Quantitative and categorical attributes are paired by position:
//
//	user := posquality.Params{
//	    Quantitative: []float64{30, 4.8},                    // price, rating
//	    Categorical:  []string{"regular", "pizza:mozzarella"},
//	}
//	score := posquality.QualityScore(userLoc, providerLoc, user, provider)
//
// QualityScore follows IEEE-754 semantics: a provider at the user's location
// scores ±Inf and a provider matching nothing scores -Inf or NaN.
//
// # Scorer with explicit failures
//
//	s, _ := posquality.NewScorer(posquality.WithTimelinessWeight(0.7))
//	b, err := s.Score(userLoc, providerLoc, user, provider)
//	if errors.Is(err, posquality.ErrZeroDistance) {
//	    // provider is at the user's location
//	}
//
// ScoreNamed accepts attributes keyed by name, which removes the need to keep
// both sides in the same order.
package posquality
