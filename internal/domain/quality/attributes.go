package quality

import (
	"maps"
	"slices"
)

// Params holds positional attribute values. A user's Params carry reference
// values; a provider's carry observed values at the same positions.
type Params struct {
	Quantitative []float64
	Categorical  []string
}

// NamedParams holds attribute values keyed by attribute name.
type NamedParams struct {
	Quantitative map[string]float64
	Categorical  map[string]string
}

// Align turns two named attribute sets into positionally aligned Params over
// the union of their attribute names, in lexical order. A name present on only
// one side pairs with 0 or "", which scores 0.
func Align(user, provider NamedParams) (Params, Params) {
	qNames := unionKeys(user.Quantitative, provider.Quantitative)
	cNames := unionKeys(user.Categorical, provider.Categorical)

	u := Params{
		Quantitative: make([]float64, len(qNames)),
		Categorical:  make([]string, len(cNames)),
	}
	p := Params{
		Quantitative: make([]float64, len(qNames)),
		Categorical:  make([]string, len(cNames)),
	}
	for k, name := range qNames {
		u.Quantitative[k] = user.Quantitative[name]
		p.Quantitative[k] = provider.Quantitative[name]
	}
	for k, name := range cNames {
		u.Categorical[k] = user.Categorical[name]
		p.Categorical[k] = provider.Categorical[name]
	}
	return u, p
}

// QuantitativeNames returns the aligned quantitative attribute names of user and provider.
func QuantitativeNames(user, provider NamedParams) []string {
	return unionKeys(user.Quantitative, provider.Quantitative)
}

func unionKeys[V any](a, b map[string]V) []string {
	set := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		set[k] = struct{}{}
	}
	for k := range b {
		set[k] = struct{}{}
	}
	return slices.Sorted(maps.Keys(set))
}
