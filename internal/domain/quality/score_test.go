package quality

import (
	"errors"
	"math"
	"testing"

	"github.com/kailas-cloud/posquality/internal/domain"
	"github.com/kailas-cloud/posquality/internal/domain/geo"
)

var (
	lagos = geo.Coordinate{Latitude: 6.5244, Longitude: 3.3792}
	abuja = geo.Coordinate{Latitude: 9.0765, Longitude: 7.3986}

	pizzaUser = Params{
		Quantitative: []float64{30, 4.8},
		Categorical:  []string{"regular", "pizza:mozzarella"},
	}
	pizzaProviderA = Params{
		Quantitative: []float64{32.50, 4.6},
		Categorical:  []string{"thick", "pizza:mozzarella"},
	}
	pizzaProviderB = Params{
		Quantitative: []float64{31.20, 4.7},
		Categorical:  []string{"regular", "pizza:mozzarella"},
	}
)

func relAlmost(got, want float64) bool {
	return math.Abs(got-want) <= 1e-12*math.Abs(want)
}

func TestRawScore_PizzaProviders(t *testing.T) {
	a := RawScore(lagos, abuja, pizzaUser, pizzaProviderA, DefaultWeights())
	b := RawScore(lagos, abuja, pizzaUser, pizzaProviderB, DefaultWeights())

	if !relAlmost(a, 0.0001378627126888822) {
		t.Errorf("provider A score = %.19g, want 0.0001378627126888822", a)
	}
	if !relAlmost(b, 0.0002836274187406838) {
		t.Errorf("provider B score = %.19g, want 0.0002836274187406838", b)
	}
	if b <= a {
		t.Errorf("expected provider B (%g) to outrank provider A (%g)", b, a)
	}
}

func TestScore_MatchesRawScore(t *testing.T) {
	b, err := Score(lagos, abuja, pizzaUser, pizzaProviderB, DefaultWeights())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if raw := RawScore(lagos, abuja, pizzaUser, pizzaProviderB, DefaultWeights()); b.Score != raw {
		t.Errorf("Score = %g, RawScore = %g", b.Score, raw)
	}
	if b.CategoricalTotal != 2 {
		t.Errorf("CategoricalTotal = %d, want 2", b.CategoricalTotal)
	}
	if b.WeightProduct != 0.25 {
		t.Errorf("WeightProduct = %g, want 0.25", b.WeightProduct)
	}
	if !almost(b.DistanceKm, 525.8979535468812, 1e-9) {
		t.Errorf("DistanceKm = %g", b.DistanceKm)
	}
}

func TestRawScore_PropagatesSpecialValues(t *testing.T) {
	t.Run("zero distance", func(t *testing.T) {
		got := RawScore(lagos, lagos, pizzaUser, pizzaProviderB, DefaultWeights())
		if !math.IsInf(got, 1) {
			t.Errorf("expected +Inf, got %g", got)
		}
	})

	t.Run("no categorical match", func(t *testing.T) {
		provider := Params{Quantitative: []float64{31.2, 4.7}, Categorical: []string{"thin", "pasta"}}
		got := RawScore(lagos, abuja, pizzaUser, provider, DefaultWeights())
		if !math.IsInf(got, -1) {
			t.Errorf("expected -Inf, got %g", got)
		}
	})
}

func TestScore_Failures(t *testing.T) {
	tests := []struct {
		name     string
		user     geo.Coordinate
		provider Params
		weights  Weights
		want     error
	}{
		{
			name:     "invalid weights",
			user:     lagos,
			provider: pizzaProviderB,
			weights:  Weights{Timeliness: 0.9, Accuracy: 0.9},
			want:     domain.ErrInvalidWeights,
		},
		{
			name: "attribute equal to one",
			user: lagos,
			provider: Params{
				Quantitative: []float64{1, 4.7},
				Categorical:  []string{"regular", "pizza:mozzarella"},
			},
			weights: DefaultWeights(),
			want:    domain.ErrInvalidAttributeDomain,
		},
		{
			name: "negative attribute",
			user: lagos,
			provider: Params{
				Quantitative: []float64{-31.2, 4.7},
				Categorical:  []string{"regular", "pizza:mozzarella"},
			},
			weights: DefaultWeights(),
			want:    domain.ErrInvalidAttributeDomain,
		},
		{
			name: "no categorical match",
			user: lagos,
			provider: Params{
				Quantitative: []float64{31.2, 4.7},
				Categorical:  []string{"thin", "pasta"},
			},
			weights: DefaultWeights(),
			want:    domain.ErrNonPositiveAggregate,
		},
		{
			name:     "no quantitative data",
			user:     lagos,
			provider: Params{Categorical: []string{"regular", "pizza:mozzarella"}},
			weights:  DefaultWeights(),
			want:     domain.ErrNonPositiveAggregate,
		},
		{
			name:     "same location",
			user:     abuja,
			provider: pizzaProviderB,
			weights:  DefaultWeights(),
			want:     domain.ErrZeroDistance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Score(tt.user, abuja, pizzaUser, tt.provider, tt.weights)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestScore_SwappedWeightsSameScore(t *testing.T) {
	a, err := Score(lagos, abuja, pizzaUser, pizzaProviderB, WeightsFromTimeliness(0.8))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Score(lagos, abuja, pizzaUser, pizzaProviderB, Weights{Timeliness: 0.2, Accuracy: 0.8})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !relAlmost(a.Score, b.Score) {
		t.Errorf("swapped weights changed the score: %g vs %g", a.Score, b.Score)
	}
}

func TestScoreNamed_MatchesPositional(t *testing.T) {
	user := NamedParams{
		Quantitative: map[string]float64{"price": 30, "rating": 4.8},
		Categorical:  map[string]string{"crust": "regular", "item": "pizza:mozzarella"},
	}
	provider := NamedParams{
		Quantitative: map[string]float64{"price": 31.2, "rating": 4.7},
		Categorical:  map[string]string{"crust": "regular", "item": "pizza:mozzarella"},
	}

	named, err := ScoreNamed(lagos, abuja, user, provider, DefaultWeights())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !relAlmost(named.Score, 0.0002836274187406838) {
		t.Errorf("ScoreNamed = %.19g, want 0.0002836274187406838", named.Score)
	}
}
