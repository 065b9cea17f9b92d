package scoring

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/kailas-cloud/posquality/internal/domain"
	dombatch "github.com/kailas-cloud/posquality/internal/domain/batch"
	"github.com/kailas-cloud/posquality/internal/domain/geo"
	"github.com/kailas-cloud/posquality/internal/domain/quality"
)

// --- Mocks ---

type observation struct {
	outcome string
	score   float64
}

type mockRecorder struct {
	observed []observation
}

func (m *mockRecorder) ObserveScore(outcome string, score float64, _ time.Duration) {
	m.observed = append(m.observed, observation{outcome: outcome, score: score})
}

// --- Fixtures ---

var (
	lagos = geo.Coordinate{Latitude: 6.5244, Longitude: 3.3792}
	abuja = geo.Coordinate{Latitude: 9.0765, Longitude: 7.3986}
)

func pizzaUser() Party {
	return Party{
		ID:       "user",
		Location: lagos,
		Params: quality.Params{
			Quantitative: []float64{30, 4.8},
			Categorical:  []string{"regular", "pizza:mozzarella"},
		},
	}
}

func provider(id string, price, rating float64, crust string) Party {
	return Party{
		ID:       id,
		Location: abuja,
		Params: quality.Params{
			Quantitative: []float64{price, rating},
			Categorical:  []string{crust, "pizza:mozzarella"},
		},
	}
}

// --- Tests ---

func TestScore_DefaultWeights(t *testing.T) {
	rec := &mockRecorder{}
	svc := New(quality.DefaultWeights(), rec)

	b, err := svc.Score(context.Background(), Request{
		User:     pizzaUser(),
		Provider: provider("b", 31.2, 4.7, "regular"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := 0.0002836274187406838
	if diff := b.Score - want; diff > 1e-15 || diff < -1e-15 {
		t.Errorf("score = %.19g, want %.19g", b.Score, want)
	}
	if len(rec.observed) != 1 || rec.observed[0].outcome != OutcomeOK {
		t.Errorf("expected one ok observation, got %+v", rec.observed)
	}
}

func TestScore_WeightsOverride(t *testing.T) {
	svc := New(quality.DefaultWeights(), nil)
	req := Request{User: pizzaUser(), Provider: provider("b", 31.2, 4.7, "regular")}

	base, err := svc.Score(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w := quality.WeightsFromTimeliness(0.9)
	req.Weights = &w
	skewed, err := svc.Score(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if skewed.WeightProduct >= base.WeightProduct {
		t.Errorf("expected smaller weight product, got %g vs %g", skewed.WeightProduct, base.WeightProduct)
	}
	if skewed.Score >= base.Score {
		t.Errorf("expected a smaller exponent to shrink the score: %g vs %g", skewed.Score, base.Score)
	}
}

func TestScore_InvalidWeightsOverride(t *testing.T) {
	rec := &mockRecorder{}
	svc := New(quality.DefaultWeights(), rec)
	w := quality.Weights{Timeliness: 0.7, Accuracy: 0.7}

	_, err := svc.Score(context.Background(), Request{
		User: pizzaUser(), Provider: provider("b", 31.2, 4.7, "regular"), Weights: &w,
	})
	if !errors.Is(err, domain.ErrInvalidWeights) {
		t.Fatalf("expected ErrInvalidWeights, got %v", err)
	}
	if rec.observed[0].outcome != OutcomeInvalidWeights {
		t.Errorf("outcome = %q, want %q", rec.observed[0].outcome, OutcomeInvalidWeights)
	}
}

func TestScore_MixedModesRejected(t *testing.T) {
	svc := New(quality.DefaultWeights(), nil)
	p := provider("b", 31.2, 4.7, "regular")
	p.Named = &quality.NamedParams{Quantitative: map[string]float64{"price": 31.2}}

	_, err := svc.Score(context.Background(), Request{User: pizzaUser(), Provider: p})
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestScore_NamedAttributeErrorCarriesName(t *testing.T) {
	svc := New(quality.DefaultWeights(), nil)
	user := Party{Location: lagos, Named: &quality.NamedParams{
		Quantitative: map[string]float64{"price": 30, "rating": 4.8},
		Categorical:  map[string]string{"crust": "regular"},
	}}
	p := Party{ID: "x", Location: abuja, Named: &quality.NamedParams{
		Quantitative: map[string]float64{"price": 31.2, "rating": 1},
		Categorical:  map[string]string{"crust": "regular"},
	}}

	_, err := svc.Score(context.Background(), Request{User: user, Provider: p})
	if !errors.Is(err, domain.ErrInvalidAttributeDomain) {
		t.Fatalf("expected ErrInvalidAttributeDomain, got %v", err)
	}
	if !strings.Contains(err.Error(), `attribute "rating"`) {
		t.Errorf("expected attribute name in error, got %q", err.Error())
	}
}

func TestScoreBatch_KeepsInputOrder(t *testing.T) {
	rec := &mockRecorder{}
	svc := New(quality.DefaultWeights(), rec)

	providers := []Party{
		provider("a", 32.5, 4.6, "thick"),
		provider("b", 31.2, 4.7, "regular"),
		provider("c", 31.2, 4.7, "stuffed"),
	}
	providers[2].Params.Categorical = []string{"stuffed", "pasta"}

	results, err := svc.ScoreBatch(context.Background(), pizzaUser(), providers, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	for i, id := range []string{"a", "b", "c"} {
		if results[i].ID() != id {
			t.Errorf("results[%d].ID() = %q, want %q", i, results[i].ID(), id)
		}
	}
	if results[0].Status() != dombatch.StatusOK || results[1].Status() != dombatch.StatusOK {
		t.Fatalf("expected a and b to score, got %q and %q", results[0].Status(), results[1].Status())
	}
	if results[1].Breakdown().Score <= results[0].Breakdown().Score {
		t.Errorf("expected b to outscore a")
	}
	if results[2].Status() != dombatch.StatusError ||
		!errors.Is(results[2].Err(), domain.ErrNonPositiveAggregate) {
		t.Errorf("expected c to fail with ErrNonPositiveAggregate, got %v", results[2].Err())
	}
	if len(rec.observed) != 3 {
		t.Errorf("expected 3 observations, got %d", len(rec.observed))
	}
}

func TestScoreBatch_Limits(t *testing.T) {
	svc := New(quality.DefaultWeights(), nil).WithMaxBatchSize(2)

	t.Run("empty", func(t *testing.T) {
		_, err := svc.ScoreBatch(context.Background(), pizzaUser(), nil, nil)
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("expected ErrInvalidRequest, got %v", err)
		}
	})

	t.Run("too large", func(t *testing.T) {
		providers := make([]Party, 3)
		for i := range providers {
			providers[i] = provider(fmt.Sprintf("p%d", i), 31.2, 4.7, "regular")
		}
		_, err := svc.ScoreBatch(context.Background(), pizzaUser(), providers, nil)
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("expected ErrInvalidRequest, got %v", err)
		}
	})

	t.Run("invalid weights", func(t *testing.T) {
		w := quality.Weights{Timeliness: 2, Accuracy: -1}
		_, err := svc.ScoreBatch(context.Background(), pizzaUser(),
			[]Party{provider("b", 31.2, 4.7, "regular")}, &w)
		if !errors.Is(err, domain.ErrInvalidWeights) {
			t.Errorf("expected ErrInvalidWeights, got %v", err)
		}
	})
}

func TestOutcomeOf(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, OutcomeOK},
		{domain.NewAttributeDomainError(0, 1, 2), OutcomeInvalidAttributeDomain},
		{fmt.Errorf("wrap: %w", domain.ErrZeroDistance), OutcomeZeroDistance},
		{domain.ErrNonPositiveAggregate, OutcomeNonPositiveAggregate},
		{domain.ErrInvalidWeights, OutcomeInvalidWeights},
		{domain.ErrInvalidRequest, OutcomeInvalidRequest},
		{errors.New("boom"), OutcomeError},
	}
	for _, tt := range tests {
		if got := OutcomeOf(tt.err); got != tt.want {
			t.Errorf("OutcomeOf(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestHealthCheck(t *testing.T) {
	rec := &mockRecorder{}
	if err := New(quality.DefaultWeights(), rec).HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck: %v", err)
	}
	if len(rec.observed) != 0 {
		t.Errorf("canary should not be recorded, got %v", rec.observed)
	}

	bad := New(quality.Weights{Timeliness: 0.9, Accuracy: 0.9}, nil)
	if err := bad.HealthCheck(context.Background()); !errors.Is(err, domain.ErrInvalidWeights) {
		t.Errorf("expected ErrInvalidWeights, got %v", err)
	}
}
