package quality

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/posquality/internal/domain"
)

func TestDefaultWeights(t *testing.T) {
	w := DefaultWeights()
	if w.Timeliness != 0.5 || w.Accuracy != 0.5 {
		t.Fatalf("unexpected defaults: %+v", w)
	}
	if w.Product() != 0.25 {
		t.Errorf("Product() = %g, want 0.25", w.Product())
	}
	if err := w.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestWeights_Validate(t *testing.T) {
	tests := []struct {
		name    string
		w       Weights
		wantErr bool
	}{
		{"even", Weights{0.5, 0.5}, false},
		{"skewed", Weights{0.7, 0.3}, false},
		{"all timeliness", Weights{1, 0}, false},
		{"complement", WeightsFromTimeliness(0.15), false},
		{"sum above one", Weights{0.6, 0.6}, true},
		{"sum below one", Weights{0.2, 0.2}, true},
		{"negative", Weights{-0.5, 1.5}, true},
		{"zero", Weights{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.w.Validate()
			if tt.wantErr && !errors.Is(err, domain.ErrInvalidWeights) {
				t.Errorf("expected ErrInvalidWeights, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestWeights_ProductSymmetric(t *testing.T) {
	for _, w := range []float64{0.1, 0.25, 0.4, 0.9} {
		a := WeightsFromTimeliness(w).Product()
		b := WeightsFromTimeliness(1 - w).Product()
		if !almost(a, b, 1e-15) {
			t.Errorf("Product for %g and %g differs: %g vs %g", w, 1-w, a, b)
		}
	}
}
