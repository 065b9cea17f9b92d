package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/posquality/internal/domain"
	"github.com/kailas-cloud/posquality/internal/domain/geo"
	"github.com/kailas-cloud/posquality/internal/domain/quality"
	scoringuc "github.com/kailas-cloud/posquality/internal/usecase/scoring"
)

// scenario is a user request and the providers to score against it.
type scenario struct {
	Weights   *scenarioWeights `yaml:"weights"`
	User      scenarioParty    `yaml:"user"`
	Providers []scenarioParty  `yaml:"providers"`
}

type scenarioWeights struct {
	Timeliness float64 `yaml:"timeliness"`
	Accuracy   float64 `yaml:"accuracy"`
}

type scenarioParty struct {
	ID                string             `yaml:"id"`
	Location          *scenarioLocation  `yaml:"location"`
	Quantitative      []float64          `yaml:"quantitative"`
	Categorical       []string           `yaml:"categorical"`
	QuantitativeNamed map[string]float64 `yaml:"quantitative_named"`
	CategoricalNamed  map[string]string  `yaml:"categorical_named"`
}

type scenarioLocation struct {
	Lat float64 `yaml:"lat"`
	Lon float64 `yaml:"lon"`
}

func loadScenario(path string) (scenario, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return scenario{}, fmt.Errorf("read scenario: %w", err)
	}

	var sc scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return scenario{}, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if len(sc.Providers) == 0 {
		return scenario{}, fmt.Errorf("scenario %s: no providers", path)
	}
	return sc, nil
}

func (s scenario) weights() *quality.Weights {
	if s.Weights == nil {
		return nil
	}
	return &quality.Weights{Timeliness: s.Weights.Timeliness, Accuracy: s.Weights.Accuracy}
}

func (p scenarioParty) toParty(role string, index int) (scoringuc.Party, error) {
	if p.Location == nil {
		return scoringuc.Party{}, fmt.Errorf("%w: %s %d has no location", domain.ErrInvalidRequest, role, index)
	}

	party := scoringuc.Party{
		ID:       p.ID,
		Location: geo.Coordinate{Latitude: p.Location.Lat, Longitude: p.Location.Lon},
		Params:   quality.Params{Quantitative: p.Quantitative, Categorical: p.Categorical},
	}
	if p.QuantitativeNamed != nil || p.CategoricalNamed != nil {
		if p.Quantitative != nil || p.Categorical != nil {
			return scoringuc.Party{}, fmt.Errorf(
				"%w: %s %d mixes positional and named attributes", domain.ErrInvalidRequest, role, index)
		}
		party.Named = &quality.NamedParams{
			Quantitative: p.QuantitativeNamed,
			Categorical:  p.CategoricalNamed,
		}
	}
	if party.ID == "" {
		party.ID = fmt.Sprintf("%s-%d", role, index+1)
	}
	return party, nil
}
