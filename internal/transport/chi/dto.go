package chi

import (
	"fmt"

	"github.com/kailas-cloud/posquality/internal/domain"
	dombatch "github.com/kailas-cloud/posquality/internal/domain/batch"
	"github.com/kailas-cloud/posquality/internal/domain/geo"
	"github.com/kailas-cloud/posquality/internal/domain/quality"
	scoringuc "github.com/kailas-cloud/posquality/internal/usecase/scoring"
)

// Error codes returned in ErrorResponse.Code.
const (
	CodeBadRequest             = "bad_request"
	CodeUnauthorized           = "unauthorized"
	CodeInvalidWeights         = "invalid_weights"
	CodeInvalidAttributeDomain = "invalid_attribute_domain"
	CodeZeroDistance           = "zero_distance"
	CodeNonPositiveAggregate   = "non_positive_aggregate"
	CodeInternalError          = "internal_error"
)

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Location is a latitude/longitude pair in degrees.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Party is a user or provider with either positional or named attributes.
type Party struct {
	ID                string             `json:"id,omitempty"`
	Location          *Location          `json:"location"`
	Quantitative      []float64          `json:"quantitative,omitempty"`
	Categorical       []string           `json:"categorical,omitempty"`
	QuantitativeNamed map[string]float64 `json:"quantitative_named,omitempty"`
	CategoricalNamed  map[string]string  `json:"categorical_named,omitempty"`
}

// Weights overrides the server's default weights. A single value is
// completed with its complement.
type Weights struct {
	Timeliness *float64 `json:"timeliness,omitempty"`
	Accuracy   *float64 `json:"accuracy,omitempty"`
}

// ScoreRequest is the body of POST /v1/score.
type ScoreRequest struct {
	User     Party    `json:"user"`
	Provider Party    `json:"provider"`
	Weights  *Weights `json:"weights,omitempty"`
}

// BatchScoreRequest is the body of POST /v1/score/batch.
type BatchScoreRequest struct {
	User      Party    `json:"user"`
	Providers []Party  `json:"providers"`
	Weights   *Weights `json:"weights,omitempty"`
}

// Breakdown is a quality score with its components.
type Breakdown struct {
	Score             float64 `json:"score"`
	DistanceKm        float64 `json:"distance_km"`
	QuantitativeTotal float64 `json:"quantitative_total"`
	CategoricalTotal  int     `json:"categorical_total"`
	WeightProduct     float64 `json:"weight_product"`
}

// BatchItem is the outcome for one provider of a batch, in request order.
type BatchItem struct {
	ID        string         `json:"id"`
	Status    string         `json:"status"`
	Breakdown *Breakdown     `json:"breakdown,omitempty"`
	Error     *ErrorResponse `json:"error,omitempty"`
}

// BatchScoreResponse is the body returned by POST /v1/score/batch.
type BatchScoreResponse struct {
	Items []BatchItem `json:"items"`
}

// HealthResponse is the body returned by GET /health.
type HealthResponse struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks"`
	Version string            `json:"version"`
	Commit  string            `json:"commit"`
}

func partyFromDTO(p Party, role string) (scoringuc.Party, error) {
	if p.Location == nil {
		return scoringuc.Party{}, fmt.Errorf("%w: %s.location is required", domain.ErrInvalidRequest, role)
	}

	named := p.QuantitativeNamed != nil || p.CategoricalNamed != nil
	positional := p.Quantitative != nil || p.Categorical != nil
	if named && positional {
		return scoringuc.Party{}, fmt.Errorf(
			"%w: %s mixes positional and named attributes", domain.ErrInvalidRequest, role)
	}

	party := scoringuc.Party{
		ID:       p.ID,
		Location: geo.Coordinate{Latitude: p.Location.Lat, Longitude: p.Location.Lon},
		Params: quality.Params{
			Quantitative: p.Quantitative,
			Categorical:  p.Categorical,
		},
	}
	if named {
		party.Named = &quality.NamedParams{
			Quantitative: p.QuantitativeNamed,
			Categorical:  p.CategoricalNamed,
		}
	}
	return party, nil
}

func weightsFromDTO(w *Weights) *quality.Weights {
	if w == nil || (w.Timeliness == nil && w.Accuracy == nil) {
		return nil
	}
	var out quality.Weights
	switch {
	case w.Timeliness != nil && w.Accuracy != nil:
		out = quality.Weights{Timeliness: *w.Timeliness, Accuracy: *w.Accuracy}
	case w.Timeliness != nil:
		out = quality.WeightsFromTimeliness(*w.Timeliness)
	default:
		out = quality.Weights{Timeliness: 1 - *w.Accuracy, Accuracy: *w.Accuracy}
	}
	return &out
}

func breakdownToDTO(b quality.Breakdown) Breakdown {
	return Breakdown{
		Score:             b.Score,
		DistanceKm:        b.DistanceKm,
		QuantitativeTotal: b.QuantitativeTotal,
		CategoricalTotal:  b.CategoricalTotal,
		WeightProduct:     b.WeightProduct,
	}
}

func batchResultToDTO(r dombatch.Result) BatchItem {
	item := BatchItem{ID: r.ID(), Status: string(r.Status())}
	if r.Err() != nil {
		item.Error = &ErrorResponse{Code: errorCode(r.Err()), Message: r.Err().Error()}
		return item
	}
	b := breakdownToDTO(r.Breakdown())
	item.Breakdown = &b
	return item
}
