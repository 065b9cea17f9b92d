package scoring

import (
	"fmt"

	"github.com/kailas-cloud/posquality/internal/domain"
	"github.com/kailas-cloud/posquality/internal/domain/geo"
	"github.com/kailas-cloud/posquality/internal/domain/quality"
)

// Party is one side of a scoring call: the searching user or a provider.
// Named, when set, replaces the positional Params.
type Party struct {
	ID       string
	Location geo.Coordinate
	Params   quality.Params
	Named    *quality.NamedParams
}

// Request scores one provider against a user.
// Weights overrides the service defaults when non-nil.
type Request struct {
	User     Party
	Provider Party
	Weights  *quality.Weights
}

// checkModes rejects mixing named and positional attributes between user and provider.
func checkModes(user, provider Party) error {
	if (user.Named == nil) != (provider.Named == nil) {
		return fmt.Errorf("%w: user and provider must both use named or both use positional attributes",
			domain.ErrInvalidRequest)
	}
	return nil
}
