package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAttributeDomain signals a quantitative pair whose log ratio is undefined.
	ErrInvalidAttributeDomain = errors.New("invalid attribute domain")
	// ErrZeroDistance signals coinciding user and provider coordinates.
	ErrZeroDistance = errors.New("zero distance")
	// ErrNonPositiveAggregate signals a factor product that has no logarithm.
	ErrNonPositiveAggregate = errors.New("non-positive aggregate")
	// ErrInvalidWeights signals a weight pair that is out of range or does not sum to 1.
	ErrInvalidWeights = errors.New("invalid weights")
	// ErrInvalidRequest signals a malformed scoring request.
	ErrInvalidRequest = errors.New("invalid request")
)

// AttributeDomainError wraps ErrInvalidAttributeDomain with the offending pair.
type AttributeDomainError struct {
	Index    int
	Ref      float64
	Observed float64
}

func (e *AttributeDomainError) Error() string {
	return fmt.Sprintf("%s: quantitative attribute %d (ref=%g, observed=%g)",
		ErrInvalidAttributeDomain.Error(), e.Index, e.Ref, e.Observed)
}

func (e *AttributeDomainError) Unwrap() error { return ErrInvalidAttributeDomain }

// NewAttributeDomainError creates an attribute domain error for the pair at index.
func NewAttributeDomainError(index int, ref, observed float64) error {
	return &AttributeDomainError{Index: index, Ref: ref, Observed: observed}
}
