package batch

import "github.com/kailas-cloud/posquality/internal/domain/quality"

// ItemStatus is the scoring outcome of a single provider in a batch.
type ItemStatus string

// Batch item status values.
const (
	StatusOK    ItemStatus = "ok"
	StatusError ItemStatus = "error"
)

// Result is the outcome of scoring one provider in a batch.
type Result struct {
	id        string
	status    ItemStatus
	breakdown quality.Breakdown
	err       error
}

// NewOK creates a successful batch result.
func NewOK(id string, b quality.Breakdown) Result {
	return Result{id: id, status: StatusOK, breakdown: b}
}

// NewError creates a failed batch result.
func NewError(id string, err error) Result { return Result{id: id, status: StatusError, err: err} }

// ID returns the provider identifier.
func (r Result) ID() string { return r.id }

// Status returns the scoring outcome.
func (r Result) Status() ItemStatus { return r.status }

// Breakdown returns the score and its components. Zero for failed items.
func (r Result) Breakdown() quality.Breakdown { return r.breakdown }

// Err returns the error, if any.
func (r Result) Err() error { return r.err }
