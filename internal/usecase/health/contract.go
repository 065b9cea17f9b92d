package health

import "context"

// Checker reports whether a component is operational.
type Checker interface {
	HealthCheck(ctx context.Context) error
}
