package health

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/posquality/internal/logger"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	checkers map[string]Checker
}

// New creates a Service. Nil checkers are skipped.
func New(checkers map[string]Checker) *Service {
	s := &Service{checkers: make(map[string]Checker, len(checkers))}
	for name, c := range checkers {
		if c != nil {
			s.checkers[name] = c
		}
	}
	return s
}

// Check runs every registered check.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, len(s.checkers))
	status := Healthy

	for name, c := range s.checkers {
		if err := c.HealthCheck(ctx); err != nil {
			logger.FromContext(ctx).Warn("health check failed",
				zap.String("check", name), zap.Error(err))
			checks[name] = CheckError
			status = Degraded
			continue
		}
		checks[name] = CheckOK
	}

	return Report{Status: status, Checks: checks}
}
