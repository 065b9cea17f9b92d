package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/posquality/internal/domain"
	logpkg "github.com/kailas-cloud/posquality/internal/logger"
	healthuc "github.com/kailas-cloud/posquality/internal/usecase/health"
	scoringuc "github.com/kailas-cloud/posquality/internal/usecase/scoring"
	"github.com/kailas-cloud/posquality/internal/version"
)

// maxBodyBytes caps request bodies; a full batch of providers fits comfortably.
const maxBodyBytes = 1 << 20

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server serves the scoring HTTP API.
type Server struct {
	scoring       *scoringuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(scoring *scoringuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{scoring: scoring, health: health, logger: logger}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, CodeBadRequest),
		sentinelHandler(domain.ErrInvalidWeights, http.StatusBadRequest, CodeInvalidWeights),
		sentinelHandler(domain.ErrInvalidAttributeDomain,
			http.StatusUnprocessableEntity, CodeInvalidAttributeDomain),
		sentinelHandler(domain.ErrZeroDistance, http.StatusUnprocessableEntity, CodeZeroDistance),
		sentinelHandler(domain.ErrNonPositiveAggregate,
			http.StatusUnprocessableEntity, CodeNonPositiveAggregate),
	}
	return s
}

// Register mounts the API routes on r.
func (s *Server) Register(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Post("/v1/score", s.Score)
	r.Post("/v1/score/batch", s.ScoreBatch)
}

// Score handles POST /v1/score.
func (s *Server) Score(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := partyFromDTO(req.User, "user")
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	provider, err := partyFromDTO(req.Provider, "provider")
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	b, err := s.scoring.Score(r.Context(), scoringuc.Request{
		User:     user,
		Provider: provider,
		Weights:  weightsFromDTO(req.Weights),
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, breakdownToDTO(b))
}

// ScoreBatch handles POST /v1/score/batch. Items keep the request order.
func (s *Server) ScoreBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchScoreRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := partyFromDTO(req.User, "user")
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	providers := make([]scoringuc.Party, len(req.Providers))
	for i, p := range req.Providers {
		if providers[i], err = partyFromDTO(p, "provider"); err != nil {
			s.handleDomainError(w, r, err)
			return
		}
	}

	results, err := s.scoring.ScoreBatch(r.Context(), user, providers, weightsFromDTO(req.Weights))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]BatchItem, len(results))
	for i, res := range results {
		items[i] = batchResultToDTO(res)
	}
	writeJSON(w, http.StatusOK, BatchScoreResponse{Items: items})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status:  string(report.Status),
		Checks:  checks,
		Version: version.Version,
		Commit:  version.Commit,
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// errorCode returns the API error code for a domain error.
func errorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return CodeBadRequest
	case errors.Is(err, domain.ErrInvalidWeights):
		return CodeInvalidWeights
	case errors.Is(err, domain.ErrInvalidAttributeDomain):
		return CodeInvalidAttributeDomain
	case errors.Is(err, domain.ErrZeroDistance):
		return CodeZeroDistance
	case errors.Is(err, domain.ErrNonPositiveAggregate):
		return CodeNonPositiveAggregate
	default:
		return CodeInternalError
	}
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
// Domain errors describe caller input only, so their text is returned as is.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, err.Error())
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context())
	for _, h := range s.errorHandlers {
		if h(w, err) {
			log.Info("request rejected", zap.String("code", errorCode(err)), zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
