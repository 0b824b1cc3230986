// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	service "github.com/okian/passnet/internal/app"
	"github.com/okian/passnet/internal/domain/model"
	"github.com/okian/passnet/internal/domain/network"
	"github.com/okian/passnet/internal/domain/passes"
	"github.com/okian/passnet/pkg/logger"
	"github.com/okian/passnet/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Analyze(ctx context.Context, req service.AnalysisRequest) (*service.Analysis, error)
	AnalyzeMatch(ctx context.Context, req service.MatchRequest) (*service.Analysis, error)
	AnalyzePhases(ctx context.Context, req service.MatchRequest) ([]*service.Analysis, error)
	Phases(ctx context.Context, team string, events []model.MatchEvent) ([]int, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	logger    logger.Logger
	maxPasses int

	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	networksHandler *NetworksHandler
	matchesHandler  *MatchesHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{maxPasses: defaultMaxPasses}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("api")
	}
	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(statsProvider)
	s.networksHandler = &NetworksHandler{deps: deps, log: s.logger, maxPasses: s.maxPasses}
	s.matchesHandler = &MatchesHandler{deps: deps, log: s.logger, maxEvents: s.maxPasses}
	return s
}

// Register attaches all HTTP routes to r.
func (s *Server) Register(_ context.Context, r *mux.Router) {
	if r == nil {
		panic("router is nil")
	}
	r.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz")).Methods(http.MethodGet)
	r.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats")).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})).Methods(http.MethodGet)
	r.HandleFunc("/networks", MetricsMiddleware(s.networksHandler.HandlePostNetwork, "networks")).Methods(http.MethodPost)
	r.HandleFunc("/matches/phases", MetricsMiddleware(s.matchesHandler.HandlePostPhases, "match_phases")).Methods(http.MethodPost)
	r.HandleFunc("/matches/network", MetricsMiddleware(s.matchesHandler.HandlePostNetwork, "match_network")).Methods(http.MethodPost)
	r.HandleFunc("/matches/networks", MetricsMiddleware(s.matchesHandler.HandlePostNetworks, "match_networks")).Methods(http.MethodPost)

	r.MethodNotAllowedHandler = MetricsMiddleware(statusHandler(http.StatusMethodNotAllowed, "method_not_allowed"), "unrouted")
	r.NotFoundHandler = MetricsMiddleware(statusHandler(http.StatusNotFound, "not_found"), "unrouted")
}

// statusHandler answers every request with status and a JSON error body.
func statusHandler(status int, code string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, status, code, nil)
	}
}

// Router returns a new router with all routes registered.
func (s *Server) Router(ctx context.Context) *mux.Router {
	r := mux.NewRouter()
	s.Register(ctx, r)
	return r
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// statusFor maps an error to its HTTP status and error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrTooLarge):
		return http.StatusRequestEntityTooLarge, "too_large"
	case errors.Is(err, network.ErrUnsupportedMetric), errors.Is(err, passes.ErrUnsupported):
		return http.StatusBadRequest, "unsupported"
	case errors.Is(err, ErrBadRequest), errors.Is(err, network.ErrInvalidPass), errors.Is(err, service.ErrInvalidRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, passes.ErrUnknownPlayer):
		return http.StatusUnprocessableEntity, "unknown_player"
	case errors.Is(err, network.ErrUndefinedPosition):
		return http.StatusUnprocessableEntity, "undefined_position"
	case errors.Is(err, passes.ErrPhaseOutOfRange):
		return http.StatusUnprocessableEntity, "phase_out_of_range"
	case errors.Is(err, passes.ErrOffPitch):
		return http.StatusUnprocessableEntity, "off_pitch"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "canceled"
	}
	return http.StatusInternalServerError, "internal"
}

// fail writes err with its mapped status and logs server side failures.
func fail(ctx context.Context, log logger.Logger, w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error(ctx, "request failed", logger.Error(err))
	} else {
		log.Debug(ctx, "request rejected", logger.Int("status", status), logger.Error(err))
	}
	writeError(w, status, code, err)
}

// decode reads a JSON body into v, rejecting unknown fields.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
