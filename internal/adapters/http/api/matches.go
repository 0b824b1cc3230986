package api

import (
	"fmt"
	"net/http"

	service "github.com/okian/passnet/internal/app"
	"github.com/okian/passnet/internal/domain/model"
	"github.com/okian/passnet/internal/domain/passes"
	"github.com/okian/passnet/pkg/logger"
)

type phasesRequest struct {
	Team   string             `json:"team"`
	Events []model.MatchEvent `json:"events"`
}

type phasesResponse struct {
	Team       string `json:"team"`
	Boundaries []int  `json:"boundaries"`
	Phases     int    `json:"phases"`
}

type phaseNetworksResponse struct {
	Team   string            `json:"team"`
	Phases []networkResponse `json:"phases"`
}

// matchNetworkRequest is the body of POST /matches/network.
type matchNetworkRequest struct {
	Team      string              `json:"team"`
	Phase     int                 `json:"phase"`
	Third     string              `json:"third,omitempty"`       // def, mid or att
	Direction string              `json:"direction,omitempty"`   // fwd, back or lat
	Progress  string              `json:"progression,omitempty"` // d2m, m2a or d2a
	Events    []model.MatchEvent  `json:"events"`
	Lineup    []model.LineupEntry `json:"lineup"`
	Metrics   metricsRequest      `json:"metrics"`
}

// MatchesHandler derives networks from raw match event streams.
type MatchesHandler struct {
	deps      Dependencies
	log       logger.Logger
	maxEvents int
}

// HandlePostPhases handles POST /matches/phases requests.
func (h *MatchesHandler) HandlePostPhases(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_phases"
	ctx := r.Context()

	var req phasesRequest
	if err := decode(r, &req); err != nil {
		fail(ctx, h.log, w, WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := h.checkSize(len(req.Events)); err != nil {
		fail(ctx, h.log, w, WrapKind(op, ErrTooLarge, err))
		return
	}

	bounds, err := h.deps.Phases(ctx, req.Team, req.Events)
	if err != nil {
		fail(ctx, h.log, w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, phasesResponse{
		Team:       req.Team,
		Boundaries: bounds,
		Phases:     len(bounds) + 1,
	})
}

// HandlePostNetwork handles POST /matches/network requests.
func (h *MatchesHandler) HandlePostNetwork(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_match_network"
	ctx := r.Context()

	mr, err := h.read(r)
	if err != nil {
		fail(ctx, h.log, w, Wrap(op, err))
		return
	}
	a, err := h.deps.AnalyzeMatch(ctx, mr)
	if err != nil {
		fail(ctx, h.log, w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, newNetworkResponse(a))
}

// HandlePostNetworks handles POST /matches/networks requests: one network
// per phase of play. The phase field of the body is ignored.
func (h *MatchesHandler) HandlePostNetworks(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_match_networks"
	ctx := r.Context()

	mr, err := h.read(r)
	if err != nil {
		fail(ctx, h.log, w, Wrap(op, err))
		return
	}
	all, err := h.deps.AnalyzePhases(ctx, mr)
	if err != nil {
		fail(ctx, h.log, w, Wrap(op, err))
		return
	}
	resp := phaseNetworksResponse{Team: mr.Team, Phases: make([]networkResponse, 0, len(all))}
	for _, a := range all {
		resp.Phases = append(resp.Phases, newNetworkResponse(a))
	}
	writeJSON(w, http.StatusOK, resp)
}

// read decodes and validates a match network body.
func (h *MatchesHandler) read(r *http.Request) (service.MatchRequest, error) {
	var req matchNetworkRequest
	if err := decode(r, &req); err != nil {
		return service.MatchRequest{}, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	if err := h.checkSize(len(req.Events)); err != nil {
		return service.MatchRequest{}, fmt.Errorf("%w: %w", ErrTooLarge, err)
	}
	third, err := passes.ParseThird(req.Third)
	if err != nil {
		return service.MatchRequest{}, err
	}
	dir, err := passes.ParsePassDirection(req.Direction)
	if err != nil {
		return service.MatchRequest{}, err
	}
	prog, err := passes.ParseProgression(req.Progress)
	if err != nil {
		return service.MatchRequest{}, err
	}
	set, err := req.Metrics.toSet()
	if err != nil {
		return service.MatchRequest{}, err
	}
	return service.MatchRequest{
		Events:    req.Events,
		Lineup:    req.Lineup,
		Team:      req.Team,
		Phase:     req.Phase,
		Third:     third,
		Direction: dir,
		Progress:  prog,
		Metrics:   set,
	}, nil
}

func (h *MatchesHandler) checkSize(n int) error {
	if n > h.maxEvents {
		return fmt.Errorf("%d events exceed limit %d", n, h.maxEvents)
	}
	return nil
}
