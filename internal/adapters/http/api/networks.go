package api

import (
	"fmt"
	"net/http"

	service "github.com/okian/passnet/internal/app"
	"github.com/okian/passnet/internal/domain/model"
	"github.com/okian/passnet/pkg/logger"
)

// networkRequest is the body of POST /networks: a pass set already
// restricted to one team and one phase of play.
type networkRequest struct {
	Passes  []model.PassEvent `json:"passes"`
	Metrics metricsRequest    `json:"metrics"`
}

// NetworksHandler builds networks from pre-filtered passes.
type NetworksHandler struct {
	deps      Dependencies
	log       logger.Logger
	maxPasses int
}

// HandlePostNetwork handles POST /networks requests.
func (h *NetworksHandler) HandlePostNetwork(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_network"
	ctx := r.Context()

	var req networkRequest
	if err := decode(r, &req); err != nil {
		fail(ctx, h.log, w, WrapKind(op, ErrBadRequest, err))
		return
	}
	if len(req.Passes) > h.maxPasses {
		fail(ctx, h.log, w, WrapKind(op, ErrTooLarge, fmt.Errorf("%d passes exceed limit %d", len(req.Passes), h.maxPasses)))
		return
	}
	set, err := req.Metrics.toSet()
	if err != nil {
		fail(ctx, h.log, w, Wrap(op, err))
		return
	}

	a, err := h.deps.Analyze(ctx, service.AnalysisRequest{Passes: req.Passes, Metrics: set})
	if err != nil {
		fail(ctx, h.log, w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, newNetworkResponse(a))
}
