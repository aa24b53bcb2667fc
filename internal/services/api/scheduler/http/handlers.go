// Package http provides http transport for the scheduler
package http

import (
	stdhttp "net/http"

	"rewardsched/internal/modkit/httpkit"
	"rewardsched/internal/services/api/scheduler/domain"
	svc "rewardsched/internal/services/api/scheduler/service"
)

// MaxBodyBytes caps a scheduler request body
const MaxBodyBytes = 1 << 20

// scheduler clients send extra bookkeeping fields, they are ignored
var bodyOpts = httpkit.JSONOptions{MaxBytes: MaxBodyBytes, AllowUnknown: true}

// Register mounts scheduler endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// next occurrence
	httpkit.PostRaw[domain.RecommendNextInput](r, "/recommend-next", h.recommendNext, bodyOpts)

	// replacements after a miss
	httpkit.PostRaw[domain.MissedOptionsInput](r, "/missed-options", h.missedOptions, bodyOpts)

	// aggregate sentiment
	httpkit.PostRaw[domain.RecomputeStateInput](r, "/recompute-state", h.recomputeState, bodyOpts)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /v1/scheduler/recommend-next Scheduler schedulerRecommendNext
// @Summary Plan the next occurrence
// @Tags Scheduler
// @Accept json
// @Produce json
// @Param payload body domain.RecommendNextInput true "Request"
// @Success 200 {object} domain.RecommendNextOutput "ok"
// @Failure 400 {object} phttp.Envelope "validation"
// @Failure 422 {object} phttp.Envelope "unschedulable settings"
// @Router /v1/scheduler/recommend-next [post]
func (h *handlers) recommendNext(r *stdhttp.Request, in domain.RecommendNextInput) (any, error) {
	return h.svc.RecommendNext(r.Context(), in)
}

// swagger:route POST /v1/scheduler/missed-options Scheduler schedulerMissedOptions
// @Summary Propose ASAP and DELAYED replacements for a missed occurrence
// @Tags Scheduler
// @Accept json
// @Produce json
// @Param payload body domain.MissedOptionsInput true "Request"
// @Success 200 {object} domain.MissedOptionsOutput "ok"
// @Failure 400 {object} phttp.Envelope "validation"
// @Failure 422 {object} phttp.Envelope "unschedulable settings"
// @Router /v1/scheduler/missed-options [post]
func (h *handlers) missedOptions(r *stdhttp.Request, in domain.MissedOptionsInput) (any, error) {
	return h.svc.MissedOptions(r.Context(), in)
}

// swagger:route POST /v1/scheduler/recompute-state Scheduler schedulerRecomputeState
// @Summary Recompute the sentiment score of a profile
// @Tags Scheduler
// @Accept json
// @Produce json
// @Param payload body domain.RecomputeStateInput true "Request"
// @Success 200 {object} domain.RecomputeStateOutput "ok"
// @Router /v1/scheduler/recompute-state [post]
func (h *handlers) recomputeState(r *stdhttp.Request, in domain.RecomputeStateInput) (any, error) {
	return h.svc.RecomputeState(r.Context(), in)
}
