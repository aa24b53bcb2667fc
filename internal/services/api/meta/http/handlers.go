// Package http provides meta endpoints
package http

import (
	"net/http"
	"time"

	"rewardsched/internal/core/version"
	"rewardsched/internal/modkit/httpkit"
)

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Now         func() time.Time // defaults to time.Now
	Modules     func() []string  // mounted modules, nil lists none
}

type handlers struct {
	deps Deps
}

func newHandlers(d Deps) *handlers {
	if d.Now == nil {
		d.Now = time.Now
	}
	return &handlers{deps: d}
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := newHandlers(d)

	// mount routes
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

// RegisterHealth mounts the liveness probe, callers expect it outside any prefix
func RegisterHealth(r httpkit.Router) {
	httpkit.GetRaw(r, "/healthz", health)
}

//
// Swagger DTOs and route docs
//

// HealthResponse is the liveness payload
// swagger:model
type HealthResponse struct {
	OK bool `json:"ok" example:"true"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string   `json:"name"    example:"scheduler-api"`
	Started string   `json:"started" example:"2025-09-03T13:00:00Z"`
	Uptime  int64    `json:"uptime"  example:"300"`
	Modules []string `json:"modules" example:"meta,scheduler"`
}

// swagger:route GET /healthz Meta metaHealth
// @Summary Liveness probe
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse "ok"
// @Router /healthz [get]
func health(_ *http.Request) (any, error) {
	return HealthResponse{OK: true}, nil
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo "ok"
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// swagger:route GET /meta/service Meta metaService
// @Summary Service info, uptime and mounted modules
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse "ok"
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	out := ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(h.deps.Now().Sub(h.deps.StartedAt) / time.Second),
		Modules: []string{},
	}
	if h.deps.Modules != nil {
		out.Modules = h.deps.Modules()
	}
	return out, nil
}
