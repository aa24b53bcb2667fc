// Package module wires the scheduler service into the API and the module registry
package module

import (
	"rewardsched/internal/core/cadence"
	"rewardsched/internal/modkit"
	"rewardsched/internal/modkit/httpkit"
	"rewardsched/internal/platform/net/middleware"
	schedhttp "rewardsched/internal/services/api/scheduler/http"
	schedsvc "rewardsched/internal/services/api/scheduler/service"
)

// Name is the key the scheduler's ports are registered under
const Name = "scheduler"

// Module mounts the planning routes behind the per client rate limiter
type Module struct {
	b   modkit.Built
	svc schedsvc.Service
}

// New builds the module, the rate limiter runs ahead of any caller supplied middleware
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	limit := middleware.RateLimit(FromConfig(deps.Cfg).RateLimit())
	return &Module{
		b: modkit.Build([]modkit.Option{
			modkit.WithName(Name),
			modkit.WithPrefix("/scheduler"),
			modkit.WithMiddlewares(limit),
		}, opts...),
		svc: schedsvc.New(cadence.NewPlanner(), deps.Metrics),
	}
}

// MountRoutes mounts recommend-next, missed-options and recompute-state under the prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(sub httpkit.Router) { schedhttp.Register(sub, m.svc) })
}

// Name is the registry key
func (m *Module) Name() string { return m.b.Name }

// Prefix is where the planning routes live
func (m *Module) Prefix() string { return m.b.Prefix }

// Ports is the planning service, resolve it with module.PortsAs[domain.ServicePort]
func (m *Module) Ports() any { return m.svc }

var _ modkit.Module = (*Module)(nil)
