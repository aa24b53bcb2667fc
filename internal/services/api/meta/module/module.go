// Package module mounts the meta endpoints: liveness, build info and the service descriptor
package module

import (
	"time"

	"rewardsched/internal/core/version"
	"rewardsched/internal/modkit"
	"rewardsched/internal/modkit/httpkit"
	"rewardsched/internal/modkit/module"

	metahttp "rewardsched/internal/services/api/meta/http"
)

// Module serves /healthz at the root and the rest under its prefix
type Module struct {
	b         modkit.Built
	startedAt time.Time
}

// New builds the meta module, /meta/service lists whatever the module registry holds
func New(_ modkit.Deps, opts ...modkit.Option) *Module {
	return &Module{
		b:         modkit.Build([]modkit.Option{modkit.WithName("meta"), modkit.WithPrefix("/meta")}, opts...),
		startedAt: time.Now(),
	}
}

// MountRoutes mounts the health check on r itself and the rest under the prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	metahttp.RegisterHealth(r)
	m.b.Mount(r, func(sub httpkit.Router) {
		metahttp.Register(sub, metahttp.Deps{
			ServiceName: version.Info().Service,
			StartedAt:   m.startedAt,
			Modules:     module.Names,
		})
	})
}

// Name is the registry key
func (m *Module) Name() string { return m.b.Name }

// Prefix is where the non health routes live
func (m *Module) Prefix() string { return m.b.Prefix }

// Ports is nil, nothing resolves meta through the registry
func (m *Module) Ports() any { return nil }

var _ modkit.Module = (*Module)(nil)
