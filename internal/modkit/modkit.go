// Package modkit assembles API modules: shared deps, options and prefixed mounting
package modkit

import (
	"net/http"

	"rewardsched/internal/modkit/httpkit"
	"rewardsched/internal/modkit/module"
	"rewardsched/internal/platform/config"
	"rewardsched/internal/platform/logger"
	"rewardsched/internal/platform/metrics"
	pstrings "rewardsched/internal/platform/strings"
)

// Module is what Mount in the api package iterates over
type Module = module.Module

// Deps are handed to every module constructor, zero values are fine in tests
type Deps struct {
	Log     logger.Logger
	Cfg     config.Conf // already scoped to SCHED_API_
	Metrics *metrics.Metrics
}

// Option adjusts how a module is built
type Option func(*Built)

// WithName overrides the module name used in the registry
func WithName(name string) Option { return func(b *Built) { b.Name = name } }

// WithPrefix overrides the path the module mounts under
func WithPrefix(prefix string) Option { return func(b *Built) { b.Prefix = prefix } }

// WithMiddlewares appends middleware to the module scope, in order
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithRegister mounts extra routes next to the module's own
func WithRegister(fn func(httpkit.Router)) Option {
	return func(b *Built) { b.Register = fn }
}

// Built is the resolved option set a module keeps
type Built struct {
	Name     string
	Prefix   string
	Mw       []func(http.Handler) http.Handler
	Register func(httpkit.Router)
}

// Build applies defaults first, then the caller's options
// a module without a name or prefix is a wiring bug and panics
func Build(defaults []Option, opts ...Option) Built {
	var b Built
	for _, o := range append(defaults[:len(defaults):len(defaults)], opts...) {
		o(&b)
	}
	b.Name = pstrings.MustString(b.Name, "module name")
	b.Prefix = pstrings.MustPrefix(b.Prefix)
	return b
}

// Mount scopes routes under Prefix behind Mw, then adds any extra routes from WithRegister
func (b Built) Mount(r httpkit.Router, routes func(httpkit.Router)) {
	r.Route(b.Prefix, func(sub httpkit.Router) {
		if len(b.Mw) > 0 {
			sub.Use(b.Mw...)
		}
		routes(sub)
		if b.Register != nil {
			b.Register(sub)
		}
	})
}
