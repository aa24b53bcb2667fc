// Package api assembles the scheduler HTTP surface: root middleware, modules, docs and metrics
package api

import (
	"time"

	"rewardsched/internal/modkit"
	"rewardsched/internal/modkit/httpkit"
	"rewardsched/internal/modkit/module"
	"rewardsched/internal/modkit/swaggerkit"
	"rewardsched/internal/platform/config"
	"rewardsched/internal/platform/logger"
	"rewardsched/internal/platform/metrics"
	phttp "rewardsched/internal/platform/net/http"
	"rewardsched/internal/platform/net/middleware"

	metamod "rewardsched/internal/services/api/meta/module"
	schedmod "rewardsched/internal/services/api/scheduler/module"
)

// MetricsPath serves the prometheus exposition
const MetricsPath = "/metrics"

// Options are the API switches
type Options struct {
	Config         config.Conf // scoped to SCHED_API_
	Logger         *logger.Logger
	Metrics        *metrics.Metrics
	EnableSwagger  bool
	EnableProfiler bool
	CORSOrigins    []string
	Slow           time.Duration
}

// OptionsFromConfig reads the switches from cfg, which must already carry the SCHED_API_ prefix
func OptionsFromConfig(cfg config.Conf) Options {
	return Options{
		Config:         cfg,
		EnableSwagger:  cfg.MayBool("SWAGGER", true),
		EnableProfiler: cfg.MayBool("PROFILER", false),
		CORSOrigins:    cfg.MayCSV("CORS_ORIGINS", []string{"*"}),
		Slow:           cfg.MayDuration("SLOW", 500*time.Millisecond),
	}
}

// Mount installs the root stack, registers every module and mounts its routes
// meta sits at the root, the rest under /v1
func Mount(r phttp.Router, opt Options) {
	log := opt.Logger
	if log == nil {
		log = logger.Named("api")
	}
	deps := modkit.Deps{Log: *log, Cfg: opt.Config, Metrics: opt.Metrics}

	// chi wants middleware before any route
	r.Use(middleware.Stack(middleware.StackOptions{
		CORSOrigins: opt.CORSOrigins,
		Slow:        opt.Slow,
		Metrics:     opt.Metrics,
	})...)

	meta := metamod.New(deps)
	v1 := []modkit.Module{schedmod.New(deps)}

	module.Register(meta)
	meta.MountRoutes(r)
	httpkit.MountAPI(r, "v1", nil, func(api httpkit.Router) {
		for _, m := range v1 {
			module.Register(m)
			m.MountRoutes(api)
		}
	})

	swaggerkit.Mount(r, opt.EnableSwagger)
	if opt.Metrics != nil {
		r.Handle(MetricsPath, opt.Metrics.Handler())
	}
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	log.Debug().
		Strs("modules", module.Names()).
		Bool("swagger", opt.EnableSwagger).
		Bool("profiler", opt.EnableProfiler).
		Bool("metrics", opt.Metrics != nil).
		Msg("api mounted")
}
