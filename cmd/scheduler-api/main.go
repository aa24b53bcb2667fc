// @title         Reward Scheduler API
// @version       0.1.0
// @description   Deterministic planning of recurring reward events

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rewardsched/internal/core/version"
	"rewardsched/internal/platform/config"
	"rewardsched/internal/platform/logger"
	"rewardsched/internal/platform/metrics"
	phttp "rewardsched/internal/platform/net/http"
	"rewardsched/internal/platform/tracing"

	"rewardsched/internal/services/api"
)

func main() {
	// bring up logging early
	logger.Init(logger.FromEnv())
	l := logger.Get()

	// service-scoped config for HTTP etc (SCHED_API_*)
	apiCfg := config.New().Prefix("SCHED_API_")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	info := version.Info()
	tc := tracing.ConfigFrom(apiCfg)
	tc.ServiceName, tc.ServiceVersion = info.Service, info.Version
	shutdownTracing, err := tracing.Setup(ctx, tc)
	if err != nil {
		l.Panic().Err(err).Msg("tracing setup failed")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			l.Error().Err(err).Msg("failed to flush traces")
		}
	}()

	// http server (reads SCHED_API_ADDR, timeouts and shutdown grace)
	srv := phttp.NewServer(apiCfg)

	opts := api.OptionsFromConfig(apiCfg)
	opts.Logger = l
	opts.Metrics = metrics.MustNew(apiCfg.MayString("METRICS_NAMESPACE", metrics.DefaultNamespace), nil)

	// mount our API
	api.Mount(srv.Router(), opts)

	l.Info().
		Str("service", info.Service).
		Str("version", info.Version).
		Str("commit", info.Commit).
		Msg("scheduler api starting")

	// run until SIGINT/SIGTERM
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
	l.Info().Msg("scheduler api stopped")
}
