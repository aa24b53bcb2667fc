package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"rewardsched/internal/cli"
	"rewardsched/internal/modkit"
	"rewardsched/internal/modkit/module"
	"rewardsched/internal/platform/config"
	"rewardsched/internal/platform/logger"
	"rewardsched/internal/services/api/scheduler/domain"
	schedmod "rewardsched/internal/services/api/scheduler/module"
)

func main() {
	// logs go to stderr so stdout stays a clean document
	opts := logger.FromEnv()
	opts.Writer = os.Stderr
	opts.Component = "schedctl"
	logger.Init(opts)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// the CLI plans through the same module the API mounts
	module.Register(schedmod.New(modkit.Deps{Log: *logger.Get(), Cfg: config.New().Prefix("SCHED_API_")}))
	svc, ok := module.PortsAs[domain.ServicePort](schedmod.Name)
	if !ok {
		logger.Get().Fatal().Str("module", schedmod.Name).Msg("scheduler ports not registered")
	}

	err := cli.NewRootCmd(svc, os.Stdout).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "schedctl:", err)
	}
	os.Exit(cli.ExitCode(err))
}
