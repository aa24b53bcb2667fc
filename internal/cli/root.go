// Package cli implements schedctl, an offline front end to the scheduler service
// requests are read from YAML or JSON files and answered by the same service the API runs
package cli

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"rewardsched/internal/core/version"
	"rewardsched/internal/platform/logger"
	"rewardsched/internal/services/api/scheduler/domain"
)

// Output formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

type commandContext struct {
	correlationID string
	startedAt     time.Time
}

type commandContextKey struct{}

// app carries the shared state of one invocation
type app struct {
	svc    domain.ServicePort
	out    io.Writer
	now    func() time.Time
	newID  func() string
	format string
}

// NewRootCmd builds the schedctl command tree around svc, results go to out
func NewRootCmd(svc domain.ServicePort, out io.Writer) *cobra.Command {
	a := &app{svc: svc, out: out, now: time.Now, newID: uuid.NewString}
	return a.rootCmd()
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "schedctl",
		Short: "Plan reward events from request files",
		Long: `schedctl answers scheduler requests offline.

Each command reads one request document, YAML or JSON, from --file or stdin
and prints the response the HTTP API would return for it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if a.format != FormatJSON && a.format != FormatYAML {
				return errUnknownFormat(a.format)
			}
			info := commandContext{correlationID: a.newID(), startedAt: time.Now()}
			ctx := logger.WithRequest(cmd.Context(), info.correlationID, "")
			cmd.SetContext(context.WithValue(ctx, commandContextKey{}, info))
			logger.C(ctx).Debug().Str("command", cmd.CommandPath()).Msg("command start")
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			info, ok := cmd.Context().Value(commandContextKey{}).(commandContext)
			if !ok {
				return
			}
			logger.C(cmd.Context()).Debug().
				Str("command", cmd.CommandPath()).
				Dur("took", time.Since(info.startedAt)).
				Msg("command end")
		},
	}
	root.PersistentFlags().StringVarP(&a.format, "output", "o", FormatJSON, "output format: json or yaml")

	root.AddCommand(a.recommendCmd(), a.missedCmd(), a.scoreCmd(), a.versionCmd())
	return root
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return a.print(version.Info())
		},
	}
}
