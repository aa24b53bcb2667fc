package cli

import (
	"github.com/spf13/cobra"

	"rewardsched/internal/services/api/scheduler/domain"
)

// planFlags override request fields shared by the planning commands
type planFlags struct {
	file string
	seed string
	now  string
}

func (f *planFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "-", "request file, - reads stdin")
	cmd.Flags().StringVar(&f.seed, "seed", "", "jitter seed, a random one is drawn when neither flag nor file sets it")
	cmd.Flags().StringVar(&f.now, "now", "", "reference instant, defaults to the request value or the current time")
}

// apply fills seed and now from flags and defaults
func (a *app) apply(cmd *cobra.Command, f planFlags, in *domain.PlanInput) error {
	if f.seed != "" {
		in.Seed = f.seed
	}
	if in.Seed == "" {
		in.Seed = a.newID()
		logCtx(cmd).Info().Str("seed", in.Seed).Msg("no seed given, drew a random one")
	}
	return a.applyNow(f.now, &in.Now)
}

func (a *app) recommendCmd() *cobra.Command {
	var f planFlags
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Plan the next occurrence of a template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var in domain.RecommendNextInput
			if err := a.decode(cmd, f.file, &in); err != nil {
				return err
			}
			if err := a.apply(cmd, f, &in.PlanInput); err != nil {
				return err
			}
			if err := validate(in); err != nil {
				return err
			}
			out, err := a.svc.RecommendNext(cmd.Context(), in)
			if err != nil {
				return err
			}
			return a.print(out)
		},
	}
	f.bind(cmd)
	return cmd
}

func (a *app) missedCmd() *cobra.Command {
	var f planFlags
	var eventID string
	cmd := &cobra.Command{
		Use:   "missed",
		Short: "Propose ASAP and DELAYED replacements for a missed occurrence",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var in domain.MissedOptionsInput
			if err := a.decode(cmd, f.file, &in); err != nil {
				return err
			}
			if eventID != "" {
				in.EventID = eventID
			}
			if err := a.apply(cmd, f, &in.PlanInput); err != nil {
				return err
			}
			if in.CurrentScheduledAt.IsZero() {
				in.CurrentScheduledAt = in.Now
			}
			if err := validate(in); err != nil {
				return err
			}
			out, err := a.svc.MissedOptions(cmd.Context(), in)
			if err != nil {
				return err
			}
			return a.print(out)
		},
	}
	f.bind(cmd)
	cmd.Flags().StringVar(&eventID, "event", "", "event id, overrides the request")
	return cmd
}

func (a *app) scoreCmd() *cobra.Command {
	var file, now string
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Recompute the sentiment score of a profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var in domain.RecomputeStateInput
			if err := a.decode(cmd, file, &in); err != nil {
				return err
			}
			if err := a.applyNow(now, &in.Now); err != nil {
				return err
			}
			if err := validate(in); err != nil {
				return err
			}
			out, err := a.svc.RecomputeState(cmd.Context(), in)
			if err != nil {
				return err
			}
			return a.print(out)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "request file, - reads stdin")
	cmd.Flags().StringVar(&now, "now", "", "reference instant, defaults to the request value or the current time")
	return cmd
}
