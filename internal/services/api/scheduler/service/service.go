// Package service contains scheduler workflows
package service

import (
	"context"
	"time"

	"rewardsched/internal/core/cadence"
	"rewardsched/internal/core/slots"
	perr "rewardsched/internal/platform/errors"
	"rewardsched/internal/platform/logger"
	"rewardsched/internal/platform/metrics"
	"rewardsched/internal/platform/tracing"
	"rewardsched/internal/services/api/scheduler/domain"

	"go.opentelemetry.io/otel/attribute"
)

// operation names shared by spans, metrics and logs
const (
	OpRecommendNext  = "recommend_next"
	OpMissedOptions  = "missed_options"
	OpRecomputeState = "recompute_state"
)

// Service defines the scheduler service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the scheduler service on top of the cadence planner
type Svc struct {
	planner *cadence.Planner
	metrics *metrics.Metrics
	now     func() time.Time
}

// New constructs a scheduler service, m may be nil
func New(planner *cadence.Planner, m *metrics.Metrics) *Svc {
	if planner == nil {
		panic("scheduler.Service requires a non nil Planner")
	}
	return &Svc{planner: planner, metrics: m, now: time.Now}
}

// RecommendNext plans the next occurrence of a template
func (s *Svc) RecommendNext(ctx context.Context, in domain.RecommendNextInput) (out domain.RecommendNextOutput, err error) {
	tpl := in.ResolvedTemplate()
	ctx, span := tracing.Start(ctx, "scheduler."+OpRecommendNext, planAttrs(in.ProfileID, tpl.ID, "")...)
	start := s.now()
	outcome := ""
	defer func() {
		s.metrics.ObservePlan(OpRecommendNext, outcome, s.now().Sub(start), err)
		tracing.End(span, err)
	}()

	if err = perr.FromContext(ctx.Err()); err != nil {
		return out, err
	}
	settings, err := toSettings(in.Settings)
	if err != nil {
		return out, err
	}

	rec := s.planner.RecommendNext(cadence.RecommendRequest{
		Seed:     in.Seed,
		Now:      in.Now.UTC(),
		Template: toTemplate(tpl),
		Settings: settings,
		History:  toHistory(in.EventHistory),
	})
	outcome = rec.Outcome.Label()
	span.SetAttributes(attribute.String(tracing.AttrOutcome, outcome))
	warnDegraded(ctx, in.ProfileID, OpRecommendNext, rec.Outcome)

	logger.C(ctx).Debug().
		Str("template_id", tpl.ID).
		Float64("adaptive_days", rec.AdaptiveDays).
		Float64("jitter_days", rec.JitterDays).
		Time("scheduled_at", rec.ScheduledAt).
		Msg("next occurrence planned")

	return domain.RecommendNextOutput{
		ScheduledAt: domain.At(rec.ScheduledAt),
		Rationale:   rec.Rationale,
	}, nil
}

// MissedOptions proposes ASAP and DELAYED replacements for a missed occurrence
func (s *Svc) MissedOptions(ctx context.Context, in domain.MissedOptionsInput) (out domain.MissedOptionsOutput, err error) {
	tpl := in.ResolvedTemplate()
	ctx, span := tracing.Start(ctx, "scheduler."+OpMissedOptions, planAttrs(in.ProfileID, tpl.ID, in.EventID)...)
	start := s.now()
	outcome := ""
	defer func() {
		s.metrics.ObservePlan(OpMissedOptions, outcome, s.now().Sub(start), err)
		tracing.End(span, err)
	}()

	if err = perr.FromContext(ctx.Err()); err != nil {
		return out, err
	}
	settings, err := toSettings(in.Settings)
	if err != nil {
		return out, err
	}

	res := s.planner.MissedOptions(cadence.MissedRequest{
		Seed:               in.Seed,
		Now:                in.Now.UTC(),
		ProfileID:          in.ProfileID,
		EventID:            in.EventID,
		CurrentScheduledAt: in.CurrentScheduledAt.UTC(),
		Template:           toTemplate(tpl),
		Settings:           settings,
		History:            toHistory(in.EventHistory),
	})

	out.Options = make([]domain.MissedOption, 0, len(res.Options))
	for _, o := range res.Options {
		if o.Recommended {
			outcome = o.Outcome.Label()
		}
		warnDegraded(ctx, in.ProfileID, OpMissedOptions+"."+string(o.Type), o.Outcome)
		out.Options = append(out.Options, domain.MissedOption{
			OptionID:    o.OptionID,
			ProfileID:   o.ProfileID,
			EventID:     o.EventID,
			Type:        string(o.Type),
			ProposedAt:  domain.At(o.ProposedAt),
			Rationale:   o.Rationale,
			Recommended: o.Recommended,
		})
	}
	span.SetAttributes(
		attribute.String(tracing.AttrOutcome, outcome),
		attribute.Float64("scheduler.urgency", res.Urgency),
	)
	return out, nil
}

// RecomputeState recomputes the aggregate sentiment of a profile
func (s *Svc) RecomputeState(ctx context.Context, in domain.RecomputeStateInput) (out domain.RecomputeStateOutput, err error) {
	ctx, span := tracing.Start(ctx, "scheduler."+OpRecomputeState, planAttrs(in.ProfileID, "", "")...)
	start := s.now()
	defer func() {
		s.metrics.ObservePlan(OpRecomputeState, "", s.now().Sub(start), err)
		tracing.End(span, err)
	}()

	if err = perr.FromContext(ctx.Err()); err != nil {
		return out, err
	}
	score := s.planner.SentimentScore(toSignals(in.TemplateSignals))
	span.SetAttributes(attribute.Float64("scheduler.sentiment_score", score))

	return domain.RecomputeStateOutput{
		OK:             true,
		ProfileID:      in.ProfileID,
		SentimentScore: score,
	}, nil
}

func planAttrs(profileID, templateID, eventID string) []attribute.KeyValue {
	attrs := tracing.NonEmpty(tracing.AttrProfileID, profileID)
	attrs = append(attrs, tracing.NonEmpty(tracing.AttrTemplateID, templateID)...)
	return append(attrs, tracing.NonEmpty(tracing.AttrEventID, eventID)...)
}

// warnDegraded logs resolutions that could not honour every constraint
func warnDegraded(ctx context.Context, profileID, op string, o slots.Outcome) {
	if !o.Degraded() {
		return
	}
	log := logger.C(logger.WithProfile(ctx, profileID))
	log.Warn().
		Str("operation", op).
		Str("outcome", o.Label()).
		Int("days_scanned", o.DaysScanned).
		Msg("slot resolution degraded")
}

var _ Service = (*Svc)(nil)
