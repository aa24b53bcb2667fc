package cadence

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"rewardsched/internal/core/clock"
	"rewardsched/internal/core/slots"
)

// OptionIDLength is the number of hex characters kept from the option digest
const OptionIDLength = 20

// urgency at or above this threshold recommends the ASAP option
const asapThreshold = 0.5

const (
	rationaleASAP    = "Best for recovering momentum quickly after a missed event."
	rationaleDelayed = "Best for maintaining spacing and avoiding event crowding."
)

// OptionID derives a stable identifier from the event, the strategy and the proposed instant
func OptionID(eventID string, kind OptionType, at time.Time) string {
	sum := sha1.Sum([]byte(eventID + ":" + string(kind) + ":" + clock.ISOFormat(at)))
	return hex.EncodeToString(sum[:])[:OptionIDLength]
}

// Planner turns requests into planned instants
// the zero value is not usable, build one with NewPlanner
type Planner struct {
	jitter JitterSource
}

// PlannerOption customizes a Planner
type PlannerOption func(*Planner)

// WithJitter swaps the jitter source, mostly for tests
func WithJitter(src JitterSource) PlannerOption {
	return func(p *Planner) {
		if src != nil {
			p.jitter = src
		}
	}
}

// NewPlanner returns a planner backed by SeededJitter unless overridden
func NewPlanner(opts ...PlannerOption) *Planner {
	p := &Planner{jitter: SeededJitter{}}
	for _, o := range opts {
		o(p)
	}
	return p
}

// RecommendNext plans the next occurrence
func (p *Planner) RecommendNext(req RecommendRequest) Recommendation {
	now := clock.EnsureUTC(req.Now)
	base := req.Template.BaseIntervalDays
	adaptive := AdaptiveIntervalDays(base, req.History)
	jitter := p.jitter.Uniform(req.Seed, adaptive*req.Template.JitterPct)

	candidate := now.Add(clock.Days(max(adaptive+jitter, MinLeadDays)))
	candidate = EnforceMinGap(candidate, req.Settings.MinGapHours, req.History)
	at, out := req.Settings.resolver().Next(candidate)

	return Recommendation{
		ScheduledAt:  at,
		Rationale:    fmt.Sprintf("base_interval=%.2fd, adaptive_interval=%.2fd, jitter=%.2fd", base, adaptive, jitter),
		BaseDays:     base,
		AdaptiveDays: adaptive,
		JitterDays:   jitter,
		Outcome:      out,
	}
}

// MissedOptions proposes an ASAP and a DELAYED replacement, exactly one recommended
func (p *Planner) MissedOptions(req MissedRequest) MissedResult {
	now := clock.EnsureUTC(req.Now)
	adaptive := AdaptiveIntervalDays(req.Template.BaseIntervalDays, req.History)
	urgency := Urgency(req.History, req.Template.BaseIntervalDays, now)
	asapFirst := urgency >= asapThreshold

	res := req.Settings.resolver()
	resolve := func(candidate time.Time) (time.Time, slots.Outcome) {
		return res.Next(EnforceMinGap(candidate, req.Settings.MinGapHours, req.History))
	}

	asapAt, asapOut := resolve(now)
	delayedAt, delayedOut := resolve(now.Add(clock.Days(max(adaptive, MinLeadDays))))

	return MissedResult{
		Urgency: urgency,
		Options: []MissedOption{
			{
				OptionID:    OptionID(req.EventID, OptionASAP, asapAt),
				ProfileID:   req.ProfileID,
				EventID:     req.EventID,
				Type:        OptionASAP,
				ProposedAt:  asapAt,
				Rationale:   rationaleASAP,
				Recommended: asapFirst,
				Outcome:     asapOut,
			},
			{
				OptionID:    OptionID(req.EventID, OptionDelayed, delayedAt),
				ProfileID:   req.ProfileID,
				EventID:     req.EventID,
				Type:        OptionDelayed,
				ProposedAt:  delayedAt,
				Rationale:   rationaleDelayed,
				Recommended: !asapFirst,
				Outcome:     delayedOut,
			},
		},
	}
}

// SentimentScore aggregates template signals, see the package level SentimentScore
func (p *Planner) SentimentScore(signals []Signal) float64 {
	return SentimentScore(signals)
}
