// Package slots resolves a candidate instant against weekly availability windows and blackouts
// every search is an explicit bounded loop with a defined fallback, nothing here can fail
package slots

import (
	"cmp"
	"slices"
	"time"

	"rewardsched/internal/core/clock"
)

const (
	// HorizonDays bounds the forward day scan when windows are configured
	HorizonDays = 370

	// MaxBlackoutSteps bounds how many blackout hits one step-out may chain
	MaxBlackoutSteps = 100

	// StepPastBlackout is added to a blackout hit before rescanning
	StepPastBlackout = 30 * time.Minute
)

// Window is a weekly allowed range on one weekday (Monday=0) between two local clocks
type Window struct {
	Weekday int
	Start   clock.Clock
	End     clock.Clock
}

// Blackout is an interval during which nothing may be scheduled
// a nil End collapses the interval to Start, AllDay widens it to whole local dates
type Blackout struct {
	Start  time.Time
	End    *time.Time
	AllDay bool
	Note   string
}

// Outcome describes how a resolution was reached
type Outcome struct {
	// DaysScanned counts calendar days visited by the window scan
	DaysScanned int
	// Fallback is set when the horizon was exhausted and the candidate returned unchanged
	Fallback bool
	// StepCapped is set when a blackout step-out hit MaxBlackoutSteps while still blacked out
	StepCapped bool
}

// Outcome labels
const (
	LabelResolved   = "resolved"
	LabelFallback   = "fallback"
	LabelStepCapped = "step_capped"
)

// Label names the outcome for metrics and logs, fallback wins over a capped step
func (o Outcome) Label() string {
	switch {
	case o.Fallback:
		return LabelFallback
	case o.StepCapped:
		return LabelStepCapped
	default:
		return LabelResolved
	}
}

// Degraded reports whether the result did not fully satisfy the constraints
func (o Outcome) Degraded() bool { return o.Fallback || o.StepCapped }

// Resolver finds the next instant that satisfies windows and blackouts in one timezone
// it is immutable after construction and safe for concurrent use
type Resolver struct {
	loc        *time.Location
	byDay      [7][]Window
	hasWindows bool
	blackouts  []Blackout
	weekdays   [7]bool
}

// NewResolver groups windows by weekday and captures blackouts
// windows with a weekday outside 0..6 and unknown blackout weekdays are ignored
func NewResolver(loc *time.Location, windows []Window, blackouts []Blackout, blackoutWeekdays []int) *Resolver {
	if loc == nil {
		loc = time.UTC
	}
	r := &Resolver{loc: loc, blackouts: slices.Clone(blackouts)}
	for _, w := range windows {
		if w.Weekday < 0 || w.Weekday > 6 {
			continue
		}
		r.byDay[w.Weekday] = append(r.byDay[w.Weekday], w)
		r.hasWindows = true
	}
	for d := range r.byDay {
		// stable so equal start clocks keep caller order
		slices.SortStableFunc(r.byDay[d], func(a, b Window) int {
			return cmp.Compare(a.Start.Minutes(), b.Start.Minutes())
		})
	}
	for _, d := range blackoutWeekdays {
		if d >= 0 && d <= 6 {
			r.weekdays[d] = true
		}
	}
	return r
}

// Location returns the zone the resolver works in
func (r *Resolver) Location() *time.Location { return r.loc }

// Next returns the first instant at or after candidate that sits inside an allowed window
// and outside every blackout, in UTC
func (r *Resolver) Next(candidate time.Time) (time.Time, Outcome) {
	local := candidate.In(r.loc)

	if !r.hasWindows {
		at, capped := r.StepOut(local)
		return at.UTC(), Outcome{StepCapped: capped}
	}

	var out Outcome
	y, m, d := local.Date()
	for offset := 0; offset < HorizonDays; offset++ {
		probe := time.Date(y, m, d+offset, 12, 0, 0, 0, r.loc)
		py, pm, pd := probe.Date()
		out.DaysScanned = offset + 1

		for _, w := range r.byDay[clock.Weekday(probe)] {
			start := w.Start.On(py, pm, pd, r.loc)
			end := w.End.On(py, pm, pd, r.loc)

			at := local
			if start.After(at) {
				at = start
			}
			if at.After(end) {
				continue
			}

			stepped, capped := r.StepOut(at)
			if capped {
				out.StepCapped = true
			}
			if !stepped.After(end) && clock.SameDate(stepped, probe) {
				return stepped.UTC(), out
			}
		}
	}

	out.Fallback = true
	return local.UTC(), out
}

// StepOut moves t forward past any blackout it falls into, rescanning after every jump
// the result is in the resolver zone; capped reports the step budget ran out mid blackout
func (r *Resolver) StepOut(t time.Time) (at time.Time, capped bool) {
	cursor := t.In(r.loc)
	for i := 0; i < MaxBlackoutSteps; i++ {
		hit, ok := r.hit(cursor)
		if !ok {
			return cursor, false
		}
		cursor = hit.Add(StepPastBlackout)
	}
	_, still := r.hit(cursor)
	return cursor, still
}

// Blocked reports whether t falls inside any blackout
func (r *Resolver) Blocked(t time.Time) bool {
	_, ok := r.hit(t.In(r.loc))
	return ok
}

// hit returns the instant the matching blackout releases from, before the step padding
func (r *Resolver) hit(t time.Time) (time.Time, bool) {
	for _, b := range r.blackouts {
		start := b.Start.In(r.loc)
		end := start
		if b.End != nil {
			end = b.End.In(r.loc)
		}

		if b.AllDay {
			if !clock.DateBefore(t, start) && !clock.DateBefore(end, t) {
				return endOfDay(t), true
			}
			continue
		}
		if !t.Before(start) && !t.After(end) {
			return end, true
		}
	}

	if r.weekdays[clock.Weekday(t)] {
		return endOfDay(t), true
	}
	return time.Time{}, false
}

// endOfDay is 23:59 on t's local date
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 0, 0, t.Location())
}
