package service

import (
	"time"

	"rewardsched/internal/core/cadence"
	"rewardsched/internal/core/clock"
	"rewardsched/internal/core/slots"
	perr "rewardsched/internal/platform/errors"
	str "rewardsched/internal/platform/strings"
	"rewardsched/internal/services/api/scheduler/domain"
)

func toTemplate(t domain.Template) cadence.Template {
	return cadence.Template{
		ID:               t.ID,
		Name:             t.Name,
		BaseIntervalDays: t.BaseIntervalDays,
		JitterPct:        t.JitterPct,
	}
}

// toSettings resolves the timezone and clocks and rejects unschedulable settings
func toSettings(s domain.Settings) (cadence.Settings, error) {
	loc, err := clock.LoadLocation(s.Timezone)
	if err != nil {
		return cadence.Settings{}, perr.Validationf("timezone", "timezone %q is not a known IANA zone", s.Timezone)
	}

	windows := make([]slots.Window, 0, len(s.AllowedWindows))
	for _, w := range s.AllowedWindows {
		start, err := clock.ParseClock(w.StartLocalTime)
		if err != nil {
			return cadence.Settings{}, perr.Validationf("startLocalTime", "startLocalTime %q must be HH:MM", w.StartLocalTime)
		}
		end, err := clock.ParseClock(w.EndLocalTime)
		if err != nil {
			return cadence.Settings{}, perr.Validationf("endLocalTime", "endLocalTime %q must be HH:MM", w.EndLocalTime)
		}
		day := 0
		if w.Weekday != nil {
			day = *w.Weekday
		}
		windows = append(windows, slots.Window{Weekday: day, Start: start, End: end})
	}

	blackouts := make([]slots.Blackout, 0, len(s.BlackoutDates))
	for _, b := range s.BlackoutDates {
		blackouts = append(blackouts, slots.Blackout{
			Start:  clock.EnsureUTC(b.StartAt.Time),
			End:    instantPtr(b.EndAt),
			AllDay: b.AllDay,
			Note:   str.Deref(b.Note),
		})
	}

	out := cadence.Settings{
		Location:         loc,
		MinGapHours:      s.MinGapHours,
		Windows:          windows,
		Blackouts:        blackouts,
		BlackoutWeekdays: s.RecurringBlackoutWeekdays,
	}
	if err := schedulable(out); err != nil {
		return cadence.Settings{}, err
	}
	return out, nil
}

// schedulable rejects settings whose recurring blackout weekdays leave no day to plan on
func schedulable(s cadence.Settings) error {
	var blocked [7]bool
	n := 0
	for _, d := range s.BlackoutWeekdays {
		if d >= 0 && d <= 6 && !blocked[d] {
			blocked[d] = true
			n++
		}
	}
	if n == 7 {
		return perr.Unschedulablef("recurringBlackoutWeekdays", "recurring blackout weekdays block every day of the week")
	}
	if len(s.Windows) == 0 || n == 0 {
		return nil
	}
	for _, w := range s.Windows {
		if !blocked[w.Weekday] {
			return nil
		}
	}
	return perr.Unschedulablef("recurringBlackoutWeekdays", "recurring blackout weekdays block every allowed window")
}

func toHistory(items []domain.HistoryItem) []cadence.HistoryItem {
	out := make([]cadence.HistoryItem, 0, len(items))
	for _, h := range items {
		out = append(out, cadence.HistoryItem{
			ScheduledAt: clock.EnsureUTC(h.ScheduledAt.Time),
			Status:      cadence.Status(h.Status),
			CompletedAt: instantPtr(h.CompletedAt),
			MissedAt:    instantPtr(h.MissedAt),
			Sentiment:   sentimentOf(h.SentimentLevel),
		})
	}
	return out
}

func toSignals(items []domain.TemplateSignal) []cadence.Signal {
	out := make([]cadence.Signal, 0, len(items))
	for _, s := range items {
		out = append(out, cadence.Signal{
			TemplateID:  s.TemplateID,
			Sentiment:   sentimentOf(s.SentimentLevel),
			Status:      cadence.Status(s.Status),
			CompletedAt: instantPtr(s.CompletedAt),
		})
	}
	return out
}

func sentimentOf(s *string) *cadence.SentimentLevel {
	if s == nil {
		return nil
	}
	l := cadence.SentimentLevel(*s)
	if !l.Valid() {
		return nil
	}
	return &l
}

func instantPtr(i *domain.Instant) *time.Time {
	if i == nil {
		return nil
	}
	t := clock.EnsureUTC(i.Time)
	return &t
}
