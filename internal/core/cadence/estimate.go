package cadence

import (
	"time"

	"rewardsched/internal/core/clock"
	"rewardsched/internal/core/weights"
)

// Interval adaptation bounds and weights
const (
	MinIntervalDays = 1.0
	MaxIntervalDays = 120.0

	// RecentWindow caps how many completed, rated occurrences influence the interval
	RecentWindow = 12

	recencyNewest = 1.5
	recencyOldest = 0.7

	// MinLeadDays is the smallest distance from now a planned occurrence may have
	MinLeadDays = 0.25
)

// AdaptiveIntervalDays widens or shrinks base by the recency weighted sentiment of history
// history must be most recent first, the first RecentWindow rated completions are used
func AdaptiveIntervalDays(baseDays float64, history []HistoryItem) float64 {
	values := make([]float64, 0, RecentWindow)
	for _, h := range history {
		if h.Status != StatusCompleted || h.Sentiment == nil {
			continue
		}
		values = append(values, h.Sentiment.Weight())
		if len(values) == RecentWindow {
			break
		}
	}
	if len(values) == 0 {
		return weights.Clip(baseDays, MinIntervalDays, MaxIntervalDays)
	}

	w := weights.WeightedAverage(values, weights.Linear(recencyNewest, recencyOldest, len(values)))
	return weights.Clip(baseDays*Multiplier(w), MinIntervalDays, MaxIntervalDays)
}

// Multiplier maps a weighted sentiment onto the interval multiplier
func Multiplier(w float64) float64 {
	switch {
	case w > 1.0:
		return 1.12
	case w > 0.2:
		return 1.05
	case w < -1.0:
		return 0.78
	case w < -0.2:
		return 0.9
	default:
		return 1.0
	}
}

// LatestAnchor returns the most recent anchor across history, false when history is empty
func LatestAnchor(history []HistoryItem) (time.Time, bool) {
	var latest time.Time
	found := false
	for _, h := range history {
		a := h.Anchor()
		if !found || a.After(latest) {
			latest = a
			found = true
		}
	}
	return latest, found
}

// EnforceMinGap pushes candidate to at least minGapHours after the latest anchor
func EnforceMinGap(candidate time.Time, minGapHours int, history []HistoryItem) time.Time {
	anchor, ok := LatestAnchor(history)
	if !ok {
		return candidate
	}
	floor := anchor.Add(time.Duration(minGapHours) * time.Hour)
	if candidate.Before(floor) {
		return floor
	}
	return candidate
}

// Urgency scores how overdue the next occurrence is, in [0, 1]
// never completed counts as maximally urgent
func Urgency(history []HistoryItem, baseDays float64, now time.Time) float64 {
	var latest time.Time
	found := false
	for _, h := range history {
		if h.CompletedAt == nil {
			continue
		}
		c := clock.EnsureUTC(*h.CompletedAt)
		if !found || c.After(latest) {
			latest = c
			found = true
		}
	}
	if !found {
		return 1.0
	}

	elapsed := clock.EnsureUTC(now).Sub(latest).Hours() / 24
	ratio := elapsed / max(baseDays, 1)
	return weights.Clip(ratio, 0, 2) / 2
}

// SentimentScore is the plain mean weight of signals that carry a sentiment, 0 when none do
func SentimentScore(signals []Signal) float64 {
	values := make([]float64, 0, len(signals))
	for _, s := range signals {
		if s.Sentiment != nil {
			values = append(values, s.Sentiment.Weight())
		}
	}
	return weights.Mean(values)
}
