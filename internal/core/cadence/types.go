// Package cadence plans the next occurrence of a recurring reward event
// it adapts the interval to recorded sentiment, applies seeded jitter, enforces spacing
// and resolves availability through the slots package
//
// the package is pure: it reads the inputs it is handed and keeps no state between calls
package cadence

import (
	"time"

	"rewardsched/internal/core/clock"
	"rewardsched/internal/core/slots"
)

// Status is the lifecycle state of one event occurrence
type Status string

// Event statuses
const (
	StatusScheduled   Status = "SCHEDULED"
	StatusCompleted   Status = "COMPLETED"
	StatusMissed      Status = "MISSED"
	StatusRescheduled Status = "RESCHEDULED"
	StatusCanceled    Status = "CANCELED"
)

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusMissed, StatusRescheduled, StatusCanceled:
		return true
	}
	return false
}

// HistoryItem is one past or scheduled occurrence as supplied by the caller
// history slices are expected most recent first
type HistoryItem struct {
	ScheduledAt time.Time
	Status      Status
	CompletedAt *time.Time
	MissedAt    *time.Time
	Sentiment   *SentimentLevel
}

// Anchor is CompletedAt when present, otherwise ScheduledAt
func (h HistoryItem) Anchor() time.Time {
	if h.CompletedAt != nil {
		return clock.EnsureUTC(*h.CompletedAt)
	}
	return clock.EnsureUTC(h.ScheduledAt)
}

// Template is the recurrence definition
type Template struct {
	ID               string
	Name             string
	BaseIntervalDays float64
	JitterPct        float64
}

// Settings are the per user availability and spacing constraints
type Settings struct {
	Location         *time.Location
	MinGapHours      int
	Windows          []slots.Window
	Blackouts        []slots.Blackout
	BlackoutWeekdays []int
}

// resolver builds the slot resolver for these settings
func (s Settings) resolver() *slots.Resolver {
	return slots.NewResolver(s.Location, s.Windows, s.Blackouts, s.BlackoutWeekdays)
}

// RecommendRequest asks for the next occurrence
type RecommendRequest struct {
	Seed     string
	Now      time.Time
	Template Template
	Settings Settings
	History  []HistoryItem
}

// Recommendation is the planned next occurrence
type Recommendation struct {
	ScheduledAt  time.Time
	Rationale    string
	BaseDays     float64
	AdaptiveDays float64
	JitterDays   float64
	Outcome      slots.Outcome
}

// MissedRequest asks for replacement options after a missed occurrence
type MissedRequest struct {
	Seed               string
	Now                time.Time
	ProfileID          string
	EventID            string
	CurrentScheduledAt time.Time
	Template           Template
	Settings           Settings
	History            []HistoryItem
}

// OptionType names the two recovery strategies
type OptionType string

// Recovery strategies
const (
	OptionASAP    OptionType = "ASAP"
	OptionDelayed OptionType = "DELAYED"
)

// MissedOption is one proposed replacement instant
type MissedOption struct {
	OptionID    string
	ProfileID   string
	EventID     string
	Type        OptionType
	ProposedAt  time.Time
	Rationale   string
	Recommended bool
	Outcome     slots.Outcome
}

// MissedResult carries the ASAP and DELAYED options, in that order, plus the urgency that chose between them
type MissedResult struct {
	Options []MissedOption
	Urgency float64
}

// Signal is one template outcome used for sentiment scoring
type Signal struct {
	TemplateID  string
	Sentiment   *SentimentLevel
	Status      Status
	CompletedAt *time.Time
}
