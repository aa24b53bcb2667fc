// Package domain holds DTOs for scheduler http and service contracts
package domain

// Field names follow the camelCase wire of the scheduling clients
// instants are ISO-8601, weekdays count from Monday=0, local clocks are HH:MM

// Template is the recurrence definition of one event kind
type Template struct {
	ID               string  `json:"id" validate:"required,max=200" example:"template-1"`
	Name             string  `json:"name,omitempty" validate:"max=200" example:"flowers"`
	BaseIntervalDays float64 `json:"baseIntervalDays" validate:"gt=0" example:"7"`
	JitterPct        float64 `json:"jitterPct" validate:"gte=0,lte=0.9" example:"0.2"`
}

// AllowedWindow is a weekly availability range in the profile's timezone
type AllowedWindow struct {
	Weekday        *int   `json:"weekday" validate:"required,min=0,max=6" example:"0"`
	StartLocalTime string `json:"startLocalTime" validate:"required,clock" example:"18:00"`
	EndLocalTime   string `json:"endLocalTime" validate:"required,clock" example:"20:00"`
}

// BlackoutDate blocks scheduling for an interval or whole local dates
type BlackoutDate struct {
	StartAt Instant  `json:"startAt" validate:"required"`
	EndAt   *Instant `json:"endAt,omitempty"`
	AllDay  bool     `json:"allDay"`
	Note    *string  `json:"note,omitempty" validate:"omitempty,max=300"`
}

// Settings are the per profile availability and spacing constraints
type Settings struct {
	Timezone                  string          `json:"timezone" validate:"required,timezone" example:"Europe/Berlin"`
	MinGapHours               int             `json:"minGapHours" validate:"min=1,max=720" example:"24"`
	AllowedWindows            []AllowedWindow `json:"allowedWindows" validate:"omitempty,dive"`
	BlackoutDates             []BlackoutDate  `json:"blackoutDates" validate:"omitempty,dive"`
	RecurringBlackoutWeekdays []int           `json:"recurringBlackoutWeekdays,omitempty" validate:"omitempty,max=7,dive,min=0,max=6"`
}

// HistoryItem is one past or scheduled occurrence, most recent first
type HistoryItem struct {
	ScheduledAt    Instant  `json:"scheduledAt" validate:"required"`
	Status         string   `json:"status" validate:"required,oneof=SCHEDULED COMPLETED MISSED RESCHEDULED CANCELED" example:"COMPLETED"`
	CompletedAt    *Instant `json:"completedAt,omitempty"`
	MissedAt       *Instant `json:"missedAt,omitempty"`
	SentimentLevel *string  `json:"sentimentLevel,omitempty" validate:"omitempty,oneof=VERY_POOR POOR NEUTRAL WELL VERY_WELL" example:"WELL"`
}

// PlanInput is shared by the two planning requests
// template may arrive as eventConfig, template wins when both are sent
type PlanInput struct {
	Seed         string        `json:"seed" validate:"required,max=512" example:"stable-seed"`
	Now          Instant       `json:"now" validate:"required"`
	ProfileID    string        `json:"profileId,omitempty" validate:"max=200" example:"profile-1"`
	Template     *Template     `json:"template,omitempty" validate:"required_without=EventConfig"`
	EventConfig  *Template     `json:"eventConfig,omitempty" validate:"required_without=Template"`
	Settings     Settings      `json:"settings" validate:"required"`
	EventHistory []HistoryItem `json:"eventHistory" validate:"omitempty,dive"`
}

// ResolvedTemplate returns template, falling back to eventConfig
func (p PlanInput) ResolvedTemplate() Template {
	if p.Template != nil {
		return *p.Template
	}
	if p.EventConfig != nil {
		return *p.EventConfig
	}
	return Template{}
}

// RecommendNextInput asks for the next occurrence
type RecommendNextInput struct {
	PlanInput
}

// RecommendNextOutput is the planned next occurrence
type RecommendNextOutput struct {
	ScheduledAt Instant `json:"scheduledAt"`
	Rationale   string  `json:"rationale" example:"base_interval=7.00d, adaptive_interval=7.35d, jitter=0.41d"`
}

// MissedOptionsInput asks for replacements of a missed occurrence
type MissedOptionsInput struct {
	PlanInput
	EventID            string  `json:"eventId" validate:"required,max=200" example:"event-1"`
	CurrentScheduledAt Instant `json:"currentScheduledAt" validate:"required"`
}

// MissedOption is one proposed replacement
type MissedOption struct {
	OptionID    string  `json:"optionId" example:"b3cba8f562bb01a830b4"`
	ProfileID   string  `json:"profileId" example:"profile-1"`
	EventID     string  `json:"eventId" example:"event-1"`
	Type        string  `json:"type" example:"ASAP"`
	ProposedAt  Instant `json:"proposedAt"`
	Rationale   string  `json:"rationale"`
	Recommended bool    `json:"recommended"`
}

// MissedOptionsOutput lists ASAP then DELAYED
type MissedOptionsOutput struct {
	Options []MissedOption `json:"options"`
}

// TemplateSignal is one template outcome used for scoring
type TemplateSignal struct {
	TemplateID     string   `json:"templateId" validate:"required,max=200" example:"t1"`
	SentimentLevel *string  `json:"sentimentLevel,omitempty" validate:"omitempty,oneof=VERY_POOR POOR NEUTRAL WELL VERY_WELL" example:"VERY_WELL"`
	Status         string   `json:"status" validate:"required,oneof=SCHEDULED COMPLETED MISSED RESCHEDULED CANCELED" example:"COMPLETED"`
	CompletedAt    *Instant `json:"completedAt,omitempty"`
}

// RecomputeStateInput asks for the aggregate sentiment of a profile
type RecomputeStateInput struct {
	ProfileID       string           `json:"profileId" validate:"required,max=200" example:"profile-1"`
	Now             Instant          `json:"now" validate:"required"`
	TemplateSignals []TemplateSignal `json:"templateSignals" validate:"dive"`
}

// RecomputeStateOutput carries the recomputed score
type RecomputeStateOutput struct {
	OK             bool    `json:"ok" example:"true"`
	ProfileID      string  `json:"profileId" example:"profile-1"`
	SentimentScore float64 `json:"sentimentScore" example:"0.5"`
}
