package service

import (
	"testing"
	"time"

	"rewardsched/internal/core/cadence"
	perr "rewardsched/internal/platform/errors"
	"rewardsched/internal/services/api/scheduler/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToSettings_ResolvesZoneClocksAndBlackouts(t *testing.T) {
	end := time.Date(2025, 2, 4, 0, 0, 0, 0, time.UTC)
	s, err := toSettings(domain.Settings{
		Timezone:    "Europe/Berlin",
		MinGapHours: 12,
		AllowedWindows: []domain.AllowedWindow{
			{Weekday: intp(4), StartLocalTime: "09:30", EndLocalTime: "11:00"},
		},
		BlackoutDates: []domain.BlackoutDate{
			{StartAt: domain.At(end.Add(-24 * time.Hour)), EndAt: instp(end), Note: strp("trip")},
		},
		RecurringBlackoutWeekdays: []int{6},
	})
	require.NoError(t, err)

	assert.Equal(t, "Europe/Berlin", s.Location.String())
	assert.Equal(t, 12, s.MinGapHours)
	require.Len(t, s.Windows, 1)
	assert.Equal(t, 4, s.Windows[0].Weekday)
	assert.Equal(t, 9*60+30, s.Windows[0].Start.Minutes())
	require.Len(t, s.Blackouts, 1)
	assert.Equal(t, "trip", s.Blackouts[0].Note)
	require.NotNil(t, s.Blackouts[0].End)
	assert.True(t, s.Blackouts[0].End.Equal(end))
	assert.Equal(t, []int{6}, s.BlackoutWeekdays)
}

func TestToSettings_MalformedClock(t *testing.T) {
	_, err := toSettings(domain.Settings{
		Timezone:    "UTC",
		MinGapHours: 1,
		AllowedWindows: []domain.AllowedWindow{
			{Weekday: intp(0), StartLocalTime: "25:00", EndLocalTime: "26:00"},
		},
	})
	require.Error(t, err)
	assert.Equal(t, perr.ErrorCodeValidation, perr.CodeOf(err))
}

func TestSchedulable_PartialBlackoutIsFine(t *testing.T) {
	s, err := toSettings(domain.Settings{
		Timezone:    "UTC",
		MinGapHours: 1,
		AllowedWindows: []domain.AllowedWindow{
			{Weekday: intp(0), StartLocalTime: "18:00", EndLocalTime: "20:00"},
			{Weekday: intp(3), StartLocalTime: "18:00", EndLocalTime: "20:00"},
		},
		RecurringBlackoutWeekdays: []int{0},
	})
	require.NoError(t, err)
	assert.Len(t, s.Windows, 2)
}

func TestToHistory_MapsPointersAndUnknownSentiment(t *testing.T) {
	at := time.Date(2025, 1, 30, 18, 0, 0, 0, time.UTC)
	h := toHistory([]domain.HistoryItem{
		{ScheduledAt: domain.At(at), Status: "COMPLETED", CompletedAt: instp(at.Add(time.Hour)), SentimentLevel: strp("WELL")},
		{ScheduledAt: domain.At(at), Status: "MISSED", MissedAt: instp(at), SentimentLevel: strp("MEH")},
	})
	require.Len(t, h, 2)
	assert.Equal(t, cadence.StatusCompleted, h[0].Status)
	require.NotNil(t, h[0].CompletedAt)
	assert.Equal(t, cadence.SentimentWell, *h[0].Sentiment)
	assert.Nil(t, h[1].CompletedAt)
	assert.NotNil(t, h[1].MissedAt)
	assert.Nil(t, h[1].Sentiment)
}
