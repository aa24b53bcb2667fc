// Package clock holds the time and calendar helpers the scheduling engine is built on
// instants are normalized to UTC, local clocks are "HH:MM" and weekdays count from Monday=0
package clock

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrMalformedClock is returned when a clock string is not HH:MM
	ErrMalformedClock = errors.New("malformed clock string")

	// ErrMalformedInstant is returned when an instant is not ISO-8601
	ErrMalformedInstant = errors.New("malformed instant")
)

// Clock is a local time of day with minute precision
type Clock struct {
	Hour   int
	Minute int
}

// Minutes returns minutes since local midnight
func (c Clock) Minutes() int { return c.Hour*60 + c.Minute }

// String renders the clock as HH:MM
func (c Clock) String() string { return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute) }

// On combines a local calendar date with the clock in loc
func (c Clock) On(year int, month time.Month, day int, loc *time.Location) time.Time {
	return time.Date(year, month, day, c.Hour, c.Minute, 0, 0, loc)
}

// ParseClock parses "HH:MM" with hour 0..23 and minute 0..59
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return Clock{}, fmt.Errorf("%w: %q", ErrMalformedClock, s)
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Clock{}, fmt.Errorf("%w: %q", ErrMalformedClock, s)
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Clock{}, fmt.Errorf("%w: %q", ErrMalformedClock, s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return Clock{}, fmt.Errorf("%w: %q out of range", ErrMalformedClock, s)
	}
	return Clock{Hour: h, Minute: m}, nil
}

// MustClock is ParseClock for literals in tests and defaults
func MustClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

// EnsureUTC returns t in UTC. Instants without zone data are produced by ParseInstant as UTC already
func EnsureUTC(t time.Time) time.Time { return t.UTC() }

// layouts carrying an offset or Z, tried first
var offsetLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
}

// naive layouts accepted without an offset, interpreted as UTC
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// ParseInstant parses ISO-8601 with an explicit offset or Z, falling back to naive forms as UTC
func ParseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrMalformedInstant)
	}
	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return EnsureUTC(t), nil
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedInstant, s)
}

// Weekday returns the weekday of t in its own location with Monday=0 and Sunday=6
func Weekday(t time.Time) int { return (int(t.Weekday()) + 6) % 7 }

// SameDate reports whether a and b fall on the same calendar date in their own locations
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DateBefore reports whether the calendar date of a is strictly before that of b
func DateBefore(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay < by
	}
	if am != bm {
		return am < bm
	}
	return ad < bd
}

// Days converts fractional days into a duration rounded to whole microseconds
func Days(d float64) time.Duration {
	return time.Duration(d * float64(24*time.Hour)).Round(time.Microsecond)
}

// ISOFormat renders a UTC instant the way the option id hash expects
// seconds precision with microseconds only when non zero, and an explicit +00:00 offset
func ISOFormat(t time.Time) string {
	t = t.UTC()
	base := t.Format("2006-01-02T15:04:05")
	if us := t.Nanosecond() / 1000; us != 0 {
		base += fmt.Sprintf(".%06d", us)
	}
	return base + "+00:00"
}
