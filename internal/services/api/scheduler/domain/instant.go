package domain

import (
	"bytes"
	"encoding/json"
	"time"

	"rewardsched/internal/core/clock"
)

// Instant is an ISO-8601 timestamp on the wire
// input may carry an offset, Z or nothing (read as UTC), output is always RFC3339 UTC
type Instant struct{ time.Time }

// At wraps t as an Instant in UTC
func At(t time.Time) Instant { return Instant{t.UTC()} }

// UnmarshalJSON implements json.Unmarshaler
func (i *Instant) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := clock.ParseInstant(s)
	if err != nil {
		return err
	}
	i.Time = t
	return nil
}

// MarshalJSON implements json.Marshaler
func (i Instant) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.UTC().Format(time.RFC3339Nano))
}
