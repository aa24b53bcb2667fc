package domain

import (
	"rewardsched/internal/core/clock"
	"rewardsched/internal/platform/net/http/bind"
)

// custom tags used by the DTOs in this package
const (
	TagClock    = "clock"
	TagTimezone = "timezone"
)

func init() {
	mustRegister(TagClock, "{0} must be a HH:MM clock", func(s string) bool {
		_, err := clock.ParseClock(s)
		return err == nil
	})
	mustRegister(TagTimezone, "{0} must be a known IANA timezone", func(s string) bool {
		_, err := clock.LoadLocation(s)
		return err == nil
	})
}

func mustRegister(tag, msg string, ok func(string) bool) {
	if err := bind.RegisterTag(tag, msg, bind.StringTag(ok)); err != nil {
		panic(err)
	}
}
