package module

import (
	"time"

	"rewardsched/internal/platform/config"
	"rewardsched/internal/platform/net/middleware"
)

// Options are the scheduler's transport limits
type Options struct {
	PerMinute int           // requests per client per minute, 0 disables limiting
	Burst     int           // bucket size
	EntryTTL  time.Duration // idle client buckets are dropped after this
}

// FromConfig reads RATE_* under cfg, which the API has already scoped to SCHED_API_
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("RATE_")
	return Options{
		PerMinute: c.MayInt("PER_MINUTE", 600),
		Burst:     c.MayInt("BURST", 60),
		EntryTTL:  c.MayDuration("ENTRY_TTL", 15*time.Minute),
	}
}

// RateLimit converts the options to middleware settings
func (o Options) RateLimit() middleware.RateLimitOptions {
	return middleware.RateLimitOptions{
		PerMinute: o.PerMinute,
		Burst:     o.Burst,
		EntryTTL:  o.EntryTTL,
	}
}
