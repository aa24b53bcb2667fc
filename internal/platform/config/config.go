// Package config reads service settings from the environment
// every binary scopes its view with Prefix, the API reads SCHED_API_*
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"rewardsched/internal/platform/logger"
	pstrings "rewardsched/internal/platform/strings"
)

// Conf is a prefixed view over the environment
type Conf struct{ prefix string }

// New returns an unprefixed view
func New() Conf { return Conf{} }

// Prefix narrows the view, prefixes stack: New().Prefix("SCHED_API_").Prefix("RATE_")
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// Key returns the environment variable name behind key
func (c Conf) Key(key string) string { return c.prefix + key }

func (c Conf) lookup(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(c.Key(key)))
	return v, v != ""
}

// parsed reads key through parse, an unparsable value is logged and replaced by def
func parsed[T any](c Conf, key string, def T, parse func(string) (T, error)) T {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.Key(key)).Str("value", s).Interface("default", def).
			Msg("unparsable setting, using default")
		return def
	}
	return v
}

// MayString returns the trimmed value or def
func (c Conf) MayString(key, def string) string {
	if v, ok := c.lookup(key); ok {
		return v
	}
	return def
}

// MayInt returns an integer setting or def
func (c Conf) MayInt(key string, def int) int { return parsed(c, key, def, strconv.Atoi) }

// MayFloat64 returns a float setting or def
func (c Conf) MayFloat64(key string, def float64) float64 {
	return parsed(c, key, def, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}

// MayBool returns a boolean setting or def
func (c Conf) MayBool(key string, def bool) bool { return parsed(c, key, def, strconv.ParseBool) }

// MayDuration returns a duration setting such as 500ms or 15m, or def
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return parsed(c, key, def, time.ParseDuration)
}

// MayCSV splits a comma separated setting, blanks dropped, def when nothing remains
func (c Conf) MayCSV(key string, def []string) []string {
	s, _ := c.lookup(key)
	return pstrings.IfEmpty(pstrings.Split(s), def)
}

// MayEnum returns the allowed spelling matching the setting case insensitively, or def when unset
// a value outside allowed is a deployment mistake and panics
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	for _, a := range allowed {
		if strings.EqualFold(s, a) {
			return a
		}
	}
	logger.Get().Panic().Str("key", c.Key(key)).Str("value", s).Strs("allowed", allowed).Msg("invalid enum setting")
	return ""
}
