package middleware

import (
	"net"
	stdhttp "net/http"
	"sync"
	"time"

	perr "rewardsched/internal/platform/errors"
	phttp "rewardsched/internal/platform/net/http"

	"golang.org/x/time/rate"
)

// RateLimitOptions configures the per client token bucket
// a zero PerMinute or Burst disables limiting
type RateLimitOptions struct {
	PerMinute int
	Burst     int
	EntryTTL  time.Duration // default 15m
	Cleanup   time.Duration // default 5m

	// Key picks the bucket for a request, defaults to the client ip
	Key func(*stdhttp.Request) string
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type limiter struct {
	mu          sync.Mutex
	limit       rate.Limit
	burst       int
	buckets     map[string]*bucket
	ttl         time.Duration
	cleanup     time.Duration
	lastCleanup time.Time
	now         func() time.Time
}

func newLimiter(o RateLimitOptions) *limiter {
	ttl := o.EntryTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	cleanup := o.Cleanup
	if cleanup <= 0 {
		cleanup = 5 * time.Minute
	}
	return &limiter{
		limit:       rate.Every(time.Minute / time.Duration(o.PerMinute)),
		burst:       o.Burst,
		buckets:     make(map[string]*bucket),
		ttl:         ttl,
		cleanup:     cleanup,
		lastCleanup: time.Now(),
		now:         time.Now,
	}
}

func (l *limiter) allow(key string) bool {
	if key == "" {
		return true
	}
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastCleanup) >= l.cleanup {
		for k, b := range l.buckets {
			if now.Sub(b.lastSeen) > l.ttl {
				delete(l.buckets, k)
			}
		}
		l.lastCleanup = now
	}

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

func (l *limiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// RateLimit rejects clients over budget with a 429 envelope
func RateLimit(o RateLimitOptions) func(stdhttp.Handler) stdhttp.Handler {
	if o.PerMinute <= 0 || o.Burst <= 0 {
		return func(next stdhttp.Handler) stdhttp.Handler { return next }
	}
	l := newLimiter(o)
	key := o.Key
	if key == nil {
		key = ClientIP
	}
	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			if !l.allow(key(r)) {
				w.Header().Set("Retry-After", "60")
				phttp.WriteError(w, r, perr.TooManyRequestsf("rate limit exceeded"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP is the host part of RemoteAddr, run after RealIP to honour proxies
func ClientIP(r *stdhttp.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
