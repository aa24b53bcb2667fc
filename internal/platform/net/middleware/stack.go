// Package middleware holds the scheduler API's http middleware
// chi supplies the generic pieces, the rest is ours
package middleware

import (
	"compress/flate"
	"net/http"
	"time"

	"rewardsched/internal/platform/metrics"
	pstrings "rewardsched/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// StackOptions tunes the root stack, the zero value is usable
type StackOptions struct {
	CORSOrigins []string      // default "*"
	Slow        time.Duration // access log warn threshold, 0 never warns
	Timeout     time.Duration // default 30s
	Metrics     *metrics.Metrics
}

// Stack is the middleware every route runs behind, outermost first
// rate limiting is not part of it, the scheduler module adds its own
func Stack(o StackOptions) []func(http.Handler) http.Handler {
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return []func(http.Handler) http.Handler{
		chimw.RequestID,
		chimw.RealIP,
		RequestContext,
		RecoverJSON,
		chimw.NoCache,
		AccessLog(o.Slow),
		o.Metrics.Middleware(),
		cors.Handler(cors.Options{
			AllowedOrigins: pstrings.IfEmpty(o.CORSOrigins, []string{"*"}),
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID", "Retry-After"},
		}),
		chimw.NewCompressor(flate.BestSpeed).Handler,
		chimw.StripSlashes,
		chimw.Timeout(timeout),
	}
}
