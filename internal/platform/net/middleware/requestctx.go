package middleware

import (
	stdhttp "net/http"

	"github.com/google/uuid"

	"rewardsched/internal/platform/logger"
	pnet "rewardsched/internal/platform/net"
)

// RequestContext copies the chi request id onto the logger context
// mount after RequestID so every log line of the request carries request_id
// requests that reach it without an id get a random uuid
func RequestContext(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		ctx := r.Context()
		id := pnet.RequestID(ctx)
		if id == "" {
			id = uuid.NewString()
			ctx = pnet.WithRequestID(ctx, id)
		}
		w.Header().Set("X-Request-ID", id)
		ctx = logger.WithRequest(ctx, id, "")
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
