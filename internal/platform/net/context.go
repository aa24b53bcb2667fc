// Package net carries the request id shared by the transport packages
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// WithRequestID stores id where chi's RequestID middleware keeps it, so both read the same value
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, chimw.RequestIDKey, id)
}

// RequestID returns the id of the request on ctx, "" outside a request
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }
