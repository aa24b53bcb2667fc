package net

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
)

func TestWithRequestID(t *testing.T) {
	ctx := context.Background()
	if RequestID(ctx) != "" {
		t.Fatalf("background should carry no id")
	}
	if WithRequestID(ctx, "") != ctx {
		t.Fatalf("blank id should leave ctx alone")
	}
	if got := RequestID(WithRequestID(ctx, "req-1")); got != "req-1" {
		t.Fatalf("RequestID = %q", got)
	}
}

func TestRequestID_ReadsChiMiddleware(t *testing.T) {
	var got string
	h := chimw.RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = RequestID(r.Context())
	}))
	req := httptest.NewRequest(http.MethodPost, "/v1/scheduler/recommend-next", nil)
	req.Header.Set("X-Request-Id", "from-client")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if got != "from-client" {
		t.Fatalf("RequestID = %q, want from-client", got)
	}
}
