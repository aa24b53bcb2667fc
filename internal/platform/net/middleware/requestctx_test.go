package middleware_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"rewardsched/internal/platform/logger"
	pnet "rewardsched/internal/platform/net"
	"rewardsched/internal/platform/net/middleware"
)

func TestRequestContext_LogsCarryRequestID(t *testing.T) {
	var buf bytes.Buffer
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := logger.C(r.Context()).Output(&buf)
		l.Error().Msg("inside")
	})
	h := chimw.RequestID(middleware.RequestContext(next))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "req-42")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if got := rr.Header().Get("X-Request-ID"); got != "req-42" {
		t.Fatalf("expected header mirrored, got %q", got)
	}
	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("decode log line: %v (%q)", err, buf.String())
	}
	if line["request_id"] != "req-42" {
		t.Fatalf("expected request_id in log, got %v", line)
	}
}

func TestRequestContext_FallbackID(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = pnet.RequestID(r.Context())
	})
	rr := httptest.NewRecorder()
	middleware.RequestContext(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == "" || rr.Header().Get("X-Request-ID") != seen {
		t.Fatalf("expected generated id mirrored, ctx %q header %q", seen, rr.Header().Get("X-Request-ID"))
	}
	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("expected a uuid, got %q", seen)
	}
}
