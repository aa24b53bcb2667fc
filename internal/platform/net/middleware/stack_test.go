package middleware_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"rewardsched/internal/platform/logger"
	"rewardsched/internal/platform/metrics"
	"rewardsched/internal/platform/net/middleware"
)

func chain(h http.Handler, mws []func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

func TestStack_RequestIDAndCompression(t *testing.T) {
	var seen string
	h := chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("X-Request-Id")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(strings.Repeat(`{"ok":true}`, 200)))
	}), middleware.Stack(middleware.StackOptions{}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "req-7")
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK || seen != "req-7" {
		t.Fatalf("status %d seen %q", rr.Code, seen)
	}
	if rr.Header().Get("X-Request-ID") != "req-7" {
		t.Fatalf("request id not mirrored: %v", rr.Header())
	}
	if rr.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("expected gzip, headers %v", rr.Header())
	}
	if !strings.Contains(rr.Header().Get("Cache-Control"), "no-cache") {
		t.Fatalf("expected no-cache headers, got %v", rr.Header())
	}
}

func TestStack_CORSPreflight(t *testing.T) {
	r := chi.NewRouter()
	r.Use(middleware.Stack(middleware.StackOptions{CORSOrigins: []string{"https://app.example"}})...)
	r.Post("/v1/scheduler/recommend-next", func(w http.ResponseWriter, _ *http.Request) {})

	req := httptest.NewRequest(http.MethodOptions, "/v1/scheduler/recommend-next", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example" {
		t.Fatalf("allow origin %q", got)
	}
}

func TestStack_MetricsObserved(t *testing.T) {
	m := metrics.MustNew("stack_test", nil)
	h := chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}), middleware.Stack(middleware.StackOptions{Metrics: m}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/meta/version", nil))

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rr.Body.String(), "stack_test_http_requests_total") {
		t.Fatalf("request counter missing from %s", rr.Body.String())
	}
}

func TestRecoverJSON_PanicBecomesEnvelope(t *testing.T) {
	h := chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("planner exploded")
	}), middleware.Stack(middleware.StackOptions{}))

	req := httptest.NewRequest(http.MethodPost, "/v1/scheduler/recommend-next", nil)
	req.Header.Set("X-Request-Id", "req-9")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status %d", rr.Code)
	}
	var env map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
	if env["code"] != float64(1) || env["request_id"] != "req-9" || env["error"] != "panic recovered" {
		t.Fatalf("envelope %v", env)
	}
}

func TestRecoverJSON_AbortHandlerPropagates(t *testing.T) {
	h := middleware.RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	defer func() {
		if recover() != http.ErrAbortHandler {
			t.Fatal("ErrAbortHandler should be re-raised")
		}
	}()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}

func TestAccessLog_StatusBytesAndSlowWarn(t *testing.T) {
	var buf bytes.Buffer
	t.Cleanup(logger.Replace(zerolog.New(&buf)))

	cases := []struct {
		slow  time.Duration
		sleep time.Duration
		level string
	}{
		{slow: 0, level: "info"},
		{slow: time.Millisecond, sleep: 5 * time.Millisecond, level: "warn"},
	}
	for _, tc := range cases {
		buf.Reset()
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(tc.sleep)
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte("hello"))
		})
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/scheduler/recompute-state", nil)
		req = req.WithContext(logger.WithRequest(req.Context(), "req-log", ""))
		middleware.AccessLog(tc.slow)(next).ServeHTTP(rr, req)

		if rr.Code != http.StatusCreated || rr.Body.String() != "hello" {
			t.Fatalf("response changed: %d %q", rr.Code, rr.Body.String())
		}
		var line map[string]any
		if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
			t.Fatalf("decode log %q: %v", buf.String(), err)
		}
		if line["level"] != tc.level || line["status"] != float64(201) || line["bytes"] != float64(5) {
			t.Fatalf("log line %v", line)
		}
		if line["request_id"] != "req-log" || line["path"] != "/v1/scheduler/recompute-state" {
			t.Fatalf("log line %v", line)
		}
	}
}
