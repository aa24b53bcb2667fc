package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	perr "rewardsched/internal/platform/errors"
	pnet "rewardsched/internal/platform/net"
)

func serve(h http.HandlerFunc, reqID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(pnet.WithRequestID(req.Context(), reqID))
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
	return env
}

func TestHandle_OKIsEnveloped(t *testing.T) {
	rr := serve(Handle(func(*http.Request) Response { return OK(map[string]int{"n": 1}) }), "req-1")
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("content type %q", ct)
	}
	env := decode(t, rr)
	if env.StatusCode != 200 || env.Status != "OK" || env.RequestID != "req-1" {
		t.Fatalf("envelope %+v", env)
	}
	if env.Data.(map[string]any)["n"] != float64(1) {
		t.Fatalf("data %v", env.Data)
	}
}

func TestHandle_RawSkipsEnvelope(t *testing.T) {
	rr := serve(Handle(func(*http.Request) Response { return Raw(map[string]bool{"ok": true}) }), "req-1")
	if got := strings.TrimSpace(rr.Body.String()); got != `{"ok":true}` {
		t.Fatalf("body %s", got)
	}
}

func TestHandle_ZeroStatusMeansOK(t *testing.T) {
	rr := serve(Handle(func(*http.Request) Response { return Response{Body: "x"} }), "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
}

func TestHandle_ErrorsAreEnvelopedEvenWhenRaw(t *testing.T) {
	cases := []struct {
		err    error
		status int
		field  string
	}{
		{perr.Validationf("minGapHours", "minGapHours must be at least 1"), http.StatusBadRequest, "minGapHours"},
		{perr.JSONErrf("empty body"), http.StatusBadRequest, ""},
		{perr.Unschedulablef("recurringBlackoutWeekdays", "no day left"), http.StatusUnprocessableEntity, "recurringBlackoutWeekdays"},
		{perr.TooManyRequestsf("slow down"), http.StatusTooManyRequests, ""},
		{http.ErrBodyNotAllowed, http.StatusInternalServerError, ""},
	}
	for _, tc := range cases {
		err := tc.err
		rr := serve(Handle(func(*http.Request) Response { return Response{Body: err, Raw: true} }), "req-2")
		if rr.Code != tc.status {
			t.Fatalf("%v: status %d, want %d", err, rr.Code, tc.status)
		}
		env := decode(t, rr)
		if env.StatusCode != tc.status || env.Code != perr.CodeOf(err) || env.Field != tc.field || env.RequestID != "req-2" {
			t.Fatalf("%v: envelope %+v", err, env)
		}
		if env.Error == "" {
			t.Fatalf("%v: error message missing", err)
		}
	}
}

func TestRouter_ServesMountedRoutes(t *testing.T) {
	r := AdaptChi(chi.NewRouter())
	var order []string
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			order = append(order, "root")
			next.ServeHTTP(w, req)
		})
	})
	r.Route("/v1", func(v1 Router) {
		v1.Post("/echo", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusAccepted) })
		v1.Get("/ping", Handle(func(*http.Request) Response { return Raw("pong") }))
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/echo", nil))
	if rr.Code != http.StatusAccepted {
		t.Fatalf("POST status %d", rr.Code)
	}
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/ping", nil))
	if rr.Code != http.StatusOK || strings.TrimSpace(rr.Body.String()) != `"pong"` {
		t.Fatalf("GET status %d body %s", rr.Code, rr.Body.String())
	}
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/echo", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("wrong method status %d", rr.Code)
	}
	if len(order) != 3 {
		t.Fatalf("root middleware ran %d times", len(order))
	}
}
