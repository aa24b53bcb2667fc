package httpkit

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	perr "rewardsched/internal/platform/errors"
	phttp "rewardsched/internal/platform/net/http"
)

type greet struct {
	Name string `json:"name" validate:"required"`
}

func newRouter() Router { return phttp.AdaptChi(chi.NewRouter()) }

func do(r Router, method, path, body string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rr
}

func TestGet_EnvelopesResult(t *testing.T) {
	r := newRouter()
	Get(r, "/version", func(*http.Request) (any, error) { return map[string]string{"version": "1.0.0"}, nil })

	rr := do(r, http.MethodGet, "/version", "")
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"data":{"version":"1.0.0"}`) {
		t.Fatalf("status %d body %s", rr.Code, rr.Body.String())
	}
}

func TestGetRaw_BareResultEnvelopedError(t *testing.T) {
	r := newRouter()
	GetRaw(r, "/ok", func(*http.Request) (any, error) { return map[string]bool{"ok": true}, nil })
	GetRaw(r, "/fail", func(*http.Request) (any, error) { return nil, errors.New("disk on fire") })

	if rr := do(r, http.MethodGet, "/ok", ""); strings.TrimSpace(rr.Body.String()) != `{"ok":true}` {
		t.Fatalf("body %s", rr.Body.String())
	}
	rr := do(r, http.MethodGet, "/fail", "")
	if rr.Code != http.StatusInternalServerError || !strings.Contains(rr.Body.String(), `"status_code":500`) {
		t.Fatalf("status %d body %s", rr.Code, rr.Body.String())
	}
}

func TestPostRaw_BindsValidatesAndReplies(t *testing.T) {
	r := newRouter()
	PostRaw(r, "/greet", func(_ *http.Request, in greet) (any, error) {
		if in.Name == "nobody" {
			return nil, perr.Unschedulablef("name", "cannot greet %s", in.Name)
		}
		return map[string]string{"hello": in.Name}, nil
	}, JSONOptions{AllowUnknown: true})

	cases := []struct {
		body   string
		status int
		want   string
	}{
		{`{"name":"ada","extra":1}`, http.StatusOK, `{"hello":"ada"}`},
		{`{}`, http.StatusBadRequest, `"field":"name"`},
		{`{"name":`, http.StatusBadRequest, `"code":3`},
		{`{"name":"nobody"}`, http.StatusUnprocessableEntity, `"code":4`},
	}
	for _, tc := range cases {
		rr := do(r, http.MethodPost, "/greet", tc.body)
		if rr.Code != tc.status || !strings.Contains(rr.Body.String(), tc.want) {
			t.Fatalf("%s: status %d body %s", tc.body, rr.Code, rr.Body.String())
		}
	}
}

func TestMountAPI_ScopesMiddleware(t *testing.T) {
	r := newRouter()
	tagged := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("X-Scope", "v1")
			next.ServeHTTP(w, req)
		})
	}
	MountAPI(r, "/v1/", []func(http.Handler) http.Handler{tagged}, func(api Router) {
		GetRaw(api, "/ping", func(*http.Request) (any, error) { return "pong", nil })
	})
	GetRaw(r, "/healthz", func(*http.Request) (any, error) { return "ok", nil })

	if rr := do(r, http.MethodGet, "/v1/ping", ""); rr.Code != http.StatusOK || rr.Header().Get("X-Scope") != "v1" {
		t.Fatalf("status %d headers %v", rr.Code, rr.Header())
	}
	if rr := do(r, http.MethodGet, "/healthz", ""); rr.Header().Get("X-Scope") != "" {
		t.Fatalf("scope middleware leaked to the root")
	}
}
