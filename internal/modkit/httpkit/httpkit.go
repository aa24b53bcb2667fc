// Package httpkit is the routing surface modules register handlers through
// handlers return (value, error) and never touch the response writer
package httpkit

import (
	"net/http"
	"strings"

	phttp "rewardsched/internal/platform/net/http"
	"rewardsched/internal/platform/net/http/bind"
)

type (
	// Router is the platform router
	Router = phttp.Router

	// JSONOptions tunes body decoding for PostRaw
	JSONOptions = bind.JSONOptions
)

// Get mounts a no-body handler whose result is enveloped
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, reply(h, phttp.OK))
}

// GetRaw mounts a no-body handler whose result is written bare
func GetRaw(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, reply(h, phttp.Raw))
}

// PostRaw decodes and validates a T body, then writes the handler's result bare
// errors keep the envelope either way
func PostRaw[T any](r Router, path string, h func(*http.Request, T) (any, error), opts ...JSONOptions) {
	r.Post(path, reply(func(req *http.Request) (any, error) {
		in, err := bind.ParseJSON[T](req, opts...)
		if err != nil {
			return nil, err
		}
		return h(req, in)
	}, phttp.Raw))
}

func reply(h func(*http.Request) (any, error), ok func(any) phttp.Response) phttp.Handler {
	return phttp.Handle(func(r *http.Request) phttp.Response {
		out, err := h(r)
		if err != nil {
			return phttp.Error(err)
		}
		return ok(out)
	})
}

// MountAPI scopes mount under /{version} with mw applied to that scope only
func MountAPI(r Router, version string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route("/"+strings.Trim(version, "/"), func(api Router) {
		if len(mw) > 0 {
			api.Use(mw...)
		}
		mount(api)
	})
}
