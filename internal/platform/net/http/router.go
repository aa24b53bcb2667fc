package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler is the handler shape routes are registered with
type Handler = func(http.ResponseWriter, *http.Request)

// Router is the routing surface modules mount against
// it is an http.Handler so tests and the server can serve it directly
type Router interface {
	http.Handler

	Get(path string, h Handler)
	Post(path string, h Handler)
	Handle(path string, h http.Handler)
	Use(mw ...func(http.Handler) http.Handler)
	Route(prefix string, fn func(Router))
}

// chiRouter adapts the root mux and every subrouter chi hands back
type chiRouter struct{ chi.Router }

// AdaptChi wraps a chi router, usually chi.NewRouter()
func AdaptChi(r chi.Router) Router { return chiRouter{r} }

func (c chiRouter) Get(path string, h Handler)  { c.Router.Method(http.MethodGet, path, http.HandlerFunc(h)) }
func (c chiRouter) Post(path string, h Handler) { c.Router.Method(http.MethodPost, path, http.HandlerFunc(h)) }

func (c chiRouter) Route(prefix string, fn func(Router)) {
	c.Router.Route(prefix, func(sub chi.Router) { fn(chiRouter{sub}) })
}
