// Package swaggerkit serves the OpenAPI document and the swagger UI
package swaggerkit

import (
	"net/http"

	phttp "rewardsched/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// DocsPath is where the UI lives
const DocsPath = "/docs"

// Mount serves the UI at DocsPath and the document at DocsPath/doc.json when enabled
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get(DocsPath, func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, DocsPath+"/", http.StatusPermanentRedirect)
	})
	r.Get(DocsPath+"/doc.json", serveDocJSON)
	r.Handle(DocsPath+"/*", httpSwagger.Handler(
		httpSwagger.InstanceName("scheduler"),
		httpSwagger.URL(DocsPath+"/doc.json"),
	))
}
