// Package swaggerkit serves the API docs: the UI under /api/docs/ and the patched spec at /api/docs/doc.json
package swaggerkit

import (
	"net/http"

	phttp "reviewharvest/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

const docsPath = "/api/docs"

// Mount registers the docs routes on r when enabled
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get(docsPath, func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, docsPath+"/", http.StatusPermanentRedirect)
	})
	r.Get(docsPath+"/doc.json", serveDocJSON())
	r.Handle(docsPath+"/*", httpSwagger.Handler(
		httpSwagger.InstanceName("api"),
		httpSwagger.URL(docsPath+"/doc.json"),
		// crawl payloads are large, keep operations collapsed
		httpSwagger.DocExpansion("none"),
		httpSwagger.DeepLinking(true),
	))
}
