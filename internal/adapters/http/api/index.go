package api

import (
	"net/http"
)

// indexHandler serves the embedded summary page.
type indexHandler struct{}

func newIndexHandler() *indexHandler {
	return &indexHandler{}
}

// HandleIndex handles GET / with an HTML page that polls /summaries.
func (h *indexHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeFailure(w, NewKind("api.index", ErrNotFound))
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		methodNotAllowed(w, "api.index", http.MethodGet, http.MethodHead)
		return
	}
	http.ServeFileFS(w, r, pageFS, "index.html")
}
