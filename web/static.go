package web

import (
	"net/http"
)

// HandleFront serves a built frontend from dir on "/". An empty dir leaves
// the mux API-only.
func HandleFront(mux *http.ServeMux, dir string) {
	if dir == "" {
		return
	}
	mux.Handle("GET /", http.FileServer(http.Dir(dir)))
}
