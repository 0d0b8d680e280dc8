package backend

import "net/http"

// Register mounts every endpoint on mux.
func (api *API) Register(mux *http.ServeMux) {
	handle := func(pattern, name string, h http.HandlerFunc) {
		mux.Handle(pattern, api.metrics.instrument(name, h))
	}

	handle("GET /api/normalize/title", "normalize_title", api.HandleNormalizeTitle)
	handle("GET /api/normalize/venue", "normalize_venue", api.HandleNormalizeVenue)
	handle("GET /api/search", "search", api.HandleSearch)
	handle("GET /api/search/more", "search_more", api.HandleSearchMore)
	handle("POST /api/select", "select", api.HandleSelect)
	handle("GET /api/boxoffice", "boxoffice", api.HandleBoxOffice)
	handle("POST /api/clean", "clean", api.HandleClean)
	handle("GET /api/progress", "progress", api.HandleProgress)
	handle("GET /api/queue", "queue", api.HandleQueue)
	handle("POST /api/cancel", "cancel", api.HandleCancel)

	mux.Handle("GET /metrics", api.metrics.Handler())
}
