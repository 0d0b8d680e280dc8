package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Another0Noob/stagelog/internal/kopisapi"
	"github.com/Another0Noob/stagelog/internal/normalize"
)

// searchPage is the response of /api/search and /api/search/more.
type searchPage struct {
	SessionID string                 `json:"session_id"`
	Page      int                    `json:"page"`
	Results   []kopisapi.Performance `json:"results"`
	HasMore   bool                   `json:"has_more"`
}

type selectRequest struct {
	SessionID string   `json:"session_id" validate:"required,uuid"`
	ID        string   `json:"id" validate:"required,max=32"`
	Existing  []string `json:"existing" validate:"max=10000,dive,max=1000"`
}

var validate = validator.New()

// HandleSearch starts a search session and returns its first page.
func (api *API) HandleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	term := q.Get("q")
	if term == "" {
		http.Error(w, "q required", http.StatusBadRequest)
		return
	}

	genre, err := kopisapi.ParseGenre(q.Get("genre"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	query := kopisapi.SearchQuery{Title: term, Genre: genre}
	if d := q.Get("date"); d != "" {
		start, err := time.Parse(time.DateOnly, d)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		query.Start = start
	}

	session := api.searches.Create(kopisapi.NewSearchPager(api.client, query))
	api.log.Debug("search session created",
		zap.String("session_id", session.ID),
		zap.String("term", term),
		zap.String("genre", string(genre)),
	)

	api.nextPage(w, r, session)
}

// HandleSearchMore returns the next page of an existing search session.
func (api *API) HandleSearchMore(w http.ResponseWriter, r *http.Request) {
	session, ok := api.searches.Get(r.URL.Query().Get("session_id"))
	if !ok {
		http.Error(w, "No active search", http.StatusNotFound)
		return
	}
	api.nextPage(w, r, session)
}

func (api *API) nextPage(w http.ResponseWriter, r *http.Request, session *SearchSession) {
	results, err := session.Pager.Next(r.Context())
	if err != nil {
		api.log.Warn("search failed", zap.String("session_id", session.ID), zap.Error(err))
		http.Error(w, "Search failed", upstreamStatus(err))
		return
	}
	session.add(results)

	if results == nil {
		results = []kopisapi.Performance{}
	}
	writeJSON(w, http.StatusOK, searchPage{
		SessionID: session.ID,
		Page:      session.Pager.Page(),
		Results:   results,
		HasMore:   session.Pager.HasMore(),
	})
}

// HandleSelect resolves a picked search result into a ticket prefill.
func (api *API) HandleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return
	}

	session, ok := api.searches.Get(req.SessionID)
	if !ok {
		http.Error(w, "No active search", http.StatusNotFound)
		return
	}
	picked, ok := session.Find(req.ID)
	if !ok {
		http.Error(w, "Performance not in search results", http.StatusNotFound)
		return
	}

	sel := api.resolver.Resolve(r.Context(), picked, session.Results(), req.Existing)
	writeJSON(w, http.StatusOK, sel)
}

// HandleBoxOffice returns the box office of the last week.
func (api *API) HandleBoxOffice(w http.ResponseWriter, r *http.Request) {
	genre, err := kopisapi.ParseGenre(r.URL.Query().Get("genre"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entries, err := api.client.BoxOffice(r.Context(), genre, time.Time{}, time.Time{})
	if err != nil {
		api.log.Warn("box office failed", zap.Error(err))
		http.Error(w, "Box office unavailable", upstreamStatus(err))
		return
	}
	if entries == nil {
		entries = []kopisapi.BoxOfficeEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// HandleNormalizeTitle normalizes ?raw= against an optional ?reference=.
func (api *API) HandleNormalizeTitle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	writeJSON(w, http.StatusOK, map[string]string{
		"result": normalize.Title(q.Get("raw"), q.Get("reference")),
	})
}

// HandleNormalizeVenue normalizes ?raw=.
func (api *API) HandleNormalizeVenue(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"result": normalize.Venue(r.URL.Query().Get("raw")),
	})
}

// upstreamStatus maps KOPIS client errors to a response status.
func upstreamStatus(err error) int {
	switch {
	case errors.Is(err, kopisapi.ErrMissingServiceKey):
		return http.StatusServiceUnavailable
	case errors.Is(err, kopisapi.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}
