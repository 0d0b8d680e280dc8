package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/Another0Noob/stagelog/internal/ticket"
	"github.com/Another0Noob/stagelog/internal/ticketparser"
)

const (
	maxUploadSize = 10 << 20
	jobTimeout    = 5 * time.Minute
)

// CleanJob re-normalizes an uploaded ticket export.
type CleanJob struct {
	Data     []byte
	Filename string
}

// cleanResult is the payload of the final "complete" update.
type cleanResult struct {
	Count    int             `json:"count"`
	Titles   int             `json:"titles"`
	Theaters int             `json:"theaters"`
	Changes  []ticket.Change `json:"changes"`
	Tickets  []ticket.Ticket `json:"tickets"`
}

func (cj CleanJob) Run(api *API, session *JobSession) {
	ctx, cancel := context.WithTimeout(session.Ctx, jobTimeout)
	defer cancel()

	log := api.log.With(zap.String("session_id", session.ID), zap.String("file", cj.Filename))

	fail := func(msg string, err error) {
		if errors.Is(ctx.Err(), context.Canceled) {
			msg = "Operation cancelled by user"
		}
		log.Warn("clean job failed", zap.String("reason", msg), zap.Error(err))
		session.finish(ProgressUpdate{Type: "error", Message: msg})
	}

	session.send(ProgressUpdate{Type: "info", Message: "Reading tickets..."})
	tickets, err := ticketparser.ParseFromBytes(cj.Data, cj.Filename)
	if err != nil {
		fail(fmt.Sprintf("Failed to parse file: %v", err), err)
		return
	}
	session.send(ProgressUpdate{
		Type:    "info",
		Message: fmt.Sprintf("Got %d tickets", len(tickets)),
		Data:    map[string]int{"count": len(tickets)},
	})

	if ctx.Err() != nil {
		fail("Operation cancelled", ctx.Err())
		return
	}

	changes := ticket.Renormalize(tickets)

	res := cleanResult{Count: len(tickets), Changes: changes}
	for _, c := range changes {
		if c.TitleChanged() {
			res.Titles++
		}
		if c.TheaterChanged() {
			res.Theaters++
		}
	}
	session.send(ProgressUpdate{
		Type:    "progress",
		Message: fmt.Sprintf("%d titles and %d theaters to rewrite", res.Titles, res.Theaters),
		Data:    map[string]int{"titles": res.Titles, "theaters": res.Theaters},
	})

	if ctx.Err() != nil {
		fail("Operation cancelled", ctx.Err())
		return
	}

	res.Tickets = ticket.Apply(tickets, changes)
	if res.Changes == nil {
		res.Changes = []ticket.Change{}
	}

	api.metrics.renamed.WithLabelValues("title").Add(float64(res.Titles))
	api.metrics.renamed.WithLabelValues("theater").Add(float64(res.Theaters))
	log.Info("clean job finished",
		zap.Int("tickets", res.Count),
		zap.Int("titles", res.Titles),
		zap.Int("theaters", res.Theaters),
	)

	session.finish(ProgressUpdate{Type: "complete", Message: "Done", Data: res})
}

// HandleClean queues a re-normalization of the uploaded "tickets" file.
func (api *API) HandleClean(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, fmt.Sprintf("Failed to parse form: %v", err), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("tickets")
	if err != nil {
		http.Error(w, "tickets file required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Failed to read tickets file", http.StatusInternalServerError)
		return
	}

	// Sanitize uploaded filename (strip any path components)
	var filename string
	if header != nil && header.Filename != "" {
		filename = filepath.Base(header.Filename)
	}

	session, err := api.enqueue(CleanJob{Data: data, Filename: filename})
	if err != nil {
		http.Error(w, "Server busy, try again later", http.StatusTooManyRequests)
		return
	}

	api.log.Info("clean job queued", zap.String("session_id", session.ID), zap.String("file", filename))
	writeJSON(w, http.StatusAccepted, map[string]string{
		"session_id": session.ID,
		"status":     "queued",
	})
}
