package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Another0Noob/stagelog/internal/kopisapi"
	"github.com/Another0Noob/stagelog/internal/selection"
)

const (
	size = 100

	sessionMaxAge   = 24 * time.Hour
	cleanupInterval = time.Hour
)

var errQueueFull = errors.New("job queue is full")

// Job is a unit of work that can be executed by the worker.
type Job interface {
	// Run executes the job. It receives the API and the session for progress/cancellation.
	Run(api *API, session *JobSession)
}

// queuedJob is an item in the processing queue
type queuedJob struct {
	session *JobSession
	job     Job
}

// API serves the stagelog HTTP endpoints.
type API struct {
	client   *kopisapi.Client
	resolver *selection.Resolver
	metrics  *Metrics
	log      *zap.Logger

	sessions *SessionManager
	searches *SearchStore

	// queue so that only one job runs at a time
	jobQueue chan queuedJob

	// queueOrder tracks session IDs in enqueue order (protected by queueMu)
	queueMu    sync.Mutex
	queueOrder []string

	// queue SSE subscribers
	queueSubs   map[chan struct{}]struct{}
	queueSubsMu sync.Mutex

	done      chan struct{}
	closeOnce sync.Once
}

// NewAPI starts the job worker and the session cleanup loop. A nil metrics
// gets a fresh registry.
func NewAPI(client *kopisapi.Client, log *zap.Logger, metrics *Metrics) *API {
	if log == nil {
		log = zap.NewNop()
	}
	if metrics == nil {
		metrics = NewMetrics()
	}

	api := &API{
		client:     client,
		resolver:   &selection.Resolver{Client: client, Log: log},
		metrics:    metrics,
		log:        log,
		sessions:   NewSessionManager(),
		searches:   NewSearchStore(),
		jobQueue:   make(chan queuedJob, size),
		queueOrder: make([]string, 0, size),
		queueSubs:  make(map[chan struct{}]struct{}),
		done:       make(chan struct{}),
	}

	go api.work()
	go api.cleanup()

	return api
}

// Close stops the worker and the cleanup loop. Queued jobs are dropped.
func (api *API) Close() {
	api.closeOnce.Do(func() { close(api.done) })
}

// work processes jobs sequentially.
func (api *API) work() {
	for {
		select {
		case <-api.done:
			return
		case job := <-api.jobQueue:
			api.dequeue(job.session.ID)

			// The session was cancelled while waiting.
			if job.session.Ctx.Err() != nil {
				job.session.finish(ProgressUpdate{Type: "error", Message: "Operation cancelled"})
				continue
			}

			api.metrics.jobsRunning.Inc()
			job.job.Run(api, job.session)
			api.metrics.jobsRunning.Dec()
		}
	}
}

func (api *API) cleanup() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-api.done:
			return
		case <-ticker.C:
			api.sessions.CleanupStale(sessionMaxAge)
			api.searches.CleanupStale(sessionMaxAge)
			api.log.Debug("stale sessions removed")
		}
	}
}

// enqueue creates a job session and queues job on it.
func (api *API) enqueue(job Job) (*JobSession, error) {
	session := api.sessions.CreateSession()

	api.queueMu.Lock()
	select {
	case api.jobQueue <- queuedJob{session: session, job: job}:
		// Enqueued successfully; track order by session.ID
		api.queueOrder = append(api.queueOrder, session.ID)
		api.broadcastQueueLocked()
		api.queueMu.Unlock()
	default:
		api.queueMu.Unlock()
		api.sessions.RemoveSession(session.ID)
		return nil, errQueueFull
	}

	api.metrics.jobsQueued.Inc()
	return session, nil
}

// HandleProgress streams progress updates via SSE
func (api *API) HandleProgress(w http.ResponseWriter, r *http.Request) {
	session, ok := api.sessions.GetSession(r.URL.Query().Get("session_id"))
	if !ok {
		http.Error(w, "No active session", http.StatusNotFound)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	// Set headers for SSE
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	write := func(update ProgressUpdate) {
		data, _ := json.Marshal(update)
		fmt.Fprintf(w, "data: %s\n\n", data)
		flusher.Flush()
	}

	for {
		select {
		case update := <-session.Progress:
			write(update)
			if update.terminal() {
				return
			}
		case <-session.Done:
			// Drain what the job left behind, then make sure the
			// client sees how it ended.
			for {
				select {
				case update := <-session.Progress:
					write(update)
					if update.terminal() {
						return
					}
				default:
					if final, ok := session.Final(); ok {
						write(final)
					}
					return
				}
			}
		case <-r.Context().Done():
			// client disconnected
			return
		}
	}
}

// HandleCancel allows users to cancel their operation
func (api *API) HandleCancel(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		http.Error(w, "session_id required", http.StatusBadRequest)
		return
	}

	if _, ok := api.sessions.GetSession(sessionID); !ok {
		http.Error(w, "No active session", http.StatusNotFound)
		return
	}

	api.removeQueuedSession(sessionID)
	api.sessions.RemoveSession(sessionID)
	api.log.Info("job cancelled", zap.String("session_id", sessionID))

	writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
