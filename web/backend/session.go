package backend

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Another0Noob/stagelog/internal/kopisapi"
)

// ProgressUpdate represents a status update during processing
type ProgressUpdate struct {
	Type    string `json:"type"` // "info", "progress", "error", "complete"
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (u ProgressUpdate) terminal() bool {
	return u.Type == "complete" || u.Type == "error"
}

// JobSession tracks one queued or running job.
type JobSession struct {
	ID        string
	Progress  chan ProgressUpdate
	Ctx       context.Context
	CancelFn  context.CancelFunc
	CreatedAt time.Time

	// Done is closed once the job has finished, failed or been skipped.
	Done chan struct{}

	mu        sync.Mutex
	final     ProgressUpdate
	closeOnce sync.Once
}

// send delivers u without blocking; updates are dropped when nobody reads.
func (s *JobSession) send(u ProgressUpdate) {
	if u.terminal() {
		s.mu.Lock()
		s.final = u
		s.mu.Unlock()
	}
	select {
	case s.Progress <- u:
	default:
	}
}

// finish records the terminal update and closes Done.
func (s *JobSession) finish(u ProgressUpdate) {
	s.send(u)
	s.closeOnce.Do(func() { close(s.Done) })
}

// Final returns the terminal update, if the job has produced one.
func (s *JobSession) Final() (ProgressUpdate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.final, s.final.Type != ""
}

// SessionManager handles concurrent job sessions
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*JobSession
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*JobSession),
	}
}

func (sm *SessionManager) CreateSession() *JobSession {
	ctx, cancel := context.WithCancel(context.Background())
	session := &JobSession{
		ID:        uuid.New().String(),
		Progress:  make(chan ProgressUpdate, 100),
		Ctx:       ctx,
		CancelFn:  cancel,
		CreatedAt: time.Now(),
		Done:      make(chan struct{}),
	}

	sm.mu.Lock()
	sm.sessions[session.ID] = session
	sm.mu.Unlock()
	return session
}

func (sm *SessionManager) GetSession(id string) (*JobSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	session, ok := sm.sessions[id]
	return session, ok
}

// RemoveSession cancels the session's job and forgets it.
func (sm *SessionManager) RemoveSession(id string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if session, ok := sm.sessions[id]; ok {
		session.CancelFn()
		delete(sm.sessions, id)
	}
}

// CleanupStale removes sessions older than maxAge
func (sm *SessionManager) CleanupStale(maxAge time.Duration) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	now := time.Now()
	for id, session := range sm.sessions {
		if now.Sub(session.CreatedAt) > maxAge {
			session.CancelFn()
			delete(sm.sessions, id)
		}
	}
}

// SearchSession keeps the paging state of one performance search, so that
// "load more" requests continue where the last page ended.
type SearchSession struct {
	ID        string
	Pager     *kopisapi.SearchPager
	CreatedAt time.Time

	mu      sync.Mutex
	results []kopisapi.Performance
}

func (s *SearchSession) add(results []kopisapi.Performance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, results...)
}

// Results returns every performance fetched so far.
func (s *SearchSession) Results() []kopisapi.Performance {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]kopisapi.Performance, len(s.results))
	copy(out, s.results)
	return out
}

// Find returns the fetched performance with the given ID.
func (s *SearchSession) Find(id string) (kopisapi.Performance, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.results {
		if p.ID == id {
			return p, true
		}
	}
	return kopisapi.Performance{}, false
}

// SearchStore holds the live search sessions.
type SearchStore struct {
	mu       sync.RWMutex
	sessions map[string]*SearchSession
}

func NewSearchStore() *SearchStore {
	return &SearchStore{
		sessions: make(map[string]*SearchSession),
	}
}

func (st *SearchStore) Create(pager *kopisapi.SearchPager) *SearchSession {
	s := &SearchSession{
		ID:        uuid.New().String(),
		Pager:     pager,
		CreatedAt: time.Now(),
	}
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

func (st *SearchStore) Get(id string) (*SearchSession, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

// CleanupStale removes searches older than maxAge
func (st *SearchStore) CleanupStale(maxAge time.Duration) {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := time.Now()
	for id, s := range st.sessions {
		if now.Sub(s.CreatedAt) > maxAge {
			delete(st.sessions, id)
		}
	}
}
