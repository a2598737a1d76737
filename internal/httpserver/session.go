package httpserver

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"repairshop-orders/internal/workflow"
)

// Session is one live order-editing flow. All access goes through Lock so the
// single-writer rule of the workflow holds even with concurrent requests for
// the same session id.
type Session struct {
	ID        string
	BranchKey string
	CreatedAt time.Time

	mu sync.Mutex
	wf *workflow.Workflow
}

// Lock runs fn with exclusive access to the session's workflow.
func (s *Session) Lock(fn func(*workflow.Workflow) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.wf)
}

// SessionStore keeps live sessions in memory. Drafts are intentionally not
// persisted; an abandoned session just expires with the process.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

func (st *SessionStore) Add(branchKey string, wf *workflow.Workflow) *Session {
	s := &Session{
		ID:        uuid.NewString(),
		BranchKey: branchKey,
		CreatedAt: time.Now().UTC(),
		wf:        wf,
	}
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

func (st *SessionStore) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

func (st *SessionStore) Remove(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}
