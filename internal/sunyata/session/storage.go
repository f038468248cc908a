package session

import (
	"sort"
	"sync"
	"time"
)

// Store keeps sessions in memory for the lifetime of the process.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Get returns the session with the given ID and marks it active.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	sess, ok := st.sessions[id]
	if ok {
		sess.Touch()
	}
	return sess, ok
}

// Create adds a new empty session to the store
func (st *Store) Create() *Session {
	sess := NewSession()
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[sess.ID] = sess
	return sess
}

// GetOrCreate returns the session with the given ID, or a new one when the ID
// is empty or unknown. created reports whether a new session was made.
func (st *Store) GetOrCreate(id string) (sess *Session, created bool) {
	if id != "" {
		if sess, ok := st.Get(id); ok {
			return sess, false
		}
	}
	return st.Create(), true
}

// Delete removes a session from the store
func (st *Store) Delete(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	_, ok := st.sessions[id]
	delete(st.sessions, id)
	return ok
}

// Len returns the number of sessions in the store
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// List returns all sessions sorted by last activity (newest first)
func (st *Store) List() []*Session {
	st.mu.Lock()
	sessions := make([]*Session, 0, len(st.sessions))
	for _, sess := range st.sessions {
		sessions = append(sessions, sess)
	}
	st.mu.Unlock()

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].LastActive().After(sessions[j].LastActive())
	})
	return sessions
}

// Prune deletes sessions that have been idle longer than maxIdle and returns
// how many were removed. A non-positive maxIdle keeps everything.
func (st *Store) Prune(maxIdle time.Duration) int {
	if maxIdle <= 0 {
		return 0
	}
	cutoff := time.Now().Add(-maxIdle)

	st.mu.Lock()
	defer st.mu.Unlock()
	removed := 0
	for id, sess := range st.sessions {
		if sess.LastActive().Before(cutoff) {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}
