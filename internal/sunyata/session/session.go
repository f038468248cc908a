package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/longkey1/sunyata/internal/sunyata"
)

// Interaction is one completed submission. It is never modified after it
// has been appended to a session.
type Interaction struct {
	ID        string           `json:"id"`
	Input     string           `json:"input"`    // Raw query as typed by the user
	Response  string           `json:"response"` // Full streamed response, including an error fragment
	Language  sunyata.Language `json:"language"`
	TaskType  sunyata.TaskType `json:"task_type"`
	Action    sunyata.Action   `json:"action"`
	CreatedAt time.Time        `json:"created_at"`
}

// NewInteraction creates an Interaction with a fresh ID
func NewInteraction(input, response string) Interaction {
	return Interaction{
		ID:        uuid.New().String(),
		Input:     input,
		Response:  response,
		CreatedAt: time.Now(),
	}
}

// Entry is an Interaction together with its 1-based submission number.
type Entry struct {
	Number int `json:"number"`
	Interaction
}

// Session is the state of one interactive session. The history only grows,
// in submission order.
type Session struct {
	ID        string    `json:"id"` // UUID v4
	CreatedAt time.Time `json:"created_at"`

	mu         sync.RWMutex
	lastActive time.Time
	history    []Interaction
}

// NewSession creates a new session with an empty history
func NewSession() *Session {
	now := time.Now()
	return &Session{
		ID:         uuid.New().String(),
		CreatedAt:  now,
		lastActive: now,
		history:    []Interaction{},
	}
}

// Append adds an interaction to the end of the history and returns its
// submission number.
func (s *Session) Append(i Interaction) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, i)
	s.lastActive = time.Now()
	return len(s.history)
}

// Len returns the number of interactions in the session
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.history)
}

// History returns a copy of every interaction, oldest first.
func (s *Session) History() []Interaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Interaction, len(s.history))
	copy(out, s.history)
	return out
}

// Recent returns the last min(Len, n) interactions, most recent first.
// The order comes from reversing the tail of the history.
func (s *Session) Recent(n int) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := len(s.history)
	if n > total {
		n = total
	}
	if n <= 0 {
		return []Entry{}
	}

	out := make([]Entry, 0, n)
	for i := total - 1; i >= total-n; i-- {
		out = append(out, Entry{Number: i + 1, Interaction: s.history[i]})
	}
	return out
}

// Touch marks the session as used now.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()
}

// LastActive returns the time of the last append or touch.
func (s *Session) LastActive() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastActive
}

// GetShortID returns the shortened session ID (first 8 characters)
func (s *Session) GetShortID() string {
	if len(s.ID) >= 8 {
		return s.ID[:8]
	}
	return s.ID
}
