package assist

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in a conversation. Turns are immutable once appended.
type Turn struct {
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is an ordered, append-only turn history. All methods are safe for
// concurrent use; a mutex serializes appends so interleaved chat calls can
// never produce a partially written turn.
//
// Turns usually alternate user/assistant, but the store does not enforce
// strict alternation: a failed assistant reply legitimately leaves two
// consecutive user turns.
type Session struct {
	mu    sync.Mutex
	turns []Turn
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{}
}

// AppendUser appends a user turn.
func (s *Session) AppendUser(text string) {
	s.append(RoleUser, text)
}

// AppendAssistant appends an assistant turn.
func (s *Session) AppendAssistant(text string) {
	s.append(RoleAssistant, text)
}

func (s *Session) append(role Role, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, Turn{Role: role, Text: text, Timestamp: time.Now().UTC()})
}

// History returns a snapshot copy of the turn sequence. Callers iterating
// the result are unaffected by concurrent appends.
func (s *Session) History() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Len returns the current number of turns.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.turns)
}

// Clear resets the session to empty and returns how many turns were removed.
func (s *Session) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.turns)
	s.turns = nil
	return n
}

// SessionStore keys sessions by caller-supplied identifier so concurrent
// tenants do not share conversational state.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionStore returns an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

// Get returns the session for id, creating it lazily.
func (st *SessionStore) Get(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		s = NewSession()
		st.sessions[id] = s
	}
	return s
}

// New allocates a session under a fresh identifier and returns both.
func (st *SessionStore) New() (*Session, string) {
	id := uuid.NewString()
	return st.Get(id), id
}

// Delete removes the session for id, if any.
func (st *SessionStore) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}
