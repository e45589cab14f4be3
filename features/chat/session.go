package chat

import (
	"sync"

	"github.com/google/uuid"

	"floorassist/internal/prompt"
)

// Turn is one entry in a session's conversation: a user question or an
// assistant reply, the latter optionally carrying source citations.
type Turn struct {
	Role    string     `json:"role"`
	Content string     `json:"content"`
	Sources []Citation `json:"sources,omitempty"`
}

// Session holds one conversation's append-only turn sequence. A session is
// only ever touched by the handler for its own turns, so the turns themselves
// need no locking.
type Session struct {
	ID    string
	turns []Turn
}

func (s *Session) Append(t Turn) {
	s.turns = append(s.turns, t)
}

func (s *Session) Turns() []Turn {
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// History renders the prior turns as role-tagged messages for prompt
// assembly; citations are display-only and not forwarded.
func (s *Session) History() []prompt.Message {
	msgs := make([]prompt.Message, 0, len(s.turns))
	for _, t := range s.turns {
		msgs = append(msgs, prompt.Message{Role: t.Role, Content: t.Content})
	}
	return msgs
}

func (s *Session) Clear() {
	s.turns = nil
}

// Sessions is the in-process registry of live conversations. The mutex
// guards the map, not the per-session state.
type Sessions struct {
	mu   sync.Mutex
	byID map[string]*Session
}

func NewSessions() *Sessions {
	return &Sessions{byID: make(map[string]*Session)}
}

// Get returns the session for id, creating it if unknown. An empty id mints
// a fresh session.
func (s *Sessions) Get(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" {
		id = uuid.New().String()
	}
	sess, ok := s.byID[id]
	if !ok {
		sess = &Session{ID: id}
		s.byID[id] = sess
	}
	return sess
}
