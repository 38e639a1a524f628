// ABOUTME: Session identity and conversation context ownership
// ABOUTME: One session owns one Context; no sharing, no locking needed

package session

import (
	"time"

	"github.com/google/uuid"

	"superterm/internal/intent"
)

// Session is one interactive conversation. It owns its Context exclusively;
// concurrent sessions each get their own and never share state.
type Session struct {
	ID        string
	StartedAt time.Time
	Context   *intent.Context

	turns int
}

// New starts a fresh session.
func New() *Session {
	return &Session{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
		Context:   intent.NewContext(),
	}
}

// Reset clears conversational state without changing the session identity.
func (s *Session) Reset() {
	s.Context.Reset()
}

// BumpTurn records that a turn completed and returns the new turn count.
func (s *Session) BumpTurn() int {
	s.turns++
	return s.turns
}

// Turns returns the number of completed turns.
func (s *Session) Turns() int {
	return s.turns
}
