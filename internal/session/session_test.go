// ABOUTME: Tests for session identity, turn accounting, and context reset

package session

import (
	"testing"

	"superterm/internal/intent"
)

func TestNewSessionsAreDistinct(t *testing.T) {
	t.Parallel()

	a, b := New(), New()
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("session IDs must be unique and non-empty: %q vs %q", a.ID, b.ID)
	}
	if a.Context == nil || a.Context == b.Context {
		t.Error("each session must own its context")
	}
	if a.StartedAt.IsZero() {
		t.Error("session start time not set")
	}
}

func TestBumpTurn(t *testing.T) {
	t.Parallel()

	s := New()
	if got := s.Turns(); got != 0 {
		t.Errorf("fresh session turns = %d, want 0", got)
	}
	if got := s.BumpTurn(); got != 1 {
		t.Errorf("BumpTurn = %d, want 1", got)
	}
	s.BumpTurn()
	if got := s.Turns(); got != 2 {
		t.Errorf("turns = %d, want 2", got)
	}
}

func TestResetClearsContextOnly(t *testing.T) {
	t.Parallel()

	s := New()
	id := s.ID
	s.Context.LastIntent = &intent.Intent{Label: intent.LabelRun}
	s.Context.Pending = &intent.Pending{Turns: 1}
	s.BumpTurn()

	s.Reset()

	if s.Context.LastIntent != nil || s.Context.Pending != nil {
		t.Error("reset must clear conversational state")
	}
	if s.ID != id {
		t.Error("reset must keep the session identity")
	}
	if s.Turns() != 1 {
		t.Error("reset must not clear turn accounting")
	}
}
