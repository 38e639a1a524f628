// ABOUTME: Per-session conversation context: last intent and pending clarification
// ABOUTME: Mutated only by the resolver; owned by one session, never shared

package intent

import "time"

// Pending records an unresolved clarification sub-dialogue.
type Pending struct {
	Candidates []Intent // scored candidates, best first
	Turns      int      // consecutive clarification turns for this set
}

// Context is short-lived per-session conversation state.
type Context struct {
	SessionStart time.Time
	LastIntent   *Intent
	Pending      *Pending
}

// NewContext returns a fresh context for a new session.
func NewContext() *Context {
	return &Context{SessionStart: time.Now()}
}

// Reset clears all conversational state, keeping the session start time.
func (c *Context) Reset() {
	c.LastIntent = nil
	c.Pending = nil
}

// Labels returns the pending candidate labels, best first.
func (p *Pending) Labels() []Label {
	labels := make([]Label, 0, len(p.Candidates))
	for _, c := range p.Candidates {
		labels = append(labels, c.Label)
	}
	return labels
}
