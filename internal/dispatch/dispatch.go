// ABOUTME: Immutable intent-to-handler dispatch table with fail-closed fallback
// ABOUTME: Built once at startup; unregistered labels route to the Unknown handler, never error

package dispatch

import (
	"context"
	"fmt"

	"superterm/internal/intent"
	"superterm/internal/log"
)

// Outcome reports how a handler invocation went.
type Outcome int

const (
	Success Outcome = iota
	Failure
	Partial
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Failure:
		return "failure"
	case Partial:
		return "partial"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Result is a handler's response for one turn.
type Result struct {
	Text    string  // user-facing response text
	Outcome Outcome // conversational feedback signal
	Payload any     // optional structured payload for the surface to render
	Quit    bool    // the session should end after this turn
}

// Handler processes one resolved intent. Handlers are opaque to the core;
// failures are reported through the Result, not by panicking.
type Handler interface {
	Handle(ctx context.Context, in intent.Intent) Result
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, in intent.Intent) Result

// Handle calls f.
func (f HandlerFunc) Handle(ctx context.Context, in intent.Intent) Result {
	return f(ctx, in)
}

// Binding pairs a label with its handler.
type Binding struct {
	Label   intent.Label
	Handler Handler
}

// Table maps intent labels to handlers. Immutable after NewTable.
type Table struct {
	handlers map[intent.Label]Handler
	fallback Handler
}

// NewTable builds the table from bindings. The fallback handles
// intent.LabelUnknown and any label without a binding.
func NewTable(fallback Handler, bindings ...Binding) (*Table, error) {
	if fallback == nil {
		return nil, fmt.Errorf("dispatch table requires a fallback handler")
	}
	handlers := make(map[intent.Label]Handler, len(bindings))
	for _, b := range bindings {
		if b.Handler == nil {
			return nil, fmt.Errorf("nil handler for label %s", b.Label)
		}
		if _, dup := handlers[b.Label]; dup {
			return nil, fmt.Errorf("duplicate handler for label %s", b.Label)
		}
		handlers[b.Label] = b.Handler
	}
	return &Table{handlers: handlers, fallback: fallback}, nil
}

// Dispatch routes the intent to its handler. Lookup fails closed: a label
// without a binding goes to the fallback and is logged as a configuration
// gap. A handler panic is contained and reported as a failed outcome.
func (t *Table) Dispatch(ctx context.Context, in intent.Intent) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("handler panic for %s: %v", in.Label, r)
			result = Result{
				Text:    "Something went wrong handling that. The session is still healthy.",
				Outcome: Failure,
			}
		}
	}()

	h, ok := t.handlers[in.Label]
	if !ok {
		if in.Label != intent.LabelUnknown {
			log.Warn("no handler registered for %s, using fallback", in.Label)
		}
		h = t.fallback
	}
	return h.Handle(ctx, in)
}

// Registered reports whether a label has its own binding.
func (t *Table) Registered(label intent.Label) bool {
	_, ok := t.handlers[label]
	return ok
}
