// ABOUTME: Conversational fallback handler for chat and unrecognized input
// ABOUTME: Local-only canned responses; doubles as the UNKNOWN route

package handlers

import (
	"context"
	"strings"

	"superterm/internal/dispatch"
	"superterm/internal/intent"
)

// Chatter handles small talk and everything nothing else claimed.
type Chatter struct{}

// Handle replies conversationally. Unrecognized input gets a gentle nudge
// toward help instead of an error.
func (c *Chatter) Handle(_ context.Context, in intent.Intent) dispatch.Result {
	if in.Label == intent.LabelUnknown {
		return dispatch.Result{
			Text:    "I didn't understand that. Try something like \"list python scripts\" or say \"help\".",
			Outcome: dispatch.Partial,
		}
	}

	lower := strings.ToLower(in.Utterance)
	switch {
	case strings.Contains(lower, "thank"):
		return dispatch.Result{Text: "Anytime.", Outcome: dispatch.Success}
	case strings.Contains(lower, "hello"), strings.Contains(lower, "hi"), strings.Contains(lower, "hey"):
		return dispatch.Result{
			Text:    "Hello! I can run, list, search, show, summarize and organize your scripts. What do you need?",
			Outcome: dispatch.Success,
		}
	case strings.HasSuffix(strings.TrimSpace(lower), "?"):
		return dispatch.Result{
			Text:    "Good question! I'm a local script assistant, so I can't answer general questions. Say \"help\" to see what I can do.",
			Outcome: dispatch.Success,
		}
	}
	return dispatch.Result{
		Text:    "I'm listening. Say \"help\" if you want to see what I can do.",
		Outcome: dispatch.Success,
	}
}
