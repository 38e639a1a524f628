// ABOUTME: Handler wiring: builds the immutable dispatch table for a workspace
// ABOUTME: The chat handler is the fail-closed fallback for UNKNOWN and unbound labels

package handlers

import (
	"context"

	"superterm/internal/dispatch"
	"superterm/internal/intent"
)

// Options tunes handler construction.
type Options struct {
	NoColor bool
}

// NewTable builds the full dispatch table over the given workspace.
func NewTable(ws *Workspace, opts Options) (*dispatch.Table, error) {
	exit := dispatch.HandlerFunc(func(_ context.Context, _ intent.Intent) dispatch.Result {
		return dispatch.Result{Text: "Goodbye!", Outcome: dispatch.Success, Quit: true}
	})

	return dispatch.NewTable(&Chatter{},
		dispatch.Binding{Label: intent.LabelRun, Handler: &Runner{WS: ws}},
		dispatch.Binding{Label: intent.LabelList, Handler: &Lister{WS: ws}},
		dispatch.Binding{Label: intent.LabelSearch, Handler: &Searcher{WS: ws}},
		dispatch.Binding{Label: intent.LabelShow, Handler: &Shower{WS: ws, NoColor: opts.NoColor}},
		dispatch.Binding{Label: intent.LabelSummarize, Handler: &Summarizer{WS: ws}},
		dispatch.Binding{Label: intent.LabelOrganize, Handler: &Organizer{WS: ws}},
		dispatch.Binding{Label: intent.LabelCreate, Handler: &Creator{WS: ws}},
		dispatch.Binding{Label: intent.LabelDelete, Handler: &Deleter{WS: ws}},
		dispatch.Binding{Label: intent.LabelRename, Handler: &Renamer{WS: ws}},
		dispatch.Binding{Label: intent.LabelMove, Handler: &Mover{WS: ws}},
		dispatch.Binding{Label: intent.LabelHelp, Handler: &Helper{NoColor: opts.NoColor}},
		dispatch.Binding{Label: intent.LabelChat, Handler: &Chatter{}},
		dispatch.Binding{Label: intent.LabelExit, Handler: exit},
	)
}
