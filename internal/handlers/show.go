// ABOUTME: Show handler: prints a file, rendering markdown nicely
// ABOUTME: Resolves loosely-named targets through the workspace lookup

package handlers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"

	"superterm/internal/dispatch"
	"superterm/internal/intent"
)

// Shower displays file contents.
type Shower struct {
	WS      *Workspace
	NoColor bool
}

// Handle prints the requested file. Markdown goes through glamour unless
// color is disabled.
func (s *Shower) Handle(_ context.Context, in intent.Intent) dispatch.Result {
	name := in.Entity(intent.KindFile)
	if name == "" {
		name = in.Entity(intent.KindTarget)
	}
	if name == "" {
		return dispatch.Result{
			Text:    "Which file would you like to see?",
			Outcome: dispatch.Partial,
		}
	}

	path, ok := s.WS.Resolve(name)
	if !ok {
		return dispatch.Result{
			Text:    fmt.Sprintf("I couldn't find a file matching %q.", name),
			Outcome: dispatch.Failure,
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return dispatch.Result{
			Text:    fmt.Sprintf("Reading %s: %v", filepath.Base(path), err),
			Outcome: dispatch.Failure,
		}
	}

	text := string(data)
	if strings.EqualFold(filepath.Ext(path), ".md") && !s.NoColor {
		if rendered, err := renderMarkdown(text); err == nil {
			text = rendered
		}
	}
	return dispatch.Result{
		Text:    fmt.Sprintf("── %s ──\n%s", filepath.Base(path), strings.TrimRight(text, "\n")),
		Outcome: dispatch.Success,
	}
}

func renderMarkdown(md string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
