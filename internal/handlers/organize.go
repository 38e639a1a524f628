// ABOUTME: Organize handler: moves stray top-level files into category directories
// ABOUTME: Files with no category stay where they are; collisions are skipped, not overwritten

package handlers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"superterm/internal/dispatch"
	"superterm/internal/intent"
	"superterm/internal/log"
)

// Organizer files stray workspace files by extension.
type Organizer struct {
	WS *Workspace
}

// Handle moves top-level files into their category directories and reports
// what moved.
func (o *Organizer) Handle(_ context.Context, in intent.Intent) dispatch.Result {
	entries, err := os.ReadDir(o.WS.Root)
	if err != nil {
		return dispatch.Result{
			Text:    fmt.Sprintf("Reading workspace: %v", err),
			Outcome: dispatch.Failure,
		}
	}

	moved := 0
	skipped := 0
	var lines []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		dir, ok := categoryDirs[strings.ToLower(filepath.Ext(e.Name()))]
		if !ok {
			continue
		}
		src := filepath.Join(o.WS.Root, e.Name())
		dst := filepath.Join(o.WS.Root, dir, e.Name())
		if _, err := os.Stat(dst); err == nil {
			skipped++
			log.Warn("organize: %s already exists, skipping", dst)
			continue
		}
		if err := os.Rename(src, dst); err != nil {
			skipped++
			log.Warn("organize: moving %s: %v", e.Name(), err)
			continue
		}
		moved++
		lines = append(lines, fmt.Sprintf("  %s -> %s/", e.Name(), dir))
	}

	if moved == 0 && skipped == 0 {
		return dispatch.Result{Text: "Everything is already organized.", Outcome: dispatch.Success}
	}

	text := fmt.Sprintf("Moved %d file(s).", moved)
	if len(lines) > 0 {
		text += "\n" + strings.Join(lines, "\n")
	}
	outcome := dispatch.Success
	if skipped > 0 {
		text += fmt.Sprintf("\nSkipped %d file(s), see warnings.", skipped)
		outcome = dispatch.Partial
	}
	return dispatch.Result{Text: text, Outcome: outcome}
}
