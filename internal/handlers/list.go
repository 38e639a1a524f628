// ABOUTME: List handler: directory listings filtered by scope and file type
// ABOUTME: "latest" scope orders by modification time instead of name

package handlers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"superterm/internal/dispatch"
	"superterm/internal/intent"
)

// Lister lists workspace files.
type Lister struct {
	WS *Workspace
}

// Handle lists files in the requested directory, or across the workspace
// when none was named.
func (l *Lister) Handle(_ context.Context, in intent.Intent) dispatch.Result {
	exts := extsForType(in.Entity(intent.KindFileType))
	scope := in.Entity(intent.KindScope)

	var files []string
	heading := "Workspace files"
	if dir := in.Entity(intent.KindDirectory); dir != "" {
		full := filepath.Join(l.WS.Root, dir)
		entries, err := os.ReadDir(full)
		if err != nil {
			return dispatch.Result{
				Text:    fmt.Sprintf("Directory %q not found.", dir),
				Outcome: dispatch.Failure,
			}
		}
		for _, e := range entries {
			if !e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
				files = append(files, filepath.Join(full, e.Name()))
			}
		}
		heading = "Files in " + dir
	} else {
		files = l.WS.Files()
	}

	var kept []string
	for _, f := range files {
		if hasAnyExt(f, exts) {
			kept = append(kept, f)
		}
	}

	if len(kept) == 0 {
		return dispatch.Result{Text: "No matching files found.", Outcome: dispatch.Success}
	}

	switch scope {
	case "latest", "newest", "recent":
		sortByModTime(kept)
	default:
		sort.Strings(kept)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s:\n", heading)
	for i, f := range kept {
		rel, err := filepath.Rel(l.WS.Root, f)
		if err != nil {
			rel = f
		}
		fmt.Fprintf(&b, "%3d: %s\n", i+1, rel)
	}
	return dispatch.Result{
		Text:    strings.TrimRight(b.String(), "\n"),
		Outcome: dispatch.Success,
		Payload: kept,
	}
}

// sortByModTime orders newest first; ties and stat failures fall back to name.
func sortByModTime(files []string) {
	sort.SliceStable(files, func(i, j int) bool {
		si, ei := os.Stat(files[i])
		sj, ej := os.Stat(files[j])
		if ei != nil || ej != nil {
			return files[i] < files[j]
		}
		if !si.ModTime().Equal(sj.ModTime()) {
			return si.ModTime().After(sj.ModTime())
		}
		return files[i] < files[j]
	})
}
