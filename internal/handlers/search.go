// ABOUTME: Search handler: fuzzy filename matching plus content scanning
// ABOUTME: Text-ish files only for content; binary files are skipped by extension

package handlers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sahilm/fuzzy"

	"superterm/internal/dispatch"
	"superterm/internal/intent"
)

var textExts = map[string]bool{
	".py": true, ".sh": true, ".bash": true, ".md": true, ".txt": true,
	".go": true, ".json": true, ".yaml": true, ".yml": true, ".cfg": true,
	".toml": true, ".log": true, ".csv": true,
}

// Searcher finds files by name or content.
type Searcher struct {
	WS *Workspace
}

// Handle searches filenames fuzzily and file contents literally for the
// requested term.
func (s *Searcher) Handle(_ context.Context, in intent.Intent) dispatch.Result {
	query := in.Entity(intent.KindTarget)
	if query == "" {
		query = in.Entity(intent.KindFile)
	}
	if query == "" {
		return dispatch.Result{
			Text:    "What would you like to search for?",
			Outcome: dispatch.Partial,
		}
	}

	files := s.WS.Files()
	type hit struct {
		path string
		how  string
	}
	var hits []hit
	seen := map[string]bool{}

	bases := make([]string, len(files))
	for i, f := range files {
		bases[i] = filepath.Base(f)
	}
	for _, m := range fuzzy.Find(query, bases) {
		hits = append(hits, hit{files[m.Index], "filename"})
		seen[files[m.Index]] = true
	}

	needle := strings.ToLower(query)
	for _, f := range files {
		if seen[f] || !textExts[strings.ToLower(filepath.Ext(f))] {
			continue
		}
		data, err := os.ReadFile(f)
		if err != nil {
			continue
		}
		if strings.Contains(strings.ToLower(string(data)), needle) {
			hits = append(hits, hit{f, "content"})
		}
	}

	if len(hits) == 0 {
		return dispatch.Result{
			Text:    fmt.Sprintf("No results for %q.", query),
			Outcome: dispatch.Success,
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Results for %q:\n", query)
	for i, h := range hits {
		rel, err := filepath.Rel(s.WS.Root, h.path)
		if err != nil {
			rel = h.path
		}
		fmt.Fprintf(&b, "%3d: %s (%s match)\n", i+1, rel, h.how)
	}
	return dispatch.Result{
		Text:    strings.TrimRight(b.String(), "\n"),
		Outcome: dispatch.Success,
	}
}
