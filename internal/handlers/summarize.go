// ABOUTME: Summarize handler: extractive summary of a target file
// ABOUTME: Headings plus leading sentences; "latest" scope picks the newest match

package handlers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"superterm/internal/dispatch"
	"superterm/internal/intent"
)

const (
	maxSummaryHeadings  = 6
	maxSummarySentences = 3
)

// Summarizer produces short extractive file summaries.
type Summarizer struct {
	WS *Workspace
}

// Handle resolves the target (newest match first under a "latest"/"newest"
// scope) and emits an extractive summary.
func (s *Summarizer) Handle(_ context.Context, in intent.Intent) dispatch.Result {
	name := in.Entity(intent.KindFile)
	if name == "" {
		name = in.Entity(intent.KindTarget)
	}
	if name == "" {
		return dispatch.Result{
			Text:    "Which file should I summarize?",
			Outcome: dispatch.Partial,
		}
	}

	path, ok := s.resolve(name, in.Entity(intent.KindScope))
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

	summary := summarize(string(data))
	if summary == "" {
		return dispatch.Result{
			Text:    fmt.Sprintf("%s appears to be empty.", filepath.Base(path)),
			Outcome: dispatch.Partial,
		}
	}
	return dispatch.Result{
		Text:    fmt.Sprintf("Summary of %s:\n%s", filepath.Base(path), summary),
		Outcome: dispatch.Success,
	}
}

// resolve prefers the most recently modified file whose basename contains the
// target (case-insensitive) when the scope asks for the latest one.
func (s *Summarizer) resolve(name, scope string) (string, bool) {
	switch scope {
	case "latest", "newest", "recent", "last":
		var matches []string
		needle := strings.ToLower(name)
		for _, f := range s.WS.Files() {
			if strings.Contains(strings.ToLower(filepath.Base(f)), needle) {
				matches = append(matches, f)
			}
		}
		if len(matches) > 0 {
			sortByModTime(matches)
			return matches[0], true
		}
	}
	return s.WS.Resolve(name)
}

// summarize keeps markdown headings and the first few sentences of body text.
func summarize(text string) string {
	var headings []string
	var body strings.Builder
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			if len(headings) < maxSummaryHeadings {
				headings = append(headings, trimmed)
			}
			continue
		}
		if strings.HasPrefix(trimmed, "```") {
			continue
		}
		body.WriteString(trimmed)
		body.WriteString(" ")
	}

	sentences := splitSentences(body.String())
	if len(sentences) > maxSummarySentences {
		sentences = sentences[:maxSummarySentences]
	}

	var b strings.Builder
	for _, h := range headings {
		b.WriteString("  ")
		b.WriteString(h)
		b.WriteString("\n")
	}
	if len(sentences) > 0 {
		b.WriteString("  ")
		b.WriteString(strings.Join(sentences, " "))
	}
	return strings.TrimRight(b.String(), "\n ")
}

func splitSentences(text string) []string {
	var out []string
	start := 0
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			s := strings.TrimSpace(text[start : i+1])
			if len(s) > 1 {
				out = append(out, s)
			}
			start = i + 1
		}
	}
	if tail := strings.TrimSpace(text[start:]); tail != "" && len(out) == 0 {
		out = append(out, tail)
	}
	return out
}
