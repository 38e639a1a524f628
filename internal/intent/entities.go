// ABOUTME: Entity extraction: NER spans, token-text tests, positional heuristics
// ABOUTME: Absence never errors; a missing kind just lowers downstream confidence

package intent

import (
	"regexp"
	"sort"
	"strings"

	"superterm/internal/annotate"
)

// DefaultWindow bounds how far a scope keyword reaches when attaching a
// file-type token.
const DefaultWindow = 5

// ExtractorConfig tunes the positional heuristics.
type ExtractorConfig struct {
	Window int // token-distance window for scope attachment; DefaultWindow when zero
}

// nerKinds is the fixed named-entity-label to kind table.
var nerKinds = map[string]Kind{
	"PERSON":  KindPerson,
	"GPE":     KindTarget,
	"LOC":     KindTarget,
	"ORG":     KindTarget,
	"PRODUCT": KindTarget,
	"DATE":    KindDate,
	"TIME":    KindDate,
}

// fileTypeVocab normalizes file-type words to canonical names.
var fileTypeVocab = map[string]string{
	"python": "python", "py": "python",
	"shell": "shell", "bash": "shell", "sh": "shell",
	"markdown": "markdown", "md": "markdown",
	"text": "text", "txt": "text",
	"go": "go", "golang": "go",
	"json": "json", "yaml": "yaml",
}

var scopeKeywords = map[string]bool{
	"all": true, "every": true, "each": true,
	"latest": true, "newest": true, "oldest": true,
	"recent": true, "first": true, "last": true,
}

var (
	fileNameRe = regexp.MustCompile(`^[\w.\-]+\.(py|sh|md|txt|go|js|json|ya?ml|csv|log|cfg|toml)$`)
	dateRe     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

var determiners = map[string]bool{
	"the": true, "a": true, "an": true, "my": true, "your": true,
	"this": true, "that": true, "these": true, "those": true,
	"me": true, "some": true, "please": true,
}

var prepositions = map[string]bool{
	"in": true, "on": true, "at": true, "into": true, "inside": true,
	"under": true, "within": true, "from": true, "to": true,
	"with": true, "about": true, "for": true, "of": true, "and": true,
}

// genericNouns never become a target on their own; they name what is being
// asked about, not which one.
var genericNouns = map[string]bool{
	"file": true, "files": true, "script": true, "scripts": true,
	"directory": true, "directories": true, "folder": true, "folders": true,
	"everything": true,
}

// anaphorStop keeps back-references out of target phrases; the engine fills
// those from the previous intent instead.
var anaphorStop = map[string]bool{
	"it": true, "them": true, "same": true, "there": true, "here": true,
	"again": true, "one": true, "ones": true,
}

var dirPreps = map[string]bool{
	"in": true, "into": true, "inside": true, "under": true,
	"within": true, "from": true, "to": true,
}

// Extract pulls entities for one candidate out of the annotated utterance.
// Priority: named-entity spans, then token-text tests, then positional
// heuristics relative to the matched span.
func Extract(tokens []annotate.Token, cand Candidate, cfg ExtractorConfig) []Entity {
	window := cfg.Window
	if window <= 0 {
		window = DefaultWindow
	}

	var out []Entity
	claimed := make([]bool, len(tokens))
	for i := cand.Start; i < cand.End && i < len(tokens); i++ {
		claimed[i] = true
	}
	inSpan := func(i int) bool { return i >= cand.Start && i < cand.End }
	add := func(kind Kind, value string, start, end int) {
		out = append(out, Entity{Kind: kind, Value: value, Start: start, End: end})
		for i := start; i < end && i < len(tokens); i++ {
			claimed[i] = true
		}
	}

	// (a) Named-entity spans outside the matched span.
	for i := 0; i < len(tokens); {
		label := tokens[i].Entity
		if label == "" || inSpan(i) {
			i++
			continue
		}
		j := i + 1
		for j < len(tokens) && tokens[j].Entity == label && !inSpan(j) {
			j++
		}
		kind, ok := nerKinds[label]
		if !ok {
			kind = KindGeneric
		}
		add(kind, joinTokens(tokens[i:j]), i, j)
		i = j
	}

	// (b) Token-text tests outside the matched span.
	for i, t := range tokens {
		if inSpan(i) || claimed[i] {
			continue
		}
		switch {
		case fileNameRe.MatchString(t.Text):
			add(KindFile, t.Text, i, i+1)
		case dateRe.MatchString(t.Text):
			add(KindDate, t.Text, i, i+1)
		}
	}

	// (c) Positional heuristics.
	for i, t := range tokens {
		if inSpan(i) || claimed[i] {
			continue
		}
		lower := t.Lower()
		if scopeKeywords[lower] {
			add(KindScope, lower, i, i+1)
			// Nearest file-type token after the scope keyword, bounded.
			for j := i + 1; j < len(tokens) && j <= i+window; j++ {
				if claimed[j] || inSpan(j) {
					continue
				}
				if ft, ok := fileTypeVocab[tokens[j].Lower()]; ok {
					add(KindFileType, ft, j, j+1)
					break
				}
			}
		}
	}
	for i, t := range tokens {
		if inSpan(i) || claimed[i] {
			continue
		}
		if ft, ok := fileTypeVocab[t.Lower()]; ok {
			add(KindFileType, ft, i, i+1)
		}
	}
	// Directory: first identifier after a locative preposition, skipping
	// determiners ("into the docs" -> docs).
	for i := 0; i < len(tokens)-1; i++ {
		if !dirPreps[tokens[i].Lower()] {
			continue
		}
		j := i + 1
		for j < len(tokens) && determiners[tokens[j].Lower()] {
			j++
		}
		if j >= len(tokens) || inSpan(j) || claimed[j] {
			continue
		}
		text := strings.TrimSuffix(tokens[j].Text, "/")
		if text == "" || genericNouns[tokens[j].Lower()] || anaphorStop[tokens[j].Lower()] {
			continue
		}
		add(KindDirectory, text, j, j+1)
	}

	if target, start, end, ok := extractTarget(tokens, cand, claimed); ok {
		add(KindTarget, target, start, end)
	} else {
		// A bare file name is a perfectly good target.
		for _, e := range out {
			if e.Kind == KindFile {
				out = append(out, Entity{Kind: KindTarget, Value: e.Value, Start: e.Start, End: e.End})
				break
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// extractTarget finds the object the intent acts on: first via the shallow
// verb-object relation anchored in the matched span, then via the noun run
// following the span.
func extractTarget(tokens []annotate.Token, cand Candidate, claimed []bool) (string, int, int, bool) {
	// Object of a verb inside the matched span, expanded left over its
	// unclaimed modifiers ("scan" -> "security scan").
	for i := cand.End; i < len(tokens); i++ {
		if claimed[i] || tokens[i].Dep != "dobj" {
			continue
		}
		if tokens[i].Head < cand.Start || tokens[i].Head >= cand.End {
			continue
		}
		if genericNouns[tokens[i].Lower()] {
			continue
		}
		start, end := i, i+1
		for start > cand.End && !claimed[start-1] && modifierLike(tokens[start-1]) {
			start--
		}
		for end < len(tokens) && !claimed[end] && modifierLike(tokens[end]) && !genericNouns[tokens[end].Lower()] {
			end++
		}
		return joinTokens(tokens[start:end]), start, end, true
	}

	// Noun run after the span: skip determiners and claimed tokens; skip
	// prepositions until something is collected, stop at the next one after.
	var parts []string
	start, end := -1, -1
	for i := cand.End; i < len(tokens); i++ {
		lower := tokens[i].Lower()
		if claimed[i] || determiners[lower] || anaphorStop[lower] {
			if len(parts) > 0 && claimed[i] {
				break
			}
			continue
		}
		if prepositions[lower] {
			if len(parts) > 0 {
				break
			}
			continue
		}
		if genericNouns[lower] {
			continue
		}
		if !wordLike(tokens[i]) {
			if len(parts) > 0 {
				break
			}
			continue
		}
		if start == -1 {
			start = i
		}
		parts = append(parts, tokens[i].Text)
		end = i + 1
	}
	if len(parts) == 0 {
		return "", 0, 0, false
	}
	return strings.Join(parts, " "), start, end, true
}

// modifierLike reports whether a token can extend a target leftward.
func modifierLike(t annotate.Token) bool {
	if determiners[t.Lower()] || prepositions[t.Lower()] || anaphorStop[t.Lower()] {
		return false
	}
	switch t.POS {
	case "NOUN", "ADJ", "":
		return t.IsAlpha()
	}
	return false
}

// wordLike reports whether a token can participate in a target phrase.
func wordLike(t annotate.Token) bool {
	switch t.POS {
	case "NOUN", "ADJ", "NUM", "X", "":
		return len(t.Text) > 0 && t.Text != "?" && !strings.ContainsAny(t.Text, "!.,;:")
	}
	return false
}

func joinTokens(tokens []annotate.Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.Text
	}
	return strings.Join(parts, " ")
}
