// ABOUTME: Degraded Annotator used when the NLP engine is unavailable or disabled
// ABOUTME: Text-only tokens from a regex split; no POS, no NER, lemma = lowercase

package annotate

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// tokenRe splits on word characters (including dots, dashes and underscores
// inside identifiers, so "script.py" stays one token) or single symbols.
var tokenRe = regexp.MustCompile(`[\w][\w.\-_]*|\S`)

// Fallback is the degraded annotator for the no-NLP path. It never fails.
type Fallback struct{}

// NewFallback returns the degraded annotator.
func NewFallback() *Fallback {
	return &Fallback{}
}

// Annotate splits the utterance into text-only tokens. The error is always nil.
func (f *Fallback) Annotate(utterance string) ([]Token, error) {
	utterance = norm.NFC.String(utterance)

	locs := tokenRe.FindAllStringIndex(utterance, -1)
	tokens := make([]Token, 0, len(locs))
	for _, loc := range locs {
		text := utterance[loc[0]:loc[1]]
		// Trailing sentence punctuation glued to a word is not part of it.
		trimmed := strings.TrimRight(text, ".,!?;:")
		end := loc[0] + len(trimmed)
		if trimmed == "" {
			trimmed, end = text, loc[1]
		}
		tokens = append(tokens, Token{
			Text:  trimmed,
			Lemma: strings.ToLower(trimmed),
			Head:  -1,
			Start: loc[0],
			End:   end,
		})
	}
	return tokens, nil
}
