// ABOUTME: AnnotatedToken model shared by the matcher and entity extractor
// ABOUTME: Immutable per turn; produced by an Annotator, discarded when the turn ends

package annotate

import (
	"strings"
	"unicode"
)

// Token is one annotated token of an utterance. Fields beyond Text, Lemma and
// the offsets are empty when the token came from the degraded fallback path.
type Token struct {
	Text   string // surface form
	Lemma  string // base form; lowercased surface form in degraded mode
	POS    string // coarse part of speech (VERB, NOUN, ...)
	Tag    string // fine-grained Penn treebank tag (VB, NNS, ...)
	Dep    string // dependency relation (ROOT, dobj); shallow, see adapter
	Head   int    // index of the governing token, -1 for none
	Entity string // named-entity label (PERSON, GPE, ...), empty for none
	Start  int    // byte offset of the first character in the utterance
	End    int    // byte offset one past the last character
}

// Lower returns the lowercased surface form.
func (t Token) Lower() string {
	return strings.ToLower(t.Text)
}

// IsAlpha reports whether the token is purely alphabetic.
func (t Token) IsAlpha() bool {
	if t.Text == "" {
		return false
	}
	for _, r := range t.Text {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// Annotator produces annotated tokens for one utterance. Implementations must
// be deterministic: the same utterance yields the same token sequence.
type Annotator interface {
	Annotate(utterance string) ([]Token, error)
}

// coarsePOS maps a Penn treebank tag to a coarse part-of-speech class.
func coarsePOS(tag string) string {
	switch {
	case strings.HasPrefix(tag, "VB"), tag == "MD":
		return "VERB"
	case strings.HasPrefix(tag, "NN"):
		return "NOUN"
	case strings.HasPrefix(tag, "JJ"):
		return "ADJ"
	case strings.HasPrefix(tag, "RB"):
		return "ADV"
	case strings.HasPrefix(tag, "PRP"), tag == "WP", tag == "WP$":
		return "PRON"
	case tag == "DT", tag == "PDT", tag == "WDT":
		return "DET"
	case tag == "IN", tag == "TO", tag == "RP":
		return "ADP"
	case tag == "CD":
		return "NUM"
	case tag == "CC":
		return "CONJ"
	case tag == "UH":
		return "INTJ"
	case tag == "", tag == "SYM", tag == "FW":
		return "X"
	default:
		if len(tag) > 0 && !unicode.IsLetter(rune(tag[0])) {
			return "PUNCT"
		}
		return "X"
	}
}
