// ABOUTME: Tests for token helpers shared by both annotators
// ABOUTME: Covers lemmatization, coarse POS mapping, and IOB label stripping

package annotate

import "testing"

func TestLemmatize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		tag  string
		want string
	}{
		{"running", "VBG", "run"},
		{"moved", "VBD", "move"},
		{"started", "VBD", "start"},
		{"summarizing", "VBG", "summarize"},
		{"are", "VBP", "be"},
		{"files", "NNS", "file"},
		{"directories", "NNS", "directory"},
		{"scripts", "NNS", "script"},
		{"Python", "NNP", "python"},
		// Non-verb, non-plural forms keep their surface form.
		{"status", "NN", "status"},
		{"this", "DT", "this"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			if got := lemmatize(tt.text, tt.tag); got != tt.want {
				t.Errorf("lemmatize(%q, %q) = %q, want %q", tt.text, tt.tag, got, tt.want)
			}
		})
	}
}

func TestCoarsePOS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tag  string
		want string
	}{
		{"VB", "VERB"},
		{"VBG", "VERB"},
		{"NN", "NOUN"},
		{"NNS", "NOUN"},
		{"NNP", "NOUN"},
		{"JJ", "ADJ"},
		{"IN", "ADP"},
		{"DT", "DET"},
		{"CD", "NUM"},
		{".", "PUNCT"},
		{"", "X"},
	}

	for _, tt := range tests {
		if got := coarsePOS(tt.tag); got != tt.want {
			t.Errorf("coarsePOS(%q) = %q, want %q", tt.tag, got, tt.want)
		}
	}
}

func TestStripIOB(t *testing.T) {
	t.Parallel()

	tests := []struct {
		label string
		want  string
	}{
		{"B-PERSON", "PERSON"},
		{"I-GPE", "GPE"},
		{"O", ""},
		{"", ""},
		{"DATE", "DATE"},
	}

	for _, tt := range tests {
		if got := stripIOB(tt.label); got != tt.want {
			t.Errorf("stripIOB(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}

func TestAttachShallowDeps(t *testing.T) {
	t.Parallel()

	tokens := []Token{
		{Text: "run", POS: "VERB", Head: -1},
		{Text: "the", POS: "DET", Head: -1},
		{Text: "scan", POS: "NOUN", Head: -1},
	}
	attachShallowDeps(tokens)

	if tokens[0].Dep != "ROOT" {
		t.Errorf("verb dep = %q, want ROOT", tokens[0].Dep)
	}
	if tokens[2].Dep != "dobj" || tokens[2].Head != 0 {
		t.Errorf("noun dep = %q head = %d, want dobj head 0", tokens[2].Dep, tokens[2].Head)
	}
}
