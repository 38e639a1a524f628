// ABOUTME: Tests for the degraded text-only annotator
// ABOUTME: Validates tokenization, offsets, and lemma defaulting

package annotate

import "testing"

func TestFallbackTokenization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"simple words", "list python scripts", []string{"list", "python", "scripts"}},
		{"file name stays whole", "run security_scan.py now", []string{"run", "security_scan.py", "now"}},
		{"trailing punctuation dropped", "what can you do?", []string{"what", "can", "you", "do", "?"}},
		{"empty input", "", nil},
		{"underscored directory", "in shell_scripts", []string{"in", "shell_scripts"}},
	}

	f := NewFallback()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tokens, err := f.Annotate(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(tokens) != len(tt.want) {
				t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(tt.want), tokens)
			}
			for i, w := range tt.want {
				if tokens[i].Text != w {
					t.Errorf("token %d: got %q, want %q", i, tokens[i].Text, w)
				}
			}
		})
	}
}

func TestFallbackOffsets(t *testing.T) {
	t.Parallel()

	f := NewFallback()
	input := "run backup.sh"
	tokens, err := f.Annotate(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, tok := range tokens {
		if got := input[tok.Start:tok.End]; got != tok.Text {
			t.Errorf("offsets [%d,%d) yield %q, want %q", tok.Start, tok.End, got, tok.Text)
		}
	}
}

func TestFallbackTokensAreDegraded(t *testing.T) {
	t.Parallel()

	f := NewFallback()
	tokens, _ := f.Annotate("Run the Scan")
	for _, tok := range tokens {
		if tok.Tag != "" || tok.POS != "" || tok.Entity != "" {
			t.Errorf("degraded token %q carries annotations: %+v", tok.Text, tok)
		}
		if tok.Lemma == "" {
			t.Errorf("degraded token %q has no lemma", tok.Text)
		}
	}
}
