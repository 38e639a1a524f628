// ABOUTME: Tests for pattern compilation, weight computation, and YAML loading
// ABOUTME: The built-in library must always compile; user files extend it

package intent

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultLibraryCompiles(t *testing.T) {
	t.Parallel()

	lib := DefaultLibrary()
	if len(lib.Patterns()) == 0 {
		t.Fatal("built-in library is empty")
	}
	for _, p := range lib.Patterns() {
		if p.Weight <= 0 {
			t.Errorf("pattern %s: weight %d, want > 0", p.ID, p.Weight)
		}
		if p.label == LabelUnknown {
			t.Errorf("pattern %s: compiled to unknown label", p.ID)
		}
	}
}

func TestNewLibraryRejectsBadPatterns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern Pattern
	}{
		{"missing id", Pattern{Label: "run", Constraints: []Constraint{{LowerIn: []string{"go"}}}}},
		{"empty constraints", Pattern{ID: "p", Label: "run"}},
		{"unknown label", Pattern{ID: "p", Label: "fly", Constraints: []Constraint{{LowerIn: []string{"go"}}}}},
		{"bad op", Pattern{ID: "p", Label: "run", Constraints: []Constraint{{LowerIn: []string{"go"}, Op: "^"}}}},
		{"bad regex", Pattern{ID: "p", Label: "run", Constraints: []Constraint{{TextRe: "("}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := NewLibrary([]Pattern{tt.pattern}); err == nil {
				t.Error("expected compile error, got nil")
			}
		})
	}
}

func TestComputeWeight(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		seq  []Constraint
		want int
	}{
		{"small lower set", []Constraint{{LowerIn: []string{"run", "execute"}}}, 3},
		{"large lower set", []Constraint{{LowerIn: []string{"a", "b", "c", "d", "e", "f", "g"}}}, 2},
		{"two positions", []Constraint{{LowerIn: []string{"look"}}, {LowerIn: []string{"for"}}}, 6},
		{"optional contributes nothing", []Constraint{{LowerIn: []string{"give"}}, {Op: "*"}}, 3},
		{"regex bonus", []Constraint{{TextRe: `^\d+$`}}, 3},
		{"pos bonus", []Constraint{{POSIn: []string{"VERB"}}}, 2},
		{"bare wildcard position", []Constraint{{}}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := computeWeight(tt.seq); got != tt.want {
				t.Errorf("computeWeight = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "patterns.yaml")
	data := `patterns:
  - id: custom.deploy
    label: run
    constraints:
      - lower_in: [deploy, ship]
  - id: custom.backup
    label: create
    weight: 9
    constraints:
      - lower_in: [backup]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	base := DefaultLibrary()
	lib, err := base.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got, want := len(lib.Patterns()), len(base.Patterns())+2; got != want {
		t.Fatalf("got %d patterns, want %d", got, want)
	}

	var deploy, backup *Pattern
	for i := range lib.Patterns() {
		switch lib.Patterns()[i].ID {
		case "custom.deploy":
			deploy = &lib.Patterns()[i]
		case "custom.backup":
			backup = &lib.Patterns()[i]
		}
	}
	if deploy == nil || backup == nil {
		t.Fatal("loaded patterns not found in merged library")
	}
	if deploy.label != LabelRun {
		t.Errorf("custom.deploy label = %v, want run", deploy.label)
	}
	if deploy.Weight != 3 {
		t.Errorf("custom.deploy weight = %d, want computed 3", deploy.Weight)
	}
	if backup.Weight != 9 {
		t.Errorf("custom.backup weight = %d, want explicit 9", backup.Weight)
	}
}

func TestLoadFileErrors(t *testing.T) {
	t.Parallel()

	lib := DefaultLibrary()
	if _, err := lib.LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("patterns: [not a pattern"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := lib.LoadFile(bad); err == nil {
		t.Error("expected error for malformed YAML")
	}
}
