// ABOUTME: Pattern library: per-token constraint sequences with occurrence ops
// ABOUTME: Static configuration compiled once at startup; read-only during matching

package intent

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Constraint is the predicate set one token position must satisfy. All set
// predicates must hold (conjunction). An empty constraint matches any token.
type Constraint struct {
	LowerIn []string `yaml:"lower_in,omitempty"` // lowercased text in set
	LemmaIn []string `yaml:"lemma_in,omitempty"` // lemma in set
	POSIn   []string `yaml:"pos_in,omitempty"`   // coarse POS in set
	TextRe  string   `yaml:"text_re,omitempty"`  // text matches regex
	IsAlpha bool     `yaml:"is_alpha,omitempty"` // purely alphabetic
	Op      string   `yaml:"op,omitempty"`       // "" one, "?" zero/one, "*" zero+, "+" one+

	re *regexp.Regexp
}

// Pattern is one intent-pattern definition.
type Pattern struct {
	ID            string       `yaml:"id"`
	Label         string       `yaml:"label"`
	Constraints   []Constraint `yaml:"constraints"`
	NonContiguous bool         `yaml:"non_contiguous,omitempty"`
	Weight        int          `yaml:"weight,omitempty"` // computed when zero

	label Label
}

// Library holds compiled patterns. Immutable after Compile.
type Library struct {
	patterns []Pattern
}

// NewLibrary compiles the given patterns into a library.
func NewLibrary(patterns []Pattern) (*Library, error) {
	lib := &Library{patterns: patterns}
	if err := lib.compile(); err != nil {
		return nil, err
	}
	return lib, nil
}

// DefaultLibrary compiles the built-in pattern set.
func DefaultLibrary() *Library {
	lib, err := NewLibrary(builtinPatterns())
	if err != nil {
		// The built-in set is static; a compile failure is a programming error.
		panic(fmt.Sprintf("builtin pattern library: %v", err))
	}
	return lib
}

// patternFile is the on-disk shape of a user pattern file.
type patternFile struct {
	Patterns []Pattern `yaml:"patterns"`
}

// LoadFile parses additional patterns from a YAML file and returns a new
// library holding the receiver's patterns plus the loaded ones.
func (l *Library) LoadFile(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading pattern file: %w", err)
	}
	var pf patternFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parsing pattern file %s: %w", path, err)
	}
	merged := make([]Pattern, 0, len(l.patterns)+len(pf.Patterns))
	merged = append(merged, l.patterns...)
	merged = append(merged, pf.Patterns...)
	return NewLibrary(merged)
}

// Patterns returns the compiled pattern slice. Callers must not mutate it.
func (l *Library) Patterns() []Pattern {
	return l.patterns
}

func (l *Library) compile() error {
	for i := range l.patterns {
		p := &l.patterns[i]
		if p.ID == "" {
			return fmt.Errorf("pattern %d: missing id", i)
		}
		if len(p.Constraints) == 0 {
			return fmt.Errorf("pattern %s: empty constraint sequence", p.ID)
		}
		label, err := ParseLabel(p.Label)
		if err != nil {
			return fmt.Errorf("pattern %s: %w", p.ID, err)
		}
		p.label = label
		for j := range p.Constraints {
			c := &p.Constraints[j]
			switch c.Op {
			case "", "?", "*", "+":
			default:
				return fmt.Errorf("pattern %s: constraint %d: bad op %q", p.ID, j, c.Op)
			}
			if c.TextRe != "" {
				re, err := regexp.Compile(c.TextRe)
				if err != nil {
					return fmt.Errorf("pattern %s: constraint %d: %w", p.ID, j, err)
				}
				c.re = re
			}
		}
		if p.Weight == 0 {
			p.Weight = computeWeight(p.Constraints)
		}
	}
	return nil
}

// computeWeight derives a specificity weight from constraint strictness.
// Narrower predicate sets score higher; optional positions contribute nothing.
func computeWeight(seq []Constraint) int {
	w := 0
	for _, c := range seq {
		if c.Op == "*" || c.Op == "?" {
			continue
		}
		cw := 1
		for _, set := range [][]string{c.LowerIn, c.LemmaIn} {
			switch {
			case len(set) == 0:
			case len(set) <= 6:
				cw += 2
			default:
				cw++
			}
		}
		if len(c.POSIn) > 0 {
			cw++
		}
		if c.TextRe != "" {
			cw += 2
		}
		if c.IsAlpha {
			cw++
		}
		w += cw
	}
	return w
}

// matches reports whether the token satisfies every set predicate.
// Annotation-dependent predicates fail against degraded text-only tokens.
func (c *Constraint) matches(lower, lemma, pos, text string) bool {
	if len(c.LowerIn) > 0 && !contains(c.LowerIn, lower) {
		return false
	}
	if len(c.LemmaIn) > 0 && !contains(c.LemmaIn, lemma) {
		return false
	}
	if len(c.POSIn) > 0 && !contains(c.POSIn, pos) {
		return false
	}
	if c.re != nil && !c.re.MatchString(text) {
		return false
	}
	if c.IsAlpha {
		for _, r := range text {
			if !isLetter(r) {
				return false
			}
		}
		if text == "" {
			return false
		}
	}
	return true
}

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r >= 0x80
}
