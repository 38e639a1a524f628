// ABOUTME: Matcher: scans annotated tokens against the pattern library
// ABOUTME: Greedy longest span per pattern; overlapping candidates from different patterns all kept

package intent

import (
	"superterm/internal/annotate"
)

// MatchAll returns one candidate per pattern whose constraint sequence is
// satisfiable, preferring the longest span (earliest on equal length).
// Disambiguation between overlapping candidates belongs to the resolver.
// An empty result is a normal outcome, not an error.
func MatchAll(tokens []annotate.Token, lib *Library) []Candidate {
	var out []Candidate
	for i := range lib.Patterns() {
		p := &lib.Patterns()[i]
		var cand Candidate
		var found bool
		if p.NonContiguous {
			cand, found = matchSparse(tokens, p)
		} else {
			cand, found = matchContiguous(tokens, p)
		}
		if found {
			out = append(out, cand)
		}
	}
	return out
}

// matchContiguous finds the longest contiguous match of p anywhere in tokens.
func matchContiguous(tokens []annotate.Token, p *Pattern) (Candidate, bool) {
	best := Candidate{}
	found := false
	for start := 0; start < len(tokens); start++ {
		end, ok := matchSeq(tokens, start, p.Constraints, 0)
		if !ok || end == start {
			continue
		}
		if !found || end-start > best.End-best.Start {
			best = Candidate{
				PatternID:   p.ID,
				Label:       p.label,
				Start:       start,
				End:         end,
				Specificity: p.Weight,
			}
			found = true
		}
	}
	return best, found
}

// matchSeq matches constraints[si:] against tokens starting at pos.
// Occurrence ops are greedy: "*" and "+" consume as many tokens as possible,
// backtracking when a later constraint cannot be satisfied.
func matchSeq(tokens []annotate.Token, pos int, seq []Constraint, si int) (int, bool) {
	if si == len(seq) {
		return pos, true
	}
	c := &seq[si]

	switch c.Op {
	case "", "+":
		if pos >= len(tokens) || !constraintMatches(c, tokens[pos]) {
			return 0, false
		}
		if c.Op == "+" {
			// Greedy: extend the repetition before moving on.
			return matchRep(tokens, pos+1, seq, si)
		}
		return matchSeq(tokens, pos+1, seq, si+1)
	case "?":
		if pos < len(tokens) && constraintMatches(c, tokens[pos]) {
			if end, ok := matchSeq(tokens, pos+1, seq, si+1); ok {
				return end, ok
			}
		}
		return matchSeq(tokens, pos, seq, si+1)
	case "*":
		return matchRep(tokens, pos, seq, si)
	}
	return 0, false
}

// matchRep greedily consumes tokens matching seq[si], longest run first.
func matchRep(tokens []annotate.Token, pos int, seq []Constraint, si int) (int, bool) {
	c := &seq[si]
	n := pos
	for n < len(tokens) && constraintMatches(c, tokens[n]) {
		n++
	}
	for ; n >= pos; n-- {
		if end, ok := matchSeq(tokens, n, seq, si+1); ok {
			return end, ok
		}
	}
	return 0, false
}

// matchSparse matches p order-preservingly with gaps allowed. Each constraint
// takes the earliest satisfying token after the previous one; the span runs
// from the first to the last matched token. Ops "?" and "*" mark skippable
// positions.
func matchSparse(tokens []annotate.Token, p *Pattern) (Candidate, bool) {
	first, last := -1, -1
	pos := 0
	for si := range p.Constraints {
		c := &p.Constraints[si]
		optional := c.Op == "?" || c.Op == "*"
		found := -1
		for i := pos; i < len(tokens); i++ {
			if constraintMatches(c, tokens[i]) {
				found = i
				break
			}
		}
		if found == -1 {
			if optional {
				continue
			}
			return Candidate{}, false
		}
		if first == -1 {
			first = found
		}
		last = found
		pos = found + 1
	}
	if first == -1 {
		return Candidate{}, false
	}
	return Candidate{
		PatternID:   p.ID,
		Label:       p.label,
		Start:       first,
		End:         last + 1,
		Specificity: p.Weight,
	}, true
}

func constraintMatches(c *Constraint, t annotate.Token) bool {
	return c.matches(t.Lower(), t.Lemma, t.POS, t.Text)
}
