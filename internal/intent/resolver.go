// ABOUTME: Resolution policy: threshold/margin dispatch, clarification sub-dialogue, anaphora
// ABOUTME: State machine AWAITING_INPUT -> SCORING -> {DISPATCH, CLARIFYING}; every turn ends in DISPATCH or a prompt

package intent

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"

	"superterm/internal/log"
)

// State names the resolution policy states.
type State int

const (
	StateAwaitingInput State = iota
	StateScoring
	StateDispatch
	StateClarifying
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateAwaitingInput:
		return "awaiting_input"
	case StateScoring:
		return "scoring"
	case StateDispatch:
		return "dispatch"
	case StateClarifying:
		return "clarifying"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// ResolverConfig tunes dispatch behavior.
type ResolverConfig struct {
	Threshold       float64 // min confidence to dispatch directly (default 0.6)
	Margin          float64 // min lead over the runner-up (default 0.15)
	MaxClarifyTurns int     // consecutive clarification turns before forced dispatch (default 2)
}

// DefaultResolverConfig returns the documented defaults.
func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{Threshold: 0.6, Margin: 0.15, MaxClarifyTurns: 2}
}

// ScoredCandidate pairs a scored intent with the match it came from.
type ScoredCandidate struct {
	Intent Intent
	Match  Candidate
}

// Decision is the outcome of one resolution step. State is always
// StateDispatch or StateClarifying; a clarifying decision carries the prompt
// and leaves the dispatched intent zero-valued.
type Decision struct {
	State  State
	Intent Intent
	Prompt string
}

// Resolver selects the intent to dispatch, or opens a clarification
// sub-dialogue when confidence or margin is insufficient.
type Resolver struct {
	cfg ResolverConfig
}

// NewResolver creates a resolver, applying defaults for zero config fields.
func NewResolver(cfg ResolverConfig) *Resolver {
	if cfg.Threshold == 0 {
		cfg.Threshold = 0.6
	}
	if cfg.Margin == 0 {
		cfg.Margin = 0.15
	}
	if cfg.MaxClarifyTurns == 0 {
		cfg.MaxClarifyTurns = 2
	}
	return &Resolver{cfg: cfg}
}

// Resolve runs one SCORING step. A pending clarification is answered first:
// a short reply selecting one of the recorded options dispatches it
// immediately; otherwise re-scoring is restricted to the recorded candidate
// set before falling back to the full set. After MaxClarifyTurns consecutive
// clarification turns the best available candidate is force-dispatched.
func (r *Resolver) Resolve(ctx *Context, utterance string, candidates []ScoredCandidate) Decision {
	log.Debug("resolver: scoring %d candidates, pending=%v", len(candidates), ctx.Pending != nil)

	if ctx.Pending != nil {
		return r.resolvePending(ctx, utterance, candidates)
	}
	return r.resolveFresh(ctx, utterance, candidates)
}

func (r *Resolver) resolveFresh(ctx *Context, utterance string, candidates []ScoredCandidate) Decision {
	ranked := rankByLabel(candidates)
	if len(ranked) == 0 {
		// No pattern matched: terminal UNKNOWN, confidence zero.
		return r.dispatch(ctx, Intent{Label: LabelUnknown, Confidence: 0, Utterance: utterance})
	}

	best := ranked[0]
	if best.Intent.Confidence >= r.cfg.Threshold && leadsBy(ranked, r.cfg.Margin) {
		return r.dispatch(ctx, best.Intent)
	}

	return r.clarify(ctx, ranked, 1)
}

func (r *Resolver) resolvePending(ctx *Context, utterance string, candidates []ScoredCandidate) Decision {
	p := ctx.Pending

	// A short reply picking one of the offered options short-circuits.
	if idx, ok := r.answerChoice(utterance, p); ok {
		log.Debug("resolver: clarification answered with option %d", idx+1)
		return r.dispatch(ctx, p.Candidates[idx])
	}

	// Re-score restricted to the recorded candidate set; when that does not
	// clear, the full set still gets a chance, so a rephrase can pivot to a
	// label outside the recorded options.
	ranked := rankByLabel(restrictToLabels(candidates, p.Labels()))
	if r.clears(ranked) {
		return r.dispatch(ctx, ranked[0].Intent)
	}
	full := rankByLabel(candidates)
	if r.clears(full) {
		return r.dispatch(ctx, full[0].Intent)
	}
	if len(ranked) == 0 {
		ranked = full
	}

	// Still ambiguous. Bounded: force dispatch rather than loop forever.
	if p.Turns >= r.cfg.MaxClarifyTurns {
		forced := Intent{Label: LabelUnknown, Confidence: 0, Utterance: utterance}
		if len(p.Candidates) > 0 {
			forced = p.Candidates[0]
		}
		if len(ranked) > 0 && ranked[0].Intent.Confidence > forced.Confidence {
			forced = ranked[0].Intent
		}
		log.Debug("resolver: clarification limit reached, forcing %s", forced.Label)
		return r.dispatch(ctx, forced)
	}

	return r.clarify(ctx, ranked, p.Turns+1)
}

// dispatch finalizes a turn. Only non-UNKNOWN intents become anaphora
// antecedents.
func (r *Resolver) dispatch(ctx *Context, in Intent) Decision {
	ctx.Pending = nil
	if in.Label != LabelUnknown {
		copied := in
		ctx.LastIntent = &copied
	}
	return Decision{State: StateDispatch, Intent: in}
}

// clears reports whether a ranking has a dispatchable winner.
func (r *Resolver) clears(ranked []ScoredCandidate) bool {
	return len(ranked) > 0 &&
		ranked[0].Intent.Confidence >= r.cfg.Threshold &&
		leadsBy(ranked, r.cfg.Margin)
}

// clarify records the ambiguous set and emits the prompt.
func (r *Resolver) clarify(ctx *Context, ranked []ScoredCandidate, turns int) Decision {
	if len(ranked) == 0 {
		// A rephrase that matched nothing keeps the previously offered
		// options answerable.
		pending := &Pending{Turns: turns}
		if ctx.Pending != nil {
			pending.Candidates = ctx.Pending.Candidates
		}
		ctx.Pending = pending
		return Decision{State: StateClarifying, Prompt: "I didn't catch that. Could you rephrase?"}
	}

	n := len(ranked)
	if n > 3 {
		n = 3
	}
	pending := &Pending{Turns: turns}
	var b strings.Builder
	b.WriteString("I'm not sure what you meant. Did you want to:\n")
	for i := 0; i < n; i++ {
		in := ranked[i].Intent
		pending.Candidates = append(pending.Candidates, in)
		fmt.Fprintf(&b, "  %d) %s\n", i+1, optionHint(in))
	}
	b.WriteString("Answer with a number or a keyword, or rephrase.")
	ctx.Pending = pending
	return Decision{State: StateClarifying, Prompt: b.String()}
}

// answerChoice interprets a short utterance as a selection among pending
// options: a 1-based index, an exact label word, or a fuzzy label match.
// Longer utterances are treated as a rephrase, not an answer.
func (r *Resolver) answerChoice(utterance string, p *Pending) (int, bool) {
	if len(p.Candidates) == 0 {
		return 0, false
	}
	trimmed := strings.TrimSpace(strings.ToLower(utterance))
	if trimmed == "" || len(strings.Fields(trimmed)) > 3 {
		return 0, false
	}

	if n, err := strconv.Atoi(trimmed); err == nil {
		if n >= 1 && n <= len(p.Candidates) {
			return n - 1, true
		}
		return 0, false
	}

	names := make([]string, len(p.Candidates))
	for i, c := range p.Candidates {
		names[i] = c.Label.String()
		if trimmed == names[i] {
			return i, true
		}
	}

	matches := fuzzy.Find(trimmed, names)
	if len(matches) > 0 {
		return matches[0].Index, true
	}
	return 0, false
}

// rankByLabel keeps the best candidate per label and sorts best-first.
// Ordering is deterministic: confidence, then specificity, then pattern id.
func rankByLabel(candidates []ScoredCandidate) []ScoredCandidate {
	bestPerLabel := make(map[Label]ScoredCandidate, len(candidates))
	for _, c := range candidates {
		prev, ok := bestPerLabel[c.Intent.Label]
		if !ok || better(c, prev) {
			bestPerLabel[c.Intent.Label] = c
		}
	}
	out := make([]ScoredCandidate, 0, len(bestPerLabel))
	for _, c := range bestPerLabel {
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool { return better(out[i], out[j]) })
	return out
}

func better(a, b ScoredCandidate) bool {
	if a.Intent.Confidence != b.Intent.Confidence {
		return a.Intent.Confidence > b.Intent.Confidence
	}
	if a.Match.Specificity != b.Match.Specificity {
		return a.Match.Specificity > b.Match.Specificity
	}
	return a.Match.PatternID < b.Match.PatternID
}

// leadsBy reports whether the top candidate leads the runner-up by at least
// margin. A tie in both confidence and specificity is never a lead; that is
// the ambiguous case by policy.
func leadsBy(ranked []ScoredCandidate, margin float64) bool {
	if len(ranked) < 2 {
		return true
	}
	return ranked[0].Intent.Confidence-ranked[1].Intent.Confidence >= margin
}

func restrictToLabels(candidates []ScoredCandidate, labels []Label) []ScoredCandidate {
	allowed := make(map[Label]bool, len(labels))
	for _, l := range labels {
		allowed[l] = true
	}
	var out []ScoredCandidate
	for _, c := range candidates {
		if allowed[c.Intent.Label] {
			out = append(out, c)
		}
	}
	return out
}

// optionHint renders one clarification option.
func optionHint(in Intent) string {
	hint := actionHints[in.Label]
	if hint == "" {
		hint = in.Label.String()
	}
	if t := in.Entity(KindTarget); t != "" {
		return fmt.Sprintf("%s %q", hint, t)
	}
	return hint
}

var actionHints = map[Label]string{
	LabelList:      "list files",
	LabelRun:       "run a script",
	LabelSearch:    "search for",
	LabelHelp:      "get help",
	LabelOrganize:  "organize files",
	LabelShow:      "show a file",
	LabelCreate:    "create a file",
	LabelDelete:    "delete a file",
	LabelRename:    "rename a file",
	LabelMove:      "move a file",
	LabelSummarize: "summarize",
	LabelChat:      "just chat",
	LabelExit:      "exit",
}
