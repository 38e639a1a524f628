// ABOUTME: Turn orchestration: annotate, match, extract, score, resolve, dispatch
// ABOUTME: One utterance fully processed per turn; no failure escapes the turn boundary

package engine

import (
	"context"

	"superterm/internal/annotate"
	"superterm/internal/dispatch"
	"superterm/internal/intent"
	"superterm/internal/log"
	"superterm/internal/session"
)

// Engine wires the pipeline components. Build one at startup and reuse it;
// all fields are read-only during turns.
type Engine struct {
	Annotator annotate.Annotator // primary; nil forces the degraded path
	Fallback  annotate.Annotator
	Library   *intent.Library
	Weights   intent.Weights
	Extractor intent.ExtractorConfig
	Resolver  *intent.Resolver
	Table     *dispatch.Table
}

// anaphors are tokens that refer back to the previous turn.
var anaphors = map[string]bool{
	"that": true, "it": true, "same": true, "there": true, "again": true,
}

// Turn processes one utterance end to end and always yields a response.
// A clarification turn returns the prompt with a partial outcome; dispatch
// happens on a later turn once the ambiguity is resolved.
func (e *Engine) Turn(ctx context.Context, sess *session.Session, utterance string) (result dispatch.Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("turn panic: %v", r)
			result = dispatch.Result{
				Text:    "Something went wrong processing that. Try again?",
				Outcome: dispatch.Failure,
			}
		}
		sess.BumpTurn()
	}()

	tokens := e.annotate(utterance)
	candidates := intent.MatchAll(tokens, e.Library)
	scored := e.scoreAll(sess, tokens, candidates, utterance)

	dec := e.Resolver.Resolve(sess.Context, utterance, scored)
	if dec.State == intent.StateClarifying {
		return dispatch.Result{Text: dec.Prompt, Outcome: dispatch.Partial}
	}

	log.Debug("dispatching %s", dec.Intent)
	return e.Table.Dispatch(ctx, dec.Intent)
}

// annotate runs the primary annotator, degrading to the text-only fallback
// when it is missing or fails. Degradation is logged, never fatal.
func (e *Engine) annotate(utterance string) []annotate.Token {
	if e.Annotator != nil {
		tokens, err := e.Annotator.Annotate(utterance)
		if err == nil {
			return tokens
		}
		log.Warn("annotation unavailable, falling back to text-only matching: %v", err)
	}
	tokens, _ := e.Fallback.Annotate(utterance)
	return tokens
}

// scoreAll extracts entities and scores every candidate. When the utterance
// refers back ("do the same for that directory"), missing required kinds are
// inherited from the last resolved intent before scoring.
func (e *Engine) scoreAll(sess *session.Session, tokens []annotate.Token, candidates []intent.Candidate, utterance string) []intent.ScoredCandidate {
	anaphoric := hasAnaphor(tokens)
	last := sess.Context.LastIntent

	scored := make([]intent.ScoredCandidate, 0, len(candidates))
	for _, cand := range candidates {
		entities := intent.Extract(tokens, cand, e.Extractor)
		if anaphoric && last != nil {
			entities = inheritMissing(cand.Label, entities, last)
		}
		conf := intent.Score(cand, entities, len(tokens), e.Weights)
		in := intent.NewIntent(cand.Label, conf, entities, utterance)
		scored = append(scored, intent.ScoredCandidate{Intent: in, Match: cand})
	}
	return scored
}

func hasAnaphor(tokens []annotate.Token) bool {
	for _, t := range tokens {
		if anaphors[t.Lower()] {
			return true
		}
	}
	return false
}

// inheritMissing fills required kinds absent from entities with the previous
// intent's values.
func inheritMissing(label intent.Label, entities []intent.Entity, last *intent.Intent) []intent.Entity {
	have := make(map[intent.Kind]bool, len(entities))
	for _, e := range entities {
		have[e.Kind] = true
	}
	for _, kind := range intent.RequiredKinds(label) {
		if have[kind] {
			continue
		}
		for _, v := range last.Entities[kind] {
			entities = append(entities, intent.Entity{Kind: kind, Value: v})
		}
	}
	return entities
}
