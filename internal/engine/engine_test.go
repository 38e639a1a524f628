// ABOUTME: End-to-end pipeline tests over the degraded annotator and a stub table
// ABOUTME: Full turns: annotate, match, extract, score, resolve, dispatch

package engine

import (
	"context"
	"strings"
	"testing"

	"superterm/internal/annotate"
	"superterm/internal/dispatch"
	"superterm/internal/intent"
	"superterm/internal/session"
)

// capture records every dispatched intent and echoes its label.
type capture struct {
	intents []intent.Intent
}

func (c *capture) Handle(_ context.Context, in intent.Intent) dispatch.Result {
	c.intents = append(c.intents, in)
	return dispatch.Result{Text: "handled:" + in.Label.String(), Outcome: dispatch.Success}
}

func newTestEngine(t *testing.T) (*Engine, *capture) {
	t.Helper()
	rec := &capture{}
	table, err := dispatch.NewTable(rec)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	return &Engine{
		Fallback: annotate.NewFallback(),
		Library:  intent.DefaultLibrary(),
		Weights:  intent.DefaultWeights,
		Resolver: intent.NewResolver(intent.DefaultResolverConfig()),
		Table:    table,
	}, rec
}

func lastIntent(t *testing.T, c *capture) intent.Intent {
	t.Helper()
	if len(c.intents) == 0 {
		t.Fatal("nothing was dispatched")
	}
	return c.intents[len(c.intents)-1]
}

func TestTurnRunWithEntities(t *testing.T) {
	t.Parallel()

	eng, rec := newTestEngine(t)
	sess := session.New()

	res := eng.Turn(context.Background(), sess,
		"run the security scan on all python files in shell_scripts")
	if res.Outcome != dispatch.Success {
		t.Fatalf("outcome = %v (%q), want success", res.Outcome, res.Text)
	}

	in := lastIntent(t, rec)
	if in.Label != intent.LabelRun {
		t.Fatalf("label = %v, want run", in.Label)
	}
	if in.Confidence < 0.6 {
		t.Errorf("confidence = %.3f, want >= 0.6", in.Confidence)
	}
	checks := map[intent.Kind]string{
		intent.KindTarget:    "security scan",
		intent.KindScope:     "all",
		intent.KindFileType:  "python",
		intent.KindDirectory: "shell_scripts",
	}
	for kind, want := range checks {
		if got := in.Entity(kind); got != want {
			t.Errorf("%s = %q, want %q", kind, got, want)
		}
	}
	if sess.Turns() != 1 {
		t.Errorf("turns = %d, want 1", sess.Turns())
	}
}

func TestTurnSummarizeLatest(t *testing.T) {
	t.Parallel()

	eng, rec := newTestEngine(t)
	sess := session.New()

	res := eng.Turn(context.Background(), sess, "summarize the latest README")
	if res.Outcome != dispatch.Success {
		t.Fatalf("outcome = %v (%q), want success", res.Outcome, res.Text)
	}
	in := lastIntent(t, rec)
	if in.Label != intent.LabelSummarize {
		t.Fatalf("label = %v, want summarize", in.Label)
	}
	if got := in.Entity(intent.KindScope); got != "latest" {
		t.Errorf("scope = %q, want latest", got)
	}
	if got := in.Entity(intent.KindTarget); got != "README" {
		t.Errorf("target = %q, want README", got)
	}
}

func TestTurnGibberishIsUnknown(t *testing.T) {
	t.Parallel()

	eng, rec := newTestEngine(t)
	sess := session.New()

	eng.Turn(context.Background(), sess, "xk2929 zzz qqq")
	in := lastIntent(t, rec)
	if in.Label != intent.LabelUnknown {
		t.Fatalf("label = %v, want unknown", in.Label)
	}
	if in.Confidence != 0 {
		t.Errorf("confidence = %.3f, want 0", in.Confidence)
	}
	if sess.Context.LastIntent != nil {
		t.Error("unknown must not become an antecedent")
	}
}

func TestTurnClarificationFlow(t *testing.T) {
	t.Parallel()

	eng, rec := newTestEngine(t)
	sess := session.New()

	// "move report.txt" lacks the destination, so confidence stays below the
	// threshold and the engine asks instead of dispatching.
	res := eng.Turn(context.Background(), sess, "move report.txt")
	if res.Outcome != dispatch.Partial {
		t.Fatalf("outcome = %v (%q), want partial clarification", res.Outcome, res.Text)
	}
	if !strings.Contains(res.Text, "1)") {
		t.Errorf("prompt %q must list numbered options", res.Text)
	}
	if len(rec.intents) != 0 {
		t.Fatalf("nothing must dispatch during clarification, got %v", rec.intents)
	}

	// Picking option 1 dispatches the recorded candidate.
	res = eng.Turn(context.Background(), sess, "1")
	if res.Outcome != dispatch.Success {
		t.Fatalf("outcome = %v (%q), want success", res.Outcome, res.Text)
	}
	in := lastIntent(t, rec)
	if in.Label != intent.LabelMove {
		t.Errorf("label = %v, want move", in.Label)
	}
	if sess.Turns() != 2 {
		t.Errorf("turns = %d, want 2", sess.Turns())
	}
}

func TestTurnClarificationRephrase(t *testing.T) {
	t.Parallel()

	eng, rec := newTestEngine(t)
	sess := session.New()

	res := eng.Turn(context.Background(), sess, "move report.txt")
	if res.Outcome != dispatch.Partial {
		t.Fatalf("outcome = %v (%q), want partial", res.Outcome, res.Text)
	}

	// A full rephrase with the destination resolves without the menu.
	res = eng.Turn(context.Background(), sess, "move report.txt into the docs directory")
	if res.Outcome != dispatch.Success {
		t.Fatalf("outcome = %v (%q), want success", res.Outcome, res.Text)
	}
	in := lastIntent(t, rec)
	if in.Label != intent.LabelMove {
		t.Fatalf("label = %v, want move", in.Label)
	}
	if got := in.Entity(intent.KindDirectory); got != "docs" {
		t.Errorf("directory = %q, want docs", got)
	}
}

func TestTurnAnaphoraInheritsEntities(t *testing.T) {
	t.Parallel()

	eng, rec := newTestEngine(t)
	sess := session.New()

	eng.Turn(context.Background(), sess, "run backup.sh")
	first := lastIntent(t, rec)
	if first.Label != intent.LabelRun || first.Entity(intent.KindTarget) != "backup.sh" {
		t.Fatalf("setup turn dispatched %v", first)
	}

	// "run it again" names no script; the target comes from the last intent.
	eng.Turn(context.Background(), sess, "run it again")
	second := lastIntent(t, rec)
	if second.Label != intent.LabelRun {
		t.Fatalf("label = %v, want run", second.Label)
	}
	if got := second.Entity(intent.KindTarget); got != "backup.sh" {
		t.Errorf("inherited target = %q, want backup.sh", got)
	}
}

func TestTurnDeterministic(t *testing.T) {
	t.Parallel()

	const utterance = "run the security scan on all python files in shell_scripts"

	eng, rec := newTestEngine(t)
	eng.Turn(context.Background(), session.New(), utterance)
	first := lastIntent(t, rec)

	for i := 0; i < 20; i++ {
		eng2, rec2 := newTestEngine(t)
		eng2.Turn(context.Background(), session.New(), utterance)
		got := lastIntent(t, rec2)
		if got.Label != first.Label || got.Confidence != first.Confidence {
			t.Fatalf("iteration %d: %v != %v", i, got, first)
		}
		for kind, vs := range first.Entities {
			if len(got.Entities[kind]) != len(vs) || got.Entities[kind][0] != vs[0] {
				t.Fatalf("iteration %d: entities diverged for %s: %v != %v",
					i, kind, got.Entities[kind], vs)
			}
		}
	}
}

// failing is an annotator that always errors.
type failing struct{}

func (failing) Annotate(string) ([]annotate.Token, error) {
	return nil, context.DeadlineExceeded
}

func TestTurnDegradesWhenAnnotatorFails(t *testing.T) {
	t.Parallel()

	eng, rec := newTestEngine(t)
	eng.Annotator = failing{}
	sess := session.New()

	res := eng.Turn(context.Background(), sess, "list the files")
	if res.Outcome != dispatch.Success {
		t.Fatalf("outcome = %v (%q), want success via fallback", res.Outcome, res.Text)
	}
	if in := lastIntent(t, rec); in.Label != intent.LabelList {
		t.Errorf("label = %v, want list", in.Label)
	}
}

// panicking blows up on dispatch to prove the turn boundary holds.
type panicking struct{}

func (panicking) Handle(context.Context, intent.Intent) dispatch.Result {
	panic("handler bug")
}

func TestTurnNeverPanics(t *testing.T) {
	t.Parallel()

	table, err := dispatch.NewTable(panicking{})
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	eng := &Engine{
		Fallback: annotate.NewFallback(),
		Library:  intent.DefaultLibrary(),
		Weights:  intent.DefaultWeights,
		Resolver: intent.NewResolver(intent.DefaultResolverConfig()),
		Table:    table,
	}
	sess := session.New()

	res := eng.Turn(context.Background(), sess, "list files")
	if res.Outcome != dispatch.Failure {
		t.Errorf("outcome = %v, want contained failure", res.Outcome)
	}
	if sess.Turns() != 1 {
		t.Errorf("turns = %d, want the turn still counted", sess.Turns())
	}
}
