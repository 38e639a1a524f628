// ABOUTME: Tests for the one-shot print mode: argument vs stdin, outcomes, errors

package print

import (
	"context"
	"strings"
	"testing"

	"superterm/internal/annotate"
	"superterm/internal/dispatch"
	"superterm/internal/engine"
	"superterm/internal/handlers"
	"superterm/internal/intent"
)

func newEngine(t *testing.T) *engine.Engine {
	t.Helper()
	ws := handlers.NewWorkspace(t.TempDir())
	if err := ws.EnsureLayout(); err != nil {
		t.Fatal(err)
	}
	table, err := handlers.NewTable(ws, handlers.Options{NoColor: true})
	if err != nil {
		t.Fatal(err)
	}
	return &engine.Engine{
		Fallback: annotate.NewFallback(),
		Library:  intent.DefaultLibrary(),
		Weights:  intent.DefaultWeights,
		Resolver: intent.NewResolver(intent.DefaultResolverConfig()),
		Table:    table,
	}
}

func TestRunWithArgument(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	outcome, err := Run(context.Background(), newEngine(t), "list files", strings.NewReader(""), &out)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if outcome != dispatch.Success {
		t.Errorf("outcome = %v (%q), want success", outcome, out.String())
	}
	if out.String() == "" {
		t.Error("no response written")
	}
}

func TestRunReadsStdin(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	outcome, err := Run(context.Background(), newEngine(t), "", strings.NewReader("help\n"), &out)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if outcome != dispatch.Success {
		t.Errorf("outcome = %v (%q), want success", outcome, out.String())
	}
	if !strings.Contains(out.String(), "superterm") {
		t.Errorf("help text missing from %q", out.String())
	}
}

func TestRunEmptyUtterance(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	if _, err := Run(context.Background(), newEngine(t), "", strings.NewReader("  \n"), &out); err == nil {
		t.Error("expected error for empty utterance")
	}
}

func TestRunUnknownIsPartial(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	outcome, err := Run(context.Background(), newEngine(t), "xk2929 zzz qqq", strings.NewReader(""), &out)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if outcome != dispatch.Partial {
		t.Errorf("outcome = %v, want partial for unrecognized input", outcome)
	}
}
