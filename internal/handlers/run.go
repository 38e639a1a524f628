// ABOUTME: Run handler: locates a script by name and executes it
// ABOUTME: Timeout is handler-local and reported as an outcome, never a core fault

package handlers

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"superterm/internal/dispatch"
	"superterm/internal/intent"
	"superterm/internal/log"
)

// Runner executes workspace scripts.
type Runner struct {
	WS      *Workspace
	Timeout time.Duration // 0 means 30s
}

// Handle locates the requested script and runs it with the interpreter its
// extension implies.
func (r *Runner) Handle(ctx context.Context, in intent.Intent) dispatch.Result {
	name := in.Entity(intent.KindFile)
	if name == "" {
		name = in.Entity(intent.KindTarget)
	}
	if name == "" {
		return dispatch.Result{
			Text:    "Which script would you like to run?",
			Outcome: dispatch.Partial,
		}
	}

	path, ok := r.WS.Resolve(name)
	if !ok {
		path, ok = r.resolveLoose(name, in)
	}
	if !ok {
		return dispatch.Result{
			Text:    fmt.Sprintf("I couldn't find a script matching %q.", name),
			Outcome: dispatch.Failure,
		}
	}

	var cmd *exec.Cmd
	timeout := r.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".py":
		cmd = exec.CommandContext(runCtx, "python3", path)
	case ".sh", ".bash":
		cmd = exec.CommandContext(runCtx, "bash", path)
	default:
		return dispatch.Result{
			Text:    fmt.Sprintf("%s is not a runnable script (.py or .sh).", filepath.Base(path)),
			Outcome: dispatch.Failure,
		}
	}
	cmd.Dir = r.WS.Root

	log.Info("running %s", path)
	out, err := cmd.CombinedOutput()
	text := strings.TrimRight(string(out), "\n")
	if err != nil {
		if runCtx.Err() == context.DeadlineExceeded {
			return dispatch.Result{
				Text:    fmt.Sprintf("%s timed out after %s.", filepath.Base(path), timeout),
				Outcome: dispatch.Failure,
			}
		}
		msg := fmt.Sprintf("%s failed: %v", filepath.Base(path), err)
		if text != "" {
			msg += "\n" + text
		}
		return dispatch.Result{Text: msg, Outcome: dispatch.Failure}
	}

	msg := fmt.Sprintf("%s finished successfully.", filepath.Base(path))
	if text != "" {
		msg += "\n" + text
	}
	return dispatch.Result{Text: msg, Outcome: dispatch.Success}
}

// resolveLoose retries resolution with entity hints: a file-type narrows the
// extension, a multi-word target is squashed into an identifier-ish name.
func (r *Runner) resolveLoose(name string, in intent.Intent) (string, bool) {
	exts := extsForType(in.Entity(intent.KindFileType))
	squashed := strings.ReplaceAll(strings.ToLower(name), " ", "_")
	for _, candidate := range []string{squashed, strings.ReplaceAll(squashed, "_", "")} {
		if path, ok := r.WS.Resolve(candidate); ok && hasAnyExt(path, exts) {
			return path, true
		}
	}
	return "", false
}
