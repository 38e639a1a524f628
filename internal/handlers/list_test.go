// ABOUTME: Tests for the list and organize handlers over temp workspaces

package handlers

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"superterm/internal/dispatch"
	"superterm/internal/intent"
)

func TestListerWholeWorkspace(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t)
	seed(t, ws, "python_scripts/backup.py", "x")
	seed(t, ws, "docs/guide.md", "x")
	l := &Lister{WS: ws}

	res := l.Handle(context.Background(), fileIntent(intent.LabelList, nil))
	if res.Outcome != dispatch.Success {
		t.Fatalf("outcome = %v (%q), want success", res.Outcome, res.Text)
	}
	for _, want := range []string{"backup.py", "guide.md"} {
		if !strings.Contains(res.Text, want) {
			t.Errorf("listing %q missing %s", res.Text, want)
		}
	}
}

func TestListerFileTypeFilter(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t)
	seed(t, ws, "python_scripts/backup.py", "x")
	seed(t, ws, "shell_scripts/deploy.sh", "x")
	l := &Lister{WS: ws}

	res := l.Handle(context.Background(), fileIntent(intent.LabelList,
		map[intent.Kind][]string{intent.KindFileType: {"python"}}))
	if !strings.Contains(res.Text, "backup.py") {
		t.Errorf("python file missing from %q", res.Text)
	}
	if strings.Contains(res.Text, "deploy.sh") {
		t.Errorf("shell file leaked into python listing %q", res.Text)
	}
}

func TestListerDirectory(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t)
	seed(t, ws, "docs/guide.md", "x")
	seed(t, ws, "python_scripts/backup.py", "x")
	l := &Lister{WS: ws}

	res := l.Handle(context.Background(), fileIntent(intent.LabelList,
		map[intent.Kind][]string{intent.KindDirectory: {"docs"}}))
	if !strings.Contains(res.Text, "guide.md") || strings.Contains(res.Text, "backup.py") {
		t.Errorf("directory listing wrong: %q", res.Text)
	}

	res = l.Handle(context.Background(), fileIntent(intent.LabelList,
		map[intent.Kind][]string{intent.KindDirectory: {"absent"}}))
	if res.Outcome != dispatch.Failure {
		t.Errorf("unknown directory outcome = %v, want failure", res.Outcome)
	}
}

func TestListerLatestOrdersByModTime(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t)
	older := seed(t, ws, "text_files/older.txt", "x")
	newer := seed(t, ws, "text_files/newer.txt", "x")
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(older, past, past); err != nil {
		t.Fatal(err)
	}
	_ = newer
	l := &Lister{WS: ws}

	res := l.Handle(context.Background(), fileIntent(intent.LabelList,
		map[intent.Kind][]string{intent.KindScope: {"latest"}}))
	if strings.Index(res.Text, "newer.txt") > strings.Index(res.Text, "older.txt") {
		t.Errorf("latest ordering wrong: %q", res.Text)
	}
}

func TestListerEmpty(t *testing.T) {
	t.Parallel()

	l := &Lister{WS: newWorkspace(t)}
	res := l.Handle(context.Background(), fileIntent(intent.LabelList, nil))
	if res.Outcome != dispatch.Success || !strings.Contains(res.Text, "No matching files") {
		t.Errorf("empty listing = %v (%q)", res.Outcome, res.Text)
	}
}

func TestOrganizerMovesStrays(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t)
	seed(t, ws, "stray.py", "x")
	seed(t, ws, "notes.md", "x")
	seed(t, ws, "keep.zip", "x")
	o := &Organizer{WS: ws}

	res := o.Handle(context.Background(), fileIntent(intent.LabelOrganize, nil))
	if res.Outcome != dispatch.Success {
		t.Fatalf("outcome = %v (%q), want success", res.Outcome, res.Text)
	}
	if _, err := os.Stat(filepath.Join(ws.Root, "python_scripts", "stray.py")); err != nil {
		t.Errorf("stray.py not filed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(ws.Root, "docs", "notes.md")); err != nil {
		t.Errorf("notes.md not filed: %v", err)
	}
	// Uncategorized files stay put.
	if _, err := os.Stat(filepath.Join(ws.Root, "keep.zip")); err != nil {
		t.Errorf("keep.zip moved unexpectedly: %v", err)
	}
}

func TestOrganizerSkipsCollisions(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t)
	seed(t, ws, "dup.txt", "top")
	seed(t, ws, "text_files/dup.txt", "filed")
	o := &Organizer{WS: ws}

	res := o.Handle(context.Background(), fileIntent(intent.LabelOrganize, nil))
	if res.Outcome != dispatch.Partial {
		t.Fatalf("outcome = %v (%q), want partial on collision", res.Outcome, res.Text)
	}
	data, _ := os.ReadFile(filepath.Join(ws.Root, "text_files", "dup.txt"))
	if string(data) != "filed" {
		t.Error("collision overwrote the filed copy")
	}
}

func TestOrganizerNothingToDo(t *testing.T) {
	t.Parallel()

	o := &Organizer{WS: newWorkspace(t)}
	res := o.Handle(context.Background(), fileIntent(intent.LabelOrganize, nil))
	if res.Outcome != dispatch.Success || !strings.Contains(res.Text, "already organized") {
		t.Errorf("clean workspace = %v (%q)", res.Outcome, res.Text)
	}
}
