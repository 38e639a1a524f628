// ABOUTME: File management handlers: create, delete, rename, move
// ABOUTME: All mutations stay inside the workspace; anything outside is refused

package handlers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"superterm/internal/dispatch"
	"superterm/internal/intent"
)

// fileTemplates provides starter content per extension, keyed by extension.
var fileTemplates = map[string]string{
	".py": "#!/usr/bin/env python3\n\"\"\"TODO: describe this script.\"\"\"\n\n\ndef main():\n    pass\n\n\nif __name__ == \"__main__\":\n    main()\n",
	".sh": "#!/usr/bin/env bash\nset -euo pipefail\n\n",
	".md": "# Title\n\n",
}

// Creator creates files in their category directory.
type Creator struct {
	WS *Workspace
}

// Handle creates the named file with starter content for known extensions.
func (c *Creator) Handle(_ context.Context, in intent.Intent) dispatch.Result {
	name := in.Entity(intent.KindFile)
	if name == "" {
		if t := in.Entity(intent.KindTarget); t != "" {
			name = strings.ReplaceAll(strings.ToLower(t), " ", "_")
			if exts := extsForType(in.Entity(intent.KindFileType)); len(exts) > 0 {
				name += exts[0]
			} else if !strings.Contains(name, ".") {
				name += ".txt"
			}
		}
	}
	if name == "" {
		return dispatch.Result{Text: "What file would you like to create?", Outcome: dispatch.Partial}
	}

	path := filepath.Join(c.WS.DirFor(name), filepath.Base(name))
	if _, err := os.Stat(path); err == nil {
		return dispatch.Result{
			Text:    fmt.Sprintf("%s already exists; not overwriting it.", relTo(c.WS.Root, path)),
			Outcome: dispatch.Failure,
		}
	}

	content := fileTemplates[strings.ToLower(filepath.Ext(name))]
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return dispatch.Result{Text: fmt.Sprintf("Creating %s: %v", name, err), Outcome: dispatch.Failure}
	}
	return dispatch.Result{
		Text:    fmt.Sprintf("Created %s.", relTo(c.WS.Root, path)),
		Outcome: dispatch.Success,
	}
}

// Deleter removes workspace files.
type Deleter struct {
	WS *Workspace
}

// Handle deletes the named file if it resolves inside the workspace.
func (d *Deleter) Handle(_ context.Context, in intent.Intent) dispatch.Result {
	name := in.Entity(intent.KindFile)
	if name == "" {
		name = in.Entity(intent.KindTarget)
	}
	if name == "" {
		return dispatch.Result{Text: "Which file should I delete?", Outcome: dispatch.Partial}
	}

	path, ok := d.WS.Resolve(name)
	if !ok || !d.WS.Within(path) {
		return dispatch.Result{
			Text:    fmt.Sprintf("I couldn't find %q in the workspace.", name),
			Outcome: dispatch.Failure,
		}
	}
	if err := os.Remove(path); err != nil {
		return dispatch.Result{Text: fmt.Sprintf("Deleting %s: %v", name, err), Outcome: dispatch.Failure}
	}
	return dispatch.Result{
		Text:    fmt.Sprintf("Deleted %s.", relTo(d.WS.Root, path)),
		Outcome: dispatch.Success,
	}
}

// Renamer renames a file to a second given name.
type Renamer struct {
	WS *Workspace
}

// Handle renames the first named file to the second. Both names must be
// present in the utterance ("rename a.py to b.py").
func (r *Renamer) Handle(_ context.Context, in intent.Intent) dispatch.Result {
	names := in.Entities[intent.KindFile]
	if len(names) < 2 {
		return dispatch.Result{
			Text:    "Tell me both names, like: rename old_name.py to new_name.py",
			Outcome: dispatch.Partial,
		}
	}

	src, ok := r.WS.Resolve(names[0])
	if !ok {
		return dispatch.Result{
			Text:    fmt.Sprintf("I couldn't find %q.", names[0]),
			Outcome: dispatch.Failure,
		}
	}
	dst := filepath.Join(filepath.Dir(src), filepath.Base(names[1]))
	if _, err := os.Stat(dst); err == nil {
		return dispatch.Result{
			Text:    fmt.Sprintf("%s already exists.", relTo(r.WS.Root, dst)),
			Outcome: dispatch.Failure,
		}
	}
	if err := os.Rename(src, dst); err != nil {
		return dispatch.Result{Text: fmt.Sprintf("Renaming: %v", err), Outcome: dispatch.Failure}
	}
	return dispatch.Result{
		Text:    fmt.Sprintf("Renamed %s to %s.", names[0], names[1]),
		Outcome: dispatch.Success,
	}
}

// Mover moves a file into a directory.
type Mover struct {
	WS *Workspace
}

// Handle moves the named file into the named directory.
func (m *Mover) Handle(_ context.Context, in intent.Intent) dispatch.Result {
	name := in.Entity(intent.KindFile)
	dir := in.Entity(intent.KindDirectory)
	if name == "" || dir == "" {
		return dispatch.Result{
			Text:    "Tell me the file and the directory, like: move notes.txt into docs",
			Outcome: dispatch.Partial,
		}
	}

	src, ok := m.WS.Resolve(name)
	if !ok {
		return dispatch.Result{Text: fmt.Sprintf("I couldn't find %q.", name), Outcome: dispatch.Failure}
	}
	dstDir := filepath.Join(m.WS.Root, dir)
	if st, err := os.Stat(dstDir); err != nil || !st.IsDir() {
		return dispatch.Result{Text: fmt.Sprintf("Directory %q not found.", dir), Outcome: dispatch.Failure}
	}
	dst := filepath.Join(dstDir, filepath.Base(src))
	if _, err := os.Stat(dst); err == nil {
		return dispatch.Result{
			Text:    fmt.Sprintf("%s already exists.", relTo(m.WS.Root, dst)),
			Outcome: dispatch.Failure,
		}
	}
	if err := os.Rename(src, dst); err != nil {
		return dispatch.Result{Text: fmt.Sprintf("Moving: %v", err), Outcome: dispatch.Failure}
	}
	return dispatch.Result{
		Text:    fmt.Sprintf("Moved %s into %s/.", filepath.Base(src), dir),
		Outcome: dispatch.Success,
	}
}

func relTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
