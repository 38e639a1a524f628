// ABOUTME: Script workspace: category directories and file lookup
// ABOUTME: Exact name resolution first, fuzzy basename matching second

package handlers

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// categoryDirs maps file extensions to the directory that owns them.
var categoryDirs = map[string]string{
	".py":   "python_scripts",
	".sh":   "shell_scripts",
	".bash": "shell_scripts",
	".md":   "docs",
	".txt":  "text_files",
}

// fileTypeExts maps canonical file-type names to extensions.
var fileTypeExts = map[string][]string{
	"python":   {".py"},
	"shell":    {".sh", ".bash"},
	"markdown": {".md"},
	"text":     {".txt"},
	"go":       {".go"},
	"json":     {".json"},
	"yaml":     {".yaml", ".yml"},
}

// Workspace is the directory tree the handlers operate on.
type Workspace struct {
	Root string
}

// NewWorkspace returns a workspace rooted at root.
func NewWorkspace(root string) *Workspace {
	return &Workspace{Root: root}
}

// EnsureLayout creates the category directories.
func (w *Workspace) EnsureLayout() error {
	seen := map[string]bool{}
	for _, dir := range categoryDirs {
		if seen[dir] {
			continue
		}
		seen[dir] = true
		if err := os.MkdirAll(filepath.Join(w.Root, dir), 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return nil
}

// DirFor returns the category directory for a file name, or the root when
// the extension has no category.
func (w *Workspace) DirFor(name string) string {
	if dir, ok := categoryDirs[strings.ToLower(filepath.Ext(name))]; ok {
		return filepath.Join(w.Root, dir)
	}
	return w.Root
}

// Within reports whether path stays inside the workspace root.
func (w *Workspace) Within(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	root, err := filepath.Abs(w.Root)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Files returns all regular files under the category directories plus the
// workspace root's top level, sorted by path.
func (w *Workspace) Files() []string {
	var out []string
	seenDir := map[string]bool{}
	dirs := []string{w.Root}
	for _, d := range categoryDirs {
		full := filepath.Join(w.Root, d)
		if !seenDir[full] {
			seenDir[full] = true
			dirs = append(dirs, full)
		}
	}
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
				continue
			}
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(out)
	return out
}

// Resolve finds a file by name: exact basename match first, then the best
// fuzzy match. The second return value is false when nothing plausible exists.
func (w *Workspace) Resolve(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	// A path that exists as given wins outright, as long as it stays inside.
	direct := name
	if !filepath.IsAbs(direct) {
		direct = filepath.Join(w.Root, name)
	}
	if st, err := os.Stat(direct); err == nil && !st.IsDir() && w.Within(direct) {
		return direct, true
	}

	files := w.Files()
	for _, f := range files {
		if filepath.Base(f) == name {
			return f, true
		}
	}

	bases := make([]string, len(files))
	for i, f := range files {
		bases[i] = filepath.Base(f)
	}
	matches := fuzzy.Find(name, bases)
	if len(matches) == 0 {
		return "", false
	}
	return files[matches[0].Index], true
}

// extsForType returns the extensions of a canonical file-type name, nil when
// unknown.
func extsForType(fileType string) []string {
	return fileTypeExts[strings.ToLower(fileType)]
}

func hasAnyExt(name string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
