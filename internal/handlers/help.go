// ABOUTME: Help handler: general and per-topic usage help in markdown
// ABOUTME: Rendered through glamour unless color is disabled

package handlers

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"superterm/internal/dispatch"
	"superterm/internal/intent"
)

const generalHelp = `# superterm

Natural-language script management. Say what you want; I'll figure out the rest.

## Commands

- **run** a script: ` + "`run the security scan`" + `
- **list** files: ` + "`show me all python scripts`" + `
- **search**: ` + "`find anything about passwords`" + `
- **show** a file: ` + "`open README.md`" + `
- **summarize**: ` + "`summarize the latest README`" + `
- **create / delete / rename / move** files
- **organize** stray files into their directories
- **help** [topic] for details, **exit** to quit
`

var topicHelp = map[string]string{
	"run": `# run

Executes Python or shell scripts from the workspace.

- ` + "`run backup.sh`" + `
- ` + "`run the security scan on all python files`" + `
`,
	"list": `# list

Lists workspace files, optionally scoped.

- ` + "`list python_scripts`" + `
- ` + "`show me all markdown files`" + `
`,
	"search": `# search

Searches filenames and file contents.

- ` + "`search for todo items`" + `
- ` + "`find scripts that handle encryption`" + `
`,
	"create": `# create

Creates a file in its category directory with starter content.

- ` + "`create data_processor.py`" + `
- ` + "`make a new shell script called backup`" + `
`,
	"delete": `# delete

Deletes a workspace file.

- ` + "`delete old_script.py`" + `
`,
	"organize": `# organize

Moves stray top-level files into python_scripts/, shell_scripts/, docs/ and
text_files/ by extension.

- ` + "`organize`" + ` or ` + "`tidy up this workspace`" + `
`,
}

// Helper serves usage help.
type Helper struct {
	NoColor bool
}

// Handle returns topic help when the intent names a known topic, general
// help otherwise.
func (h *Helper) Handle(_ context.Context, in intent.Intent) dispatch.Result {
	md := generalHelp
	if topic := strings.ToLower(in.Entity(intent.KindTarget)); topic != "" {
		if t, ok := topicHelp[topic]; ok {
			md = t
		} else {
			topics := make([]string, 0, len(topicHelp))
			for k := range topicHelp {
				topics = append(topics, k)
			}
			sort.Strings(topics)
			md = fmt.Sprintf("No help for %q. Topics: %s.\n\n%s", topic, strings.Join(topics, ", "), generalHelp)
		}
	}

	text := md
	if !h.NoColor {
		if rendered, err := renderMarkdown(md); err == nil {
			text = rendered
		}
	}
	return dispatch.Result{Text: strings.TrimRight(text, "\n"), Outcome: dispatch.Success}
}
