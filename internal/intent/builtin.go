// ABOUTME: Built-in intent patterns covering the terminal's command vocabulary
// ABOUTME: Trigger sequences stay minimal so entity extraction can read the rest of the utterance

package intent

// builtinPatterns returns the default pattern set. Weights are computed from
// constraint strictness at compile time.
func builtinPatterns() []Pattern {
	return []Pattern{
		// List
		{ID: "list.verb", Label: "list", Constraints: []Constraint{
			{LowerIn: []string{"list", "ls"}},
		}},
		{ID: "list.show-me", Label: "list", Constraints: []Constraint{
			{LowerIn: []string{"show", "display", "get"}},
			{LowerIn: []string{"me"}},
		}},
		{ID: "list.what-files", Label: "list", Constraints: []Constraint{
			{LowerIn: []string{"what"}},
			{LemmaIn: []string{"be", "have"}},
			{Op: "*"},
			{LemmaIn: []string{"file", "script", "available"}},
		}},

		// Run
		{ID: "run.verb", Label: "run", Constraints: []Constraint{
			{LowerIn: []string{"run", "execute", "launch", "start"}},
		}},
		{ID: "run.use-tool", Label: "run", Constraints: []Constraint{
			{LowerIn: []string{"use"}},
			{Op: "*"},
			{LemmaIn: []string{"script", "program", "tool"}},
		}},

		// Search
		{ID: "search.verb", Label: "search", Constraints: []Constraint{
			{LowerIn: []string{"search", "find", "locate", "grep"}},
		}},
		{ID: "search.look-for", Label: "search", Constraints: []Constraint{
			{LowerIn: []string{"look"}},
			{LowerIn: []string{"for"}},
		}},

		// Help
		{ID: "help.word", Label: "help", Constraints: []Constraint{
			{LowerIn: []string{"help", "usage", "manual"}},
		}},
		{ID: "help.how-to", Label: "help", Constraints: []Constraint{
			{LowerIn: []string{"how"}},
			{LowerIn: []string{"to", "do", "can"}},
		}},
		{ID: "help.what-can", Label: "help", Constraints: []Constraint{
			{LowerIn: []string{"what"}},
			{LowerIn: []string{"can"}},
			{LowerIn: []string{"i", "you", "this"}},
		}},

		// Organize
		{ID: "organize.verb", Label: "organize", Constraints: []Constraint{
			{LowerIn: []string{"organize", "organise", "sort", "arrange", "categorize"}},
		}},
		{ID: "organize.tidy", Label: "organize", Constraints: []Constraint{
			{LowerIn: []string{"tidy", "clean"}},
			{LowerIn: []string{"up"}},
		}},

		// Show
		{ID: "show.verb", Label: "show", Constraints: []Constraint{
			{LowerIn: []string{"show", "display", "view", "cat", "open", "read"}},
		}},

		// Create
		{ID: "create.verb", Label: "create", Constraints: []Constraint{
			{LowerIn: []string{"create", "make", "touch", "new", "add"}},
		}},

		// Delete
		{ID: "delete.verb", Label: "delete", Constraints: []Constraint{
			{LowerIn: []string{"delete", "remove", "trash", "rm", "erase"}},
		}},
		{ID: "delete.get-rid", Label: "delete", Constraints: []Constraint{
			{LowerIn: []string{"get"}},
			{LowerIn: []string{"rid"}},
			{LowerIn: []string{"of"}},
		}},

		// Rename
		{ID: "rename.verb", Label: "rename", Constraints: []Constraint{
			{LowerIn: []string{"rename"}},
		}},
		{ID: "rename.change-name", Label: "rename", Constraints: []Constraint{
			{LowerIn: []string{"change"}},
			{Op: "*"},
			{LowerIn: []string{"name"}},
		}},

		// Move
		{ID: "move.verb", Label: "move", Constraints: []Constraint{
			{LowerIn: []string{"move", "mv", "copy", "cp", "transfer"}},
		}},

		// Summarize
		{ID: "summarize.verb", Label: "summarize", Constraints: []Constraint{
			{LowerIn: []string{"summarize", "summarise", "summary", "tldr"}},
		}},
		{ID: "summarize.give-me", Label: "summarize", Constraints: []Constraint{
			{LowerIn: []string{"give"}},
			{LowerIn: []string{"me"}},
			{Op: "*"},
			{LowerIn: []string{"summary", "overview"}},
		}},

		// Chat
		{ID: "chat.greeting", Label: "chat", Constraints: []Constraint{
			{LowerIn: []string{"hi", "hello", "hey", "thanks", "thank"}},
		}},
		{ID: "chat.question", Label: "chat", Constraints: []Constraint{
			{LowerIn: []string{"who", "why", "when", "where"}},
		}},

		// Exit
		{ID: "exit.word", Label: "exit", Constraints: []Constraint{
			{LowerIn: []string{"exit", "quit", "bye", "goodbye"}},
		}},
		{ID: "exit.end-session", Label: "exit", Constraints: []Constraint{
			{LowerIn: []string{"end"}},
			{LowerIn: []string{"session"}},
		}},
	}
}
