// ABOUTME: Core types for intent recognition: Label enum, Entity, Candidate, Intent
// ABOUTME: Label is a closed variant set with Unknown as the terminal default

package intent

import (
	"fmt"
	"sort"
	"strings"
)

// Label identifies the recognized purpose of an utterance.
type Label int

const (
	LabelUnknown Label = iota // no pattern matched; routed to the fallback handler
	LabelList                 // list files or scripts
	LabelRun                  // execute a script
	LabelSearch               // search files or content
	LabelHelp                 // usage help
	LabelOrganize             // organize stray files into directories
	LabelShow                 // display a file
	LabelCreate               // create a file
	LabelDelete               // delete a file
	LabelRename               // rename a file
	LabelMove                 // move or copy a file
	LabelSummarize            // summarize a file
	LabelChat                 // conversational chit-chat
	LabelExit                 // end the session
)

var labelNames = map[Label]string{
	LabelUnknown:   "unknown",
	LabelList:      "list",
	LabelRun:       "run",
	LabelSearch:    "search",
	LabelHelp:      "help",
	LabelOrganize:  "organize",
	LabelShow:      "show",
	LabelCreate:    "create",
	LabelDelete:    "delete",
	LabelRename:    "rename",
	LabelMove:      "move",
	LabelSummarize: "summarize",
	LabelChat:      "chat",
	LabelExit:      "exit",
}

// String returns the human-readable name of the label.
func (l Label) String() string {
	if name, ok := labelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(l))
}

// ParseLabel maps a string to a Label. Unrecognized strings yield LabelUnknown
// and an error.
func ParseLabel(s string) (Label, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for l, name := range labelNames {
		if name == s {
			return l, nil
		}
	}
	return LabelUnknown, fmt.Errorf("unknown intent label: %q", s)
}

// Kind classifies an extracted entity.
type Kind string

const (
	KindTarget    Kind = "target"
	KindFile      Kind = "file"
	KindDirectory Kind = "directory"
	KindScope     Kind = "scope"
	KindFileType  Kind = "file_type"
	KindDate      Kind = "date"
	KindPerson    Kind = "person"
	KindGeneric   Kind = "generic"
)

// Entity is one extracted parameter value with its source token span.
type Entity struct {
	Kind  Kind
	Value string
	Start int // token index of the first source token
	End   int // one past the last source token
}

// Candidate is a provisional pattern match before scoring and resolution.
type Candidate struct {
	PatternID   string
	Label       Label
	Start       int // token index span [Start, End)
	End         int
	Specificity int
}

// SpanLen returns the number of tokens covered by the match.
func (c Candidate) SpanLen() int {
	return c.End - c.Start
}

// Intent is the resolved result of one turn. Entity kinds are unique keys;
// repeated extractions of the same kind merge into the value list.
type Intent struct {
	Label      Label
	Confidence float64
	Entities   map[Kind][]string
	Utterance  string
}

// NewIntent builds an Intent from extracted entities, merging repeats per kind.
func NewIntent(label Label, confidence float64, entities []Entity, utterance string) Intent {
	in := Intent{
		Label:      label,
		Confidence: confidence,
		Utterance:  utterance,
	}
	for _, e := range entities {
		in.addEntity(e.Kind, e.Value)
	}
	return in
}

func (in *Intent) addEntity(kind Kind, value string) {
	if in.Entities == nil {
		in.Entities = make(map[Kind][]string)
	}
	for _, v := range in.Entities[kind] {
		if v == value {
			return
		}
	}
	in.Entities[kind] = append(in.Entities[kind], value)
}

// Entity returns the first value of the given kind, or "" when unset.
func (in Intent) Entity(kind Kind) string {
	if vs := in.Entities[kind]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// Has reports whether at least one entity of the given kind was extracted.
func (in Intent) Has(kind Kind) bool {
	return len(in.Entities[kind]) > 0
}

// String renders the intent for debug output.
func (in Intent) String() string {
	kinds := make([]string, 0, len(in.Entities))
	for k := range in.Entities {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	parts := make([]string, 0, len(kinds))
	for _, k := range kinds {
		parts = append(parts, fmt.Sprintf("%s=%s", k, strings.Join(in.Entities[Kind(k)], ",")))
	}
	return fmt.Sprintf("intent(%s conf=%.2f %s)", in.Label, in.Confidence, strings.Join(parts, " "))
}
