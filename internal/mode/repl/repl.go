// ABOUTME: Interactive turn-based REPL as a bubbletea program
// ABOUTME: One utterance per turn, processed synchronously; styled with lipgloss

package repl

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"superterm/internal/dispatch"
	"superterm/internal/engine"
	"superterm/internal/session"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	promptStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	echoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	partialStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

const prompt = "superterm> "

// Model is the bubbletea model for the interactive session.
type Model struct {
	eng      *engine.Engine
	sess     *session.Session
	degraded bool

	input    string
	cursor   int // byte offset into input
	history  []string
	width    int
	quitting bool
}

// New builds the interactive model. degraded notes that the NLP engine is off
// so the welcome banner can say so.
func New(eng *engine.Engine, sess *session.Session, degraded bool) Model {
	return Model{eng: eng, sess: sess, degraded: degraded, width: 80}
}

// Run starts the REPL and blocks until the session ends.
func Run(eng *engine.Engine, sess *session.Session, degraded bool) error {
	_, err := tea.NewProgram(New(eng, sess, degraded)).Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEnter:
		return m.submit()
	case tea.KeyBackspace:
		if m.cursor > 0 {
			_, size := lastRune(m.input[:m.cursor])
			m.input = m.input[:m.cursor-size] + m.input[m.cursor:]
			m.cursor -= size
		}
	case tea.KeyLeft:
		if m.cursor > 0 {
			_, size := lastRune(m.input[:m.cursor])
			m.cursor -= size
		}
	case tea.KeyRight:
		if m.cursor < len(m.input) {
			_, size := firstRune(m.input[m.cursor:])
			m.cursor += size
		}
	case tea.KeyCtrlU:
		m.input = m.input[m.cursor:]
		m.cursor = 0
	case tea.KeySpace:
		m.input = m.input[:m.cursor] + " " + m.input[m.cursor:]
		m.cursor++
	case tea.KeyRunes:
		s := string(msg.Runes)
		m.input = m.input[:m.cursor] + s + m.input[m.cursor:]
		m.cursor += len(s)
	}
	return m, nil
}

// submit processes the current input as one turn.
func (m Model) submit() (tea.Model, tea.Cmd) {
	utterance := strings.TrimSpace(m.input)
	m.input = ""
	m.cursor = 0
	if utterance == "" {
		return m, nil
	}

	m.history = append(m.history, echoStyle.Render(prompt+utterance))
	result := m.eng.Turn(context.Background(), m.sess, utterance)
	if result.Text != "" {
		m.history = append(m.history, styleFor(result).Render(result.Text))
	}
	if result.Quit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func styleFor(r dispatch.Result) lipgloss.Style {
	switch r.Outcome {
	case dispatch.Failure:
		return failStyle
	case dispatch.Partial:
		return partialStyle
	}
	return lipgloss.NewStyle()
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("superterm: natural language script management"))
	b.WriteString("\n")
	if m.degraded {
		b.WriteString(partialStyle.Render("NLP annotation off, using text-only matching"))
		b.WriteString("\n")
	}
	b.WriteString(echoStyle.Render("Type \"help\" for assistance or \"exit\" to quit."))
	b.WriteString("\n\n")

	for _, line := range m.history {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if m.quitting {
		return b.String()
	}

	b.WriteString(promptStyle.Render(prompt))
	b.WriteString(m.renderInput())
	return b.String()
}

// renderInput draws the input with a block cursor, truncated to the terminal
// width.
func (m Model) renderInput() string {
	before, after := m.input[:m.cursor], m.input[m.cursor:]
	cursorCell := " "
	if after != "" {
		r, size := firstRune(after)
		cursorCell = string(r)
		after = after[size:]
	}
	line := before + lipgloss.NewStyle().Reverse(true).Render(cursorCell) + after

	avail := m.width - runewidth.StringWidth(prompt) - 1
	if avail > 0 && runewidth.StringWidth(m.input) > avail {
		line = runewidth.Truncate(line, avail, "…")
	}
	return line
}

func firstRune(s string) (rune, int) {
	for _, r := range s {
		return r, len(string(r))
	}
	return 0, 0
}

func lastRune(s string) (rune, int) {
	var last rune
	for _, r := range s {
		last = r
	}
	if last == 0 {
		return 0, 0
	}
	return last, len(string(last))
}
