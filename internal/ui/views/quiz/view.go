package quiz

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	quizdto "vocabuilder/internal/modules/quiz/dto"
	apperrors "vocabuilder/internal/platform/errors"
	"vocabuilder/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Next(ctx context.Context) (quizdto.PromptOutput, error)
	Check(ctx context.Context, word, answer string) (quizdto.CheckOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type PromptMsg struct {
	Prompt quizdto.PromptOutput
	Err    error
}

type CheckedMsg struct {
	Result quizdto.CheckOutput
	Err    error
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model asks for the meaning of one word at a time, preferring words that are due.
type Model struct {
	port   Port
	input  textinput.Model
	prompt quizdto.PromptOutput
	result *quizdto.CheckOutput
	story  []string
	asked  int
	right  int
	err    error
	width  int
	height int
}

func New(port Port) Model {
	ti := textinput.New()
	ti.Placeholder = "type the meaning…"
	ti.CharLimit = 256
	return Model{port: port, input: ti}
}

func (m Model) Init() tea.Cmd {
	return m.NextPrompt()
}

func (m Model) NextPrompt() tea.Cmd {
	return func() tea.Msg {
		prompt, err := m.port.Next(context.Background())
		return PromptMsg{Prompt: prompt, Err: err}
	}
}

// Focus gives the answer field keyboard focus.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

// Typing reports whether the answer field holds keyboard focus.
func (m Model) Typing() bool {
	return m.input.Focused()
}

// SetStory shows a sample of words to build a story with.
func (m *Model) SetStory(words []string) {
	m.story = words
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-12, 10)
		return m, nil

	case PromptMsg:
		m.err = msg.Err
		m.result = nil
		m.input.SetValue("")
		if msg.Err == nil {
			m.prompt = msg.Prompt
		}
		return m, nil

	case CheckedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.result = &msg.Result
		m.asked++
		if msg.Result.Correct {
			m.right++
		}
		return m, nil

	case tea.KeyMsg:
		if !m.input.Focused() {
			switch msg.String() {
			case "i", "enter":
				return m, m.input.Focus()
			case "n":
				return m, m.NextPrompt()
			}
			return m, nil
		}
		switch msg.String() {
		case "esc":
			m.input.Blur()
			return m, nil
		case "enter":
			if m.result != nil {
				return m, m.NextPrompt()
			}
			if m.prompt.Word == "" {
				return m, m.NextPrompt()
			}
			return m, m.checkCmd(m.prompt.Word, m.input.Value())
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Quiz"))
	if m.asked > 0 {
		sb.WriteString(theme.Muted.Render("  " + strconv.Itoa(m.right) + "/" + strconv.Itoa(m.asked) + " correct"))
	}
	sb.WriteString("\n\n")

	switch {
	case errors.Is(m.err, apperrors.ErrNoActiveSet):
		sb.WriteString(theme.Muted.Render("Load a day with  :load <week> <day>  to start the quiz."))
	case m.err != nil:
		sb.WriteString(theme.Bad.Render(m.err.Error()))
	case m.prompt.Word == "":
		sb.WriteString(theme.Muted.Render("Press n for a word."))
	default:
		label := "random word"
		if m.prompt.Spaced {
			label = "spaced review · " + strconv.Itoa(m.prompt.Due) + " due"
		}
		sb.WriteString(theme.Muted.Render(label) + "\n\n")
		sb.WriteString(theme.Hot.Render(m.prompt.Word))
		if m.prompt.PartOfSpeech != "" {
			sb.WriteString(theme.Muted.Render("  (" + m.prompt.PartOfSpeech + ")"))
		}
		sb.WriteString("\n\n" + m.input.View() + "\n")
		if m.result != nil {
			verdict := theme.Bad.Render("Not quite.")
			if m.result.Correct {
				verdict = theme.Good.Render("Correct!")
			}
			sb.WriteString("\n" + verdict + " " + m.result.Definition + "\n")
			sb.WriteString(theme.Muted.Render("enter: next word"))
		} else if !m.input.Focused() {
			sb.WriteString("\n" + theme.Muted.Render("i: answer  n: skip"))
		} else {
			sb.WriteString("\n" + theme.Muted.Render("enter: check  esc: stop typing"))
		}
	}

	if len(m.story) > 0 {
		sb.WriteString("\n\n" + theme.Title.Render("Story builder") + "\n")
		sb.WriteString("Write a short story using: " + theme.Hot.Render(strings.Join(m.story, ", ")))
	}

	return lipgloss.NewStyle().Width(m.width).Height(m.height).Padding(1, 2).Render(sb.String())
}

func (m Model) checkCmd(word, answer string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.port.Check(context.Background(), word, answer)
		return CheckedMsg{Result: result, Err: err}
	}
}
