package review

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	quizdto "vocabuilder/internal/modules/quiz/dto"
	"vocabuilder/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Review(ctx context.Context) ([]quizdto.ReviewItem, error)
	Grade(ctx context.Context, word, choice string) (quizdto.CheckOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Items []quizdto.ReviewItem
	Err   error
}

type GradedMsg struct {
	Result quizdto.CheckOutput
	Err    error
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model walks through the due words of the active set one multiple-choice item at a time.
type Model struct {
	port    Port
	items   []quizdto.ReviewItem
	index   int
	cursor  int
	result  *quizdto.CheckOutput
	correct int
	err     error
	width   int
	height  int
}

func New(port Port) Model {
	return Model{port: port}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		items, err := m.port.Review(context.Background())
		return LoadedMsg{Items: items, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case LoadedMsg:
		m.items = msg.Items
		m.err = msg.Err
		m.index, m.cursor, m.correct = 0, 0, 0
		m.result = nil

	case GradedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.result = &msg.Result
		if msg.Result.Correct {
			m.correct++
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	item, ok := m.current()
	if !ok {
		if msg.String() == "r" {
			return m, m.Reload()
		}
		return m, nil
	}
	if m.result != nil {
		switch msg.String() {
		case "enter", "n", " ":
			m.index++
			m.cursor = 0
			m.result = nil
		case "r":
			return m, m.Reload()
		}
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(item.Choices)-1 {
			m.cursor++
		}
	case "enter":
		return m, m.gradeCmd(item, m.cursor)
	case "r":
		return m, m.Reload()
	default:
		if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 && n <= len(item.Choices) {
			m.cursor = n - 1
			return m, m.gradeCmd(item, m.cursor)
		}
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Review") + "\n\n")

	switch {
	case m.err != nil:
		sb.WriteString(theme.Muted.Render(m.err.Error()))
	case len(m.items) == 0:
		sb.WriteString(theme.Muted.Render("Nothing is due in this set. Press r to refresh."))
	case m.index >= len(m.items):
		sb.WriteString(fmt.Sprintf("Done: %d of %d correct.\n\n", m.correct, len(m.items)))
		sb.WriteString(theme.Muted.Render("r: start again"))
	default:
		item := m.items[m.index]
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("%d / %d", m.index+1, len(m.items))) + "\n\n")
		sb.WriteString(theme.Hot.Render(item.Word) + "\n\n")
		for i, choice := range item.Choices {
			line := fmt.Sprintf("%d. %s", i+1, choice)
			switch {
			case m.result != nil && choice == m.result.Definition:
				line = theme.Good.Render(line)
			case m.result != nil && i == m.cursor:
				line = theme.Bad.Render(line)
			case i == m.cursor:
				line = lipgloss.NewStyle().Foreground(theme.Lavender).Render("› " + line)
			default:
				line = "  " + line
			}
			sb.WriteString(line + "\n")
		}
		if m.result != nil {
			verdict := theme.Bad.Render("Not quite.")
			if m.result.Correct {
				verdict = theme.Good.Render("Correct!")
			}
			sb.WriteString("\n" + verdict + theme.Muted.Render("  enter: next"))
		} else {
			sb.WriteString("\n" + theme.Muted.Render("1-4 or ↑/↓ + enter: answer  r: refresh"))
		}
	}

	return lipgloss.NewStyle().Width(m.width).Height(m.height).Padding(1, 2).Render(sb.String())
}

func (m Model) current() (quizdto.ReviewItem, bool) {
	if m.index < 0 || m.index >= len(m.items) {
		return quizdto.ReviewItem{}, false
	}
	return m.items[m.index], true
}

func (m Model) gradeCmd(item quizdto.ReviewItem, choice int) tea.Cmd {
	return func() tea.Msg {
		result, err := m.port.Grade(context.Background(), item.Word, item.Choices[choice])
		return GradedMsg{Result: result, Err: err}
	}
}
