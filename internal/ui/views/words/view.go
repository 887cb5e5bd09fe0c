package words

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	librarydto "vocabuilder/internal/modules/library/dto"
	sessiondto "vocabuilder/internal/modules/session/dto"
	"vocabuilder/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Active(ctx context.Context) (sessiondto.ActiveSetOutput, error)
	Due(ctx context.Context) ([]librarydto.WordOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Active sessiondto.ActiveSetOutput
	Due    map[string]bool
	Err    error
}

// ─── list item ───────────────────────────────────────────────────────────────

type wordItem struct {
	word librarydto.WordOutput
	due  bool
}

func (i wordItem) Title() string {
	if i.due {
		return i.word.Word + " 🔁"
	}
	return i.word.Word
}

func (i wordItem) Description() string {
	if i.word.PartOfSpeech == "" {
		return i.word.Definition
	}
	return i.word.PartOfSpeech + " · " + i.word.Definition
}

func (i wordItem) FilterValue() string { return i.word.Word }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     Port
	list     list.Model
	preview  viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer
	loading  bool
	empty    string
	width    int
	height   int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Words"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	r, _ := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(0),
	)

	return Model{
		port:     port,
		list:     l,
		preview:  vp,
		spinner:  sp,
		renderer: r,
		loading:  true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

// Reload fetches the active set and its due words.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		active, err := m.port.Active(ctx)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		due, err := m.port.Due(ctx)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		dueSet := make(map[string]bool, len(due))
		for _, w := range due {
			dueSet[w.Word] = true
		}
		return LoadedMsg{Active: active, Due: dueSet}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case LoadedMsg:
		m.loading = false
		m.empty = ""
		if msg.Err != nil {
			m.empty = msg.Err.Error()
			cmds = append(cmds, m.list.SetItems(nil))
			m.preview.SetContent(theme.Muted.Render("Load a day with  :load <week> <day>"))
			return m, tea.Batch(cmds...)
		}
		m.list.Title = fmt.Sprintf("Week %d · Day %d", msg.Active.Week, msg.Active.Day)
		items := make([]list.Item, len(msg.Active.Words))
		for i, w := range msg.Active.Words {
			items[i] = wordItem{word: w, due: msg.Due[w.Word]}
		}
		cmds = append(cmds, m.list.SetItems(items))
		if len(items) == 0 {
			m.empty = "this day has no words"
		}
		m.preview.SetContent(m.renderDetail())

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			m.preview.SetContent(m.renderDetail())
			m.preview.GotoTop()
		}

		var vCmd tea.Cmd
		m.preview, vCmd = m.preview.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading words…")
	}

	listW := m.width * 4 / 10
	detailW := m.width - listW

	left := m.list.View()
	if m.empty != "" {
		left = theme.Title.Render("Words") + "\n\n" + theme.Muted.Render(m.empty)
	}
	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(left)

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.preview.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.preview.Width = detailW - 4
	m.preview.Height = m.height - 4
	if r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(max(m.preview.Width-2, 20)),
	); err == nil {
		m.renderer = r
	}
}

func (m Model) renderDetail() string {
	item, ok := m.list.SelectedItem().(wordItem)
	if !ok {
		return theme.Muted.Render("Select a word to see details")
	}
	card := wordCard(item.word, item.due)
	if m.renderer != nil {
		if out, err := m.renderer.Render(card); err == nil {
			return out
		}
	}
	return card
}

// wordCard is the markdown shown in the detail pane.
func wordCard(w librarydto.WordOutput, due bool) string {
	var sb strings.Builder
	sb.WriteString("# " + w.Word + "\n\n")
	var tags []string
	if w.PartOfSpeech != "" {
		tags = append(tags, "_"+w.PartOfSpeech+"_")
	}
	if due {
		tags = append(tags, "**due for review**")
	}
	if len(tags) > 0 {
		sb.WriteString(strings.Join(tags, " · ") + "\n\n")
	}
	sb.WriteString(w.Definition + "\n")

	field := func(label, value string) {
		if strings.TrimSpace(value) != "" {
			fmt.Fprintf(&sb, "- **%s:** %s\n", label, value)
		}
	}
	sb.WriteString("\n")
	field("Mnemonic", w.Mnemonic)
	field("Example", w.Sentence)
	field("Synonyms", strings.Trim(w.Synonyms+", "+w.MoreSynonyms, ", "))
	field("Level", w.Level)
	field("Story", w.StoryBuilder)
	field("Source", w.MnemonicSourceURL)
	return sb.String()
}
