package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	librarydto "vocabuilder/internal/modules/library/dto"
	quizdto "vocabuilder/internal/modules/quiz/dto"
	sessiondto "vocabuilder/internal/modules/session/dto"
	apperrors "vocabuilder/internal/platform/errors"
	"vocabuilder/internal/ui/components"
	"vocabuilder/internal/ui/theme"
	quizview "vocabuilder/internal/ui/views/quiz"
	reviewview "vocabuilder/internal/ui/views/review"
	wordsview "vocabuilder/internal/ui/views/words"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type sessionPort interface {
	Load(ctx context.Context, week, day int) (sessiondto.ActiveSetOutput, error)
	Active(ctx context.Context) (sessiondto.ActiveSetOutput, error)
	Due(ctx context.Context) ([]librarydto.WordOutput, error)
	IngestFile(ctx context.Context, path string, enrich []string, autoLoad bool) (sessiondto.IngestOutput, error)
	Overview(ctx context.Context) (sessiondto.OverviewOutput, error)
	Export(ctx context.Context) (sessiondto.ExportOutput, error)
	Reset(ctx context.Context) (sessiondto.ResetOutput, error)
}

type quizPort interface {
	Next(ctx context.Context) (quizdto.PromptOutput, error)
	Check(ctx context.Context, word, answer string) (quizdto.CheckOutput, error)
	Review(ctx context.Context) ([]quizdto.ReviewItem, error)
	Grade(ctx context.Context, word, choice string) (quizdto.CheckOutput, error)
	Story(ctx context.Context, count int) (quizdto.StoryOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabWords tabID = iota
	tabReview
	tabQuiz
	tabCount
)

var tabLabels = [tabCount]string{
	"Words", "Review", "Quiz",
}

// ─── async messages ───────────────────────────────────────────────────────────

type activeLoadedMsg struct {
	active sessiondto.ActiveSetOutput
	due    int
	err    error
}

type loadedMsg struct {
	active sessiondto.ActiveSetOutput
	err    error
}

type ingestedMsg struct {
	out sessiondto.IngestOutput
	err error
}

type exportedMsg struct {
	out sessiondto.ExportOutput
	err error
}

type resetMsg struct {
	out sessiondto.ResetOutput
	err error
}

type overviewMsg struct {
	out sessiondto.OverviewOutput
	err error
}

type storyMsg struct {
	out quizdto.StoryOutput
	err error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Answer  key.Binding
	Next    key.Binding
	Refresh key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Answer:  key.NewBinding(key.WithKeys("1", "2", "3", "4", "i"), key.WithHelp("1-4/i", "answer")),
		Next:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh review")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Answer, k.Next, k.Refresh},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the active set
// summary, the help overlay and the command palette. Rendering is delegated
// to sub-views.
type Model struct {
	session sessionPort
	quiz    quizPort

	wordsView  wordsview.Model
	reviewView reviewview.Model
	quizView   quizview.Model

	activeTab    tabID
	keys         keyMap
	help         help.Model
	showHelp     bool
	palette      components.Palette
	active       sessiondto.ActiveSetOutput
	hasActive    bool
	due          int
	confirmReset bool
	status       string
	width        int
	height       int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(session sessionPort, quiz quizPort) Model {
	return Model{
		session:    session,
		quiz:       quiz,
		wordsView:  wordsview.New(session),
		reviewView: reviewview.New(quiz),
		quizView:   quizview.New(quiz),
		activeTab:  tabWords,
		keys:       defaultKeys(),
		help:       help.New(),
		palette:    components.NewPalette(),
		status:     "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.wordsView.Init(),
		m.reviewView.Init(),
		m.quizView.Init(),
		m.loadActiveCmd(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if _, isKey := msg.(tea.KeyMsg); isKey && m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case activeLoadedMsg:
		if msg.err != nil {
			m.hasActive = false
			if !errors.Is(msg.err, apperrors.ErrNoActiveSet) {
				m.status = "active set: " + msg.err.Error()
			}
		} else {
			m.hasActive = true
			m.active = msg.active
			m.due = msg.due
		}
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			m.status = "load failed: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("week %d day %d: %d words, %d new", msg.active.Week, msg.active.Day, len(msg.active.Words), msg.active.Stamped)
		return m, m.refreshAll()

	case ingestedMsg:
		if msg.err != nil {
			m.status = "ingest failed: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("ingested %d, skipped %d, library %d", msg.out.Inserted, msg.out.Skipped, msg.out.Total)
		return m, m.refreshAll()

	case exportedMsg:
		if msg.err != nil {
			m.status = "export failed: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("exported %d words to %s", msg.out.Words, msg.out.Path)
		}
		return m, nil

	case resetMsg:
		if msg.err != nil {
			m.status = "reset failed: " + msg.err.Error()
			return m, nil
		}
		m.status = "all data cleared"
		return m, m.refreshAll()

	case overviewMsg:
		if msg.err != nil {
			m.status = "weeks: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("%d words · %d weeks · %d per day", msg.out.Total, msg.out.Weeks, msg.out.PerDay)
		}
		return m, nil

	case storyMsg:
		if msg.err != nil {
			m.status = "story: " + msg.err.Error()
			return m, nil
		}
		m.quizView.SetStory(msg.out.Words)
		m.activeTab = tabQuiz
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case wordsview.LoadedMsg:
		var cmd tea.Cmd
		m.wordsView, cmd = m.wordsView.Update(msg)
		return m, cmd

	case reviewview.LoadedMsg, reviewview.GradedMsg:
		var cmd tea.Cmd
		m.reviewView, cmd = m.reviewView.Update(msg)
		if graded, ok := msg.(reviewview.GradedMsg); ok && graded.Err == nil {
			cmds = append(cmds, m.loadActiveCmd())
		}
		return m, tea.Batch(append(cmds, cmd)...)

	case quizview.PromptMsg, quizview.CheckedMsg:
		var cmd tea.Cmd
		m.quizView, cmd = m.quizView.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if m.confirmReset {
			m.confirmReset = false
			if msg.String() == "y" {
				m.status = "resetting…"
				return m, m.resetCmd()
			}
			m.status = "reset cancelled"
			return m, nil
		}

		if m.subViewTyping() {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			return m, m.palette.Open()
		}
	}

	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabWords:
		m.wordsView, tabCmd = m.wordsView.Update(msg)
	case tabReview:
		m.reviewView, tabCmd = m.reviewView.Update(msg)
	case tabQuiz:
		m.quizView, tabCmd = m.quizView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabWords:
		return m.wordsView.View()
	case tabReview:
		return m.reviewView.View()
	case tabQuiz:
		return m.quizView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "vocabuilder  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.hasActive {
		badge := fmt.Sprintf("● week %d day %d · %d due", m.active.Week, m.active.Day, m.due)
		left = theme.Hot.Render(badge) + "  " + left
	} else {
		left = theme.Muted.Render("○ no day loaded") + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "load":
		if len(parts) != 3 {
			m.status = "usage: load <week> <day>"
			return m, nil
		}
		week, errW := strconv.Atoi(parts[1])
		day, errD := strconv.Atoi(parts[2])
		if errW != nil || errD != nil {
			m.status = "week and day must be numbers"
			return m, nil
		}
		m.status = fmt.Sprintf("loading week %d day %d…", week, day)
		return m, m.loadCmd(week, day)

	case "ingest":
		path := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
		if path == "" {
			m.status = "usage: ingest <path>"
			return m, nil
		}
		m.status = "ingesting " + path + "…"
		return m, m.ingestCmd(path)

	case "export":
		return m, m.exportCmd()

	case "reset":
		m.confirmReset = true
		m.status = theme.Hot.Render("erase the library and all review history? press y to confirm")
		return m, nil

	case "quiz:next":
		m.activeTab = tabQuiz
		return m, tea.Batch(m.quizView.NextPrompt(), m.quizView.Focus())

	case "quiz:story":
		count := 0
		if len(parts) >= 2 {
			n, err := strconv.Atoi(parts[1])
			if err != nil {
				m.status = "usage: quiz:story [count]"
				return m, nil
			}
			count = n
		}
		return m, m.storyCmd(count)

	case "weeks":
		return m, m.overviewCmd()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// subViewTyping reports whether the active tab owns the keyboard,
// in which case global key bindings must yield to allow free typing.
func (m Model) subViewTyping() bool {
	switch m.activeTab {
	case tabWords:
		return m.wordsView.Filtering()
	case tabQuiz:
		return m.quizView.Typing()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.wordsView, _ = m.wordsView.Update(sz)
	m.reviewView, _ = m.reviewView.Update(sz)
	m.quizView, _ = m.quizView.Update(sz)
}

func (m Model) refreshAll() tea.Cmd {
	return tea.Batch(
		m.loadActiveCmd(),
		m.wordsView.Reload(),
		m.reviewView.Reload(),
		m.quizView.NextPrompt(),
	)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) loadActiveCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		active, err := m.session.Active(ctx)
		if err != nil {
			return activeLoadedMsg{err: err}
		}
		due, err := m.session.Due(ctx)
		return activeLoadedMsg{active: active, due: len(due), err: err}
	}
}

func (m Model) loadCmd(week, day int) tea.Cmd {
	return func() tea.Msg {
		active, err := m.session.Load(context.Background(), week, day)
		return loadedMsg{active: active, err: err}
	}
}

func (m Model) ingestCmd(path string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.IngestFile(context.Background(), path, nil, true)
		return ingestedMsg{out: out, err: err}
	}
}

func (m Model) exportCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.Export(context.Background())
		return exportedMsg{out: out, err: err}
	}
}

func (m Model) resetCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.Reset(context.Background())
		return resetMsg{out: out, err: err}
	}
}

func (m Model) overviewCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.Overview(context.Background())
		return overviewMsg{out: out, err: err}
	}
}

func (m Model) storyCmd(count int) tea.Cmd {
	return func() tea.Msg {
		out, err := m.quiz.Story(context.Background(), count)
		return storyMsg{out: out, err: err}
	}
}
