package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"tracker/internal/types"
)

const tickInterval = time.Second

// Tracker is the slice of the session context the UI drives. Satisfied by
// *track.Context and by test doubles.
type Tracker interface {
	ListViewItems(ctx context.Context) ([]types.ViewItem, error)
	RunningViewItem(ctx context.Context) (types.ViewItem, bool, error)
	PushableModels(ctx context.Context) (types.SyncCounts, error)
	Start(ctx context.Context, description string) (*types.TimeEntry, error)
	Stop(ctx context.Context) (*types.TimeEntry, error)
	Continue(ctx context.Context, guid string) (*types.TimeEntry, error)
	Sync(ctx context.Context, full bool) error
}

type refreshedMsg struct {
	items      []types.ViewItem
	running    types.ViewItem
	hasRunning bool
	dirty      int
	err        error
}

type actionDoneMsg struct {
	status string
	err    error
}

type syncDoneMsg struct{ err error }

type tickMsg time.Time

// Model is the status screen: the running entry ticking live, recent
// entries below it, and a dirty badge while changes wait for a push.
type Model struct {
	tracker Tracker
	spin    spinner.Model

	items      []types.ViewItem
	running    types.ViewItem
	hasRunning bool
	dirty      int
	cursor     int

	width  int
	height int

	syncing bool
	status  string
	failed  bool

	// entering is set while the description prompt for a new entry is open.
	entering bool
	draft    string

	copyText func(string) error
}

// Run starts the UI event loop and blocks until the user quits.
func Run(tracker Tracker) error {
	program := tea.NewProgram(NewModel(tracker), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func NewModel(tracker Tracker) *Model {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	return &Model{
		tracker:  tracker,
		spin:     spin,
		width:    80,
		height:   24,
		copyText: copyToClipboard,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.refreshCmd(), tickCmd())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		// Re-read the running entry so its live duration advances once a
		// second, not only after a key press or sync.
		return m, tea.Batch(m.refreshCmd(), tickCmd())
	case refreshedMsg:
		return m.applyRefresh(msg), nil
	case actionDoneMsg:
		m.setStatus(msg.status, msg.err)
		return m, m.refreshCmd()
	case syncDoneMsg:
		m.syncing = false
		m.setStatus("synced", msg.err)
		return m, m.refreshCmd()
	case spinner.TickMsg:
		if !m.syncing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.entering {
		return m.handlePromptKey(msg)
	}
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "j", "down":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
		return m, nil
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "n":
		m.entering = true
		m.draft = ""
		return m, nil
	case "x":
		return m, m.stopCmd()
	case "enter", "c":
		if item, ok := m.selected(); ok {
			return m, m.continueCmd(item.GUID)
		}
		return m, nil
	case "y":
		if item, ok := m.selected(); ok {
			if err := m.copyText(item.GUID); err != nil {
				m.setStatus("", err)
			} else {
				m.setStatus("copied "+item.GUID, nil)
			}
		}
		return m, nil
	case "r":
		if m.syncing {
			return m, nil
		}
		m.syncing = true
		m.setStatus("syncing", nil)
		return m, tea.Batch(m.spin.Tick, m.syncCmd())
	}
	return m, nil
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.entering = false
		m.draft = ""
		return m, nil
	case tea.KeyEnter:
		description := strings.TrimSpace(m.draft)
		m.entering = false
		m.draft = ""
		return m, m.startCmd(description)
	case tea.KeyBackspace:
		if m.draft != "" {
			runes := []rune(m.draft)
			m.draft = string(runes[:len(runes)-1])
		}
		return m, nil
	case tea.KeySpace:
		m.draft += " "
		return m, nil
	case tea.KeyRunes:
		m.draft += string(msg.Runes)
		return m, nil
	}
	return m, nil
}

func (m *Model) applyRefresh(msg refreshedMsg) *Model {
	if msg.err != nil {
		m.setStatus("", msg.err)
		return m
	}
	m.items = msg.items
	m.running = msg.running
	m.hasRunning = msg.hasRunning
	m.dirty = msg.dirty
	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	return m
}

func (m *Model) selected() (types.ViewItem, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return types.ViewItem{}, false
	}
	return m.items[m.cursor], true
}

func (m *Model) setStatus(status string, err error) {
	if err != nil {
		m.status = err.Error()
		m.failed = true
		return
	}
	m.status = status
	m.failed = false
}

func (m *Model) refreshCmd() tea.Cmd {
	tracker := m.tracker
	return func() tea.Msg {
		ctx := context.Background()
		items, err := tracker.ListViewItems(ctx)
		if err != nil {
			return refreshedMsg{err: err}
		}
		running, hasRunning, err := tracker.RunningViewItem(ctx)
		if err != nil {
			return refreshedMsg{err: err}
		}
		counts, err := tracker.PushableModels(ctx)
		if err != nil {
			return refreshedMsg{err: err}
		}
		return refreshedMsg{
			items:      items,
			running:    running,
			hasRunning: hasRunning,
			dirty:      counts.TimeEntries,
		}
	}
}

func (m *Model) startCmd(description string) tea.Cmd {
	tracker := m.tracker
	return func() tea.Msg {
		entry, err := tracker.Start(context.Background(), description)
		if err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{status: "started " + entry.GUID}
	}
}

func (m *Model) stopCmd() tea.Cmd {
	tracker := m.tracker
	return func() tea.Msg {
		entry, err := tracker.Stop(context.Background())
		if err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{status: "stopped " + entry.GUID}
	}
}

func (m *Model) continueCmd(guid string) tea.Cmd {
	tracker := m.tracker
	return func() tea.Msg {
		entry, err := tracker.Continue(context.Background(), guid)
		if err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{status: "continued as " + entry.GUID}
	}
}

func (m *Model) syncCmd() tea.Cmd {
	tracker := m.tracker
	return func() tea.Msg {
		return syncDoneMsg{err: tracker.Sync(context.Background(), false)}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("tracker"))
	if m.dirty > 0 {
		b.WriteString("  " + dirtyBadgeStyle.Render(fmt.Sprintf(" %d unsynced ", m.dirty)))
	}
	if m.syncing {
		b.WriteString("  " + m.spin.View())
	}
	b.WriteString("\n\n")

	if m.hasRunning {
		line := fmt.Sprintf("▶ %s  %s", m.running.Duration, m.running.Description)
		b.WriteString(runningStyle.Render(truncate(line, m.width)))
	} else {
		b.WriteString(statusStyle.Render("no time entry is tracking"))
	}
	b.WriteString("\n\n")

	for i, item := range m.items {
		b.WriteString(m.entryLine(i, item))
		b.WriteString("\n")
	}
	if len(m.items) == 0 {
		b.WriteString(statusStyle.Render("no entries yet"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.entering {
		b.WriteString(promptStyle.Render("description: "))
		b.WriteString(m.draft + "▏")
		b.WriteString("\n")
	} else if m.status != "" {
		style := statusStyle
		if m.failed {
			style = errorStyle
		}
		b.WriteString(style.Render(truncate(m.status, m.width)))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("n new · x stop · enter continue · y copy guid · r sync · q quit"))
	return b.String()
}

func (m *Model) entryLine(index int, item types.ViewItem) string {
	duration := runewidth.FillLeft(item.Duration, 9)
	description := item.Description
	if description == "" {
		description = "(no description)"
	}
	line := fmt.Sprintf("%s  %s  %s",
		durationStyle.Render(duration),
		truncate(description, maxDescriptionWidth(m.width)),
		projectStyle.Render(item.Project))
	if index == m.cursor {
		return selectedStyle.Render("› ") + line
	}
	return entryStyle.Render("  ") + line
}

func maxDescriptionWidth(width int) int {
	if width <= 40 {
		return 20
	}
	return width - 30
}

func truncate(text string, width int) string {
	if width <= 0 {
		return text
	}
	return ansi.Truncate(text, width, "…")
}
