package console

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const banner = `vterm v0.1.0
Type 'help' for available commands.
Type 'exit' or press Ctrl+D to quit.
`

type tickMsg time.Time

type displayEntryType int

const (
	displayEntryCommand displayEntryType = iota
	displayEntryOutput
)

type displayEntry struct {
	entryType displayEntryType
	content   string
	prompt    string
	isErr     bool
}

type Model struct {
	session  *Session
	registry *Registry
	modes    Stack

	buffer   string
	cursor   int
	quitting bool
	cursorOn bool

	viewport viewport.Model
	ready    bool
	height   int

	displayHistory []displayEntry

	errStyle lipgloss.Style
}

func New(session *Session, registry *Registry) Model {
	session.attachRegistry(registry)
	return Model{
		session:  session,
		registry: registry,
		buffer:   "",
		cursor:   0,
		cursorOn: true,
		errStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Millisecond*500, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height

		// One line for the input row, one for the gap below the scrollback.
		viewportHeight := msg.Height - 2
		if viewportHeight < 1 {
			viewportHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width, viewportHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = viewportHeight
		}
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			if m.buffer != "" {
				m.pushCommandEntry(m.buffer + "^C")
				m.refreshViewport()
			}
			m.buffer = ""
			m.cursor = 0
			return m, nil
		case tea.KeyCtrlD:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m.handleLine(m.buffer)
		case tea.KeyBackspace:
			if m.cursor > 0 {
				m.buffer = m.buffer[:m.cursor-1] + m.buffer[m.cursor:]
				m.cursor--
			}
			return m, nil
		case tea.KeyLeft:
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case tea.KeyRight:
			if m.cursor < len(m.buffer) {
				m.cursor++
			}
			return m, nil
		case tea.KeyUp:
			if m.modes.Active() {
				return m, nil
			}
			m.session.StartHistoryNavigation(m.buffer)
			if historyCmd := m.session.NavigateHistory(true); historyCmd != "" || m.session.IsInHistoryMode() {
				m.buffer = historyCmd
				m.cursor = len(m.buffer)
			}
			return m, nil
		case tea.KeyDown:
			if m.modes.Active() {
				return m, nil
			}
			if m.session.IsInHistoryMode() {
				m.buffer = m.session.NavigateHistory(false)
				m.cursor = len(m.buffer)
			}
			return m, nil
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		case tea.KeySpace:
			m.buffer = m.buffer[:m.cursor] + " " + m.buffer[m.cursor:]
			m.cursor++
			return m, nil
		default:
			if msg.Type == tea.KeyRunes {
				text := msg.String()
				text = strings.ReplaceAll(text, "\r", "")
				text = strings.ReplaceAll(text, "\n", " ")
				text = strings.ReplaceAll(text, "\t", " ")
				m.buffer = m.buffer[:m.cursor] + text + m.buffer[m.cursor:]
				m.cursor += len(text)
			}
			return m, nil
		}

	case tickMsg:
		m.cursorOn = !m.cursorOn
		return m, tea.Tick(time.Millisecond*500, func(t time.Time) tea.Msg {
			return tickMsg(t)
		})
	}

	return m, nil
}

// handleLine routes one raw input line: to the top modal frame when the
// stack is non-empty, otherwise through the command registry.
func (m Model) handleLine(line string) (tea.Model, tea.Cmd) {
	m.buffer = ""
	m.cursor = 0

	if m.modes.Active() {
		m.pushCommandEntry(line)
		result := m.modes.HandleLine(line)
		return m.applyResult(result)
	}

	command := strings.TrimSpace(line)
	if command == "" {
		return m, nil
	}

	log.Info("Command received", "command", command)

	m.session.AddToHistory(command)
	m.pushCommandEntry(command)

	fields := strings.Fields(command)
	result := m.registry.Dispatch(m.session, fields[0], fields[1:])
	if result.Push != nil {
		m.modes.Push(result.Push)
	}
	return m.applyResult(result)
}

func (m Model) applyResult(result Result) (tea.Model, tea.Cmd) {
	if result.Clear {
		m.displayHistory = nil
	}
	if result.Output != "" {
		m.displayHistory = append(m.displayHistory, displayEntry{
			entryType: displayEntryOutput,
			content:   result.Output,
			isErr:     result.IsErr,
		})
	}
	m.refreshViewport()
	if result.Quit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) pushCommandEntry(content string) {
	m.displayHistory = append(m.displayHistory, displayEntry{
		entryType: displayEntryCommand,
		content:   content,
		prompt:    m.modes.Prompt(m.session.GetPrompt()),
	})
}

func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderHistory())
	m.viewport.GotoBottom()
}

func (m *Model) renderHistory() string {
	var b strings.Builder
	b.WriteString(banner)
	b.WriteString("\n")

	for _, entry := range m.displayHistory {
		switch entry.entryType {
		case displayEntryCommand:
			b.WriteString(entry.prompt)
			b.WriteString(entry.content)
			b.WriteString("\n")
		case displayEntryOutput:
			content := entry.content
			if entry.isErr {
				content = m.errStyle.Render(content)
			}
			b.WriteString(content)
			if !strings.HasSuffix(content, "\n") {
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

func (m Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}
	if !m.ready {
		return banner
	}

	var b strings.Builder
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	b.WriteString(m.modes.Prompt(m.session.GetPrompt()))

	beforeCursor := m.buffer[:m.cursor]
	afterCursor := m.buffer[m.cursor:]

	b.WriteString(beforeCursor)
	if m.cursorOn {
		b.WriteString(m.session.GetActiveCursorSymbol())
	} else {
		b.WriteString(m.session.GetInactiveCursorSymbol())
	}
	b.WriteString(afterCursor)
	b.WriteString("\n")

	return b.String()
}
