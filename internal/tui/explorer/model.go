// ============================================================================
// meinZAHLWERK (mZW) - Big-Integer Toolkit
// ============================================================================
//
// Package:     explorer
// Description: Bubbletea REPL that sends each line to a calc workspace
// Author:      Mike Stoffels
// Created:     2026-10-06
// License:     MIT
// ============================================================================

package explorer

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DefaultHistoryLimit bounds the number of entries kept in the viewport
const DefaultHistoryLimit = 200

// Executor runs one command line. The local calc service and the remote
// Calculator client both satisfy it.
type Executor interface {
	Exec(line string) (string, error)
}

// ExecFunc adapts a function to Executor
type ExecFunc func(line string) (string, error)

// Exec calls f
func (f ExecFunc) Exec(line string) (string, error) { return f(line) }

// Config holds explorer configuration
type Config struct {
	Executor     Executor
	SessionID    string
	Target       string // "local" or the server address
	HistoryLimit int
}

// Model is the Bubbletea model of the explorer
type Model struct {
	// State
	width   int
	height  int
	ready   bool
	running bool

	// Components
	input    textinput.Model
	viewport viewport.Model

	// Session
	entries      []Entry
	history      []string
	historyIndex int // -1 while editing a new line
	draft        string

	exec    Executor
	session string
	target  string
	limit   int
}

// New creates a new explorer model
func New(cfg Config) Model {
	ti := textinput.New()
	ti.Placeholder = "tree insert 5 3 8   (help lists all commands)"
	ti.Prompt = IconPrompt
	ti.CharLimit = 4096
	ti.Focus()

	limit := cfg.HistoryLimit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	target := cfg.Target
	if target == "" {
		target = "local"
	}

	return Model{
		input:        ti,
		historyIndex: -1,
		exec:         cfg.Executor,
		session:      cfg.SessionID,
		target:       target,
		limit:        limit,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Entries returns the executed commands, oldest first
func (m Model) Entries() []Entry {
	return m.entries
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 2
		footerHeight := 6 // input box + status bar + help
		viewportHeight := max(msg.Height-headerHeight-footerHeight, 3)

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}
		m.input.Width = msg.Width - 8
		m.updateViewportContent()
		return m, nil

	case execResultMsg:
		m.running = false
		m.entries = append(m.entries, msg.entry)
		if len(m.entries) > m.limit {
			m.entries = m.entries[len(m.entries)-m.limit:]
		}
		m.updateViewportContent()
		m.viewport.GotoBottom()
		return m, nil
	}

	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "ctrl+l":
		m.entries = nil
		m.updateViewportContent()
		return m, nil

	case "pgup", "pgdown":
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case "up":
		if len(m.history) == 0 {
			return m, nil
		}
		if m.historyIndex == -1 {
			m.draft = m.input.Value()
			m.historyIndex = len(m.history) - 1
		} else if m.historyIndex > 0 {
			m.historyIndex--
		}
		m.input.SetValue(m.history[m.historyIndex])
		m.input.CursorEnd()
		return m, nil

	case "down":
		if m.historyIndex == -1 {
			return m, nil
		}
		if m.historyIndex < len(m.history)-1 {
			m.historyIndex++
			m.input.SetValue(m.history[m.historyIndex])
		} else {
			m.historyIndex = -1
			m.input.SetValue(m.draft)
		}
		m.input.CursorEnd()
		return m, nil

	case "enter":
		if m.running {
			return m, nil
		}
		line := strings.TrimSpace(m.input.Value())
		m.input.Reset()
		m.historyIndex = -1
		m.draft = ""
		if line == "" {
			return m, nil
		}
		switch line {
		case "quit", "exit":
			return m, tea.Quit
		case "clear":
			m.entries = nil
			m.updateViewportContent()
			return m, nil
		}
		if len(m.history) == 0 || m.history[len(m.history)-1] != line {
			m.history = append(m.history, line)
		}
		m.running = true
		return m, m.runExec(line)
	}

	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// runExec executes line off the update loop
func (m Model) runExec(line string) tea.Cmd {
	exec := m.exec
	return func() tea.Msg {
		start := time.Now()
		entry := Entry{Command: line}
		if exec == nil {
			entry.Err = fmt.Errorf("no workspace attached")
		} else {
			entry.Output, entry.Err = exec.Exec(line)
		}
		entry.Duration = time.Since(start)
		return execResultMsg{entry: entry}
	}
}

func (m *Model) updateViewportContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderEntries())
}

func (m Model) renderEntries() string {
	if len(m.entries) == 0 {
		return SubHeaderStyle.Render("Type a command, or help for the list of commands.")
	}
	var b strings.Builder
	for i, e := range m.entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(CommandStyle.Render(IconPrompt + e.Command))
		b.WriteString("\n")
		switch {
		case e.Err != nil:
			b.WriteString(ErrorStyle.Render(IconError + e.Err.Error()))
		case e.Output == "":
			b.WriteString(OkStyle.Render(IconOk + "ok"))
		default:
			b.WriteString(OutputStyle.Render(e.Output))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// View implements tea.Model
func (m Model) View() string {
	if !m.ready {
		return "Starting explorer..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(HistoryPanelStyle.Width(m.width - 2).Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(InputStyle.Width(m.width - 2).Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.renderHelpBar())
	return b.String()
}

func (m Model) renderHeader() string {
	logo := LogoStyle.Render(Logo)
	sub := SubHeaderStyle.Render("heaps, trees, arrays, grids and towers of big integers")
	return lipgloss.JoinHorizontal(lipgloss.Top, logo, "  ", sub)
}

func (m Model) renderStatusBar() string {
	state := "ready"
	if m.running {
		state = "running..."
	}
	session := m.session
	if len(session) > 8 {
		session = session[:8]
	}
	return StatusBarStyle.Render(fmt.Sprintf("%s | session %s | %d commands | %s",
		m.target, session, len(m.entries), state))
}

func (m Model) renderHelpBar() string {
	items := []struct{ key, desc string }{
		{"enter", "run"},
		{"↑/↓", "history"},
		{"pgup/pgdn", "scroll"},
		{"ctrl+l", "clear"},
		{"esc", "quit"},
	}
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = HelpKeyStyle.Render(it.key) + " " + HelpDescStyle.Render(it.desc)
	}
	return strings.Join(parts, "  ")
}

// Run starts the explorer TUI
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
