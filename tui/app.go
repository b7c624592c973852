package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/linanwx/chatwidget/widget"
)

const (
	defaultLogRatio = 0.3
	defaultTitle    = "Chat"
)

var (
	separatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	titleStyle     = lipgloss.NewStyle().Bold(true).Reverse(true).Padding(0, 1)
	launcherStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
)

// Options tunes the App.
type Options struct {
	Title    string
	Prompt   string
	ShowLogs bool
}

// App is the root bubbletea model. It owns the widget and maps keys and
// request results onto widget operations.
type App struct {
	widget *widget.Widget
	ctx    context.Context

	logPanel   *LogPanel
	chatPanel  *ChatPanel
	inputPanel *InputPanel
	keys       KeyMap
	help       help.Model

	title         string
	showLogs      bool
	width, height int
	logRatio      float64
}

// NewApp creates the root TUI model around w.
func NewApp(w *widget.Widget, opts Options) *App {
	if opts.Title == "" {
		opts.Title = defaultTitle
	}
	if opts.Prompt == "" {
		opts.Prompt = "> "
	}
	app := &App{
		widget:     w,
		ctx:        context.Background(),
		logPanel:   NewLogPanel(),
		chatPanel:  NewChatPanel(),
		inputPanel: NewInputPanel(opts.Prompt),
		keys:       DefaultKeyMap(),
		help:       help.New(),
		title:      opts.Title,
		showLogs:   opts.ShowLogs,
		logRatio:   defaultLogRatio,
	}
	app.syncVisibility()
	return app
}

// Widget returns the hosted widget.
func (m *App) Widget() *widget.Widget { return m.widget }

func (m *App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, func() tea.Msg { return readyMsg{} })
}

func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case readyMsg:
		if entry, ok := m.widget.Initialize(); ok {
			return m, tea.Batch(m.syncVisibility(), m.appendEntry(entry))
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalcLayout()
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case ReplyMsg:
		if entry, ok := m.widget.Deliver(msg.Reply); ok {
			return m, m.appendEntry(entry)
		}
		return m, nil

	case LogLineMsg:
		_, cmd := m.logPanel.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		if m.widget.Visibility() == widget.Open {
			_, cmd := m.chatPanel.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	// Cursor blink and other internal messages belong to the input field.
	_, cmd := m.inputPanel.Update(msg)
	return m, cmd
}

func (m *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.ToggleLogs):
		m.showLogs = !m.showLogs
		m.recalcLayout()
		return nil
	}

	// Panel controls wait for the greeting so it is always the first entry.
	if !m.widget.Initialized() {
		_, cmd := m.inputPanel.Update(msg)
		return cmd
	}

	switch {
	case key.Matches(msg, m.keys.Open):
		m.widget.OpenPanel()
		return m.syncVisibility()
	case key.Matches(msg, m.keys.Close):
		m.widget.ClosePanel()
		return m.syncVisibility()
	case key.Matches(msg, m.keys.Send):
		return m.submit()
	}

	if m.widget.Visibility() != widget.Open {
		return nil
	}
	switch msg.Type {
	case tea.KeyPgUp, tea.KeyPgDown:
		_, cmd := m.chatPanel.Update(msg)
		return cmd
	}
	_, cmd := m.inputPanel.Update(msg)
	return cmd
}

// submit runs the send flow: the user entry is appended now, the request runs
// as a command and its ReplyMsg is delivered whenever it arrives.
func (m *App) submit() tea.Cmd {
	out, entry, ok := m.widget.Submit(m.inputPanel.Buffer())
	if !ok {
		return nil
	}
	w, ctx := m.widget, m.ctx
	fetch := func() tea.Msg {
		return ReplyMsg{Reply: w.Fetch(ctx, out)}
	}
	return tea.Batch(m.appendEntry(entry), fetch)
}

func (m *App) appendEntry(entry widget.Message) tea.Cmd {
	_, cmd := m.chatPanel.Update(ChatMsg{Message: entry})
	return cmd
}

// syncVisibility enables only the controls that make sense for the current
// panel state and moves focus accordingly.
func (m *App) syncVisibility() tea.Cmd {
	open := m.widget.Visibility() == widget.Open
	m.keys.Send.SetEnabled(open)
	m.keys.Close.SetEnabled(open)
	m.keys.Open.SetEnabled(!open)
	if open {
		return m.inputPanel.Focus()
	}
	m.inputPanel.Blur()
	return nil
}

func (m *App) View() string {
	if m.width == 0 || m.height == 0 {
		return "initializing..."
	}

	sep := separatorStyle.Render(strings.Repeat("─", m.width))
	var sections []string
	if m.showLogs {
		sections = append(sections, m.logPanel.View(), sep)
	}

	if m.widget.Visibility() == widget.Open {
		sections = append(sections,
			titleStyle.Render(m.title),
			m.chatPanel.View(),
			sep,
			m.inputPanel.View(),
		)
	} else {
		sections = append(sections, launcherStyle.Render(m.title+" is closed. Press ctrl+o to open."))
	}

	sections = append(sections, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *App) recalcLayout() {
	const (
		titleH = 1
		inputH = 1
		helpH  = 1
		sepH   = 1
	)

	usable := max(m.height-titleH-inputH-helpH-sepH, 2)
	if m.showLogs {
		usable = max(usable-sepH, 2)
		logH := max(int(float64(usable)*m.logRatio), 1)
		m.logPanel.SetSize(m.width, logH)
		usable = max(usable-logH, 1)
	}

	m.chatPanel.SetSize(m.width, usable)
	m.inputPanel.SetSize(m.width, inputH)
	m.help.Width = m.width
}
