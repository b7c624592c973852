package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/linanwx/chatwidget/widget"
)

var (
	userLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")) // cyan
	botLabelStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5")) // magenta
)

// ChatPanel displays the transcript in a scrollable viewport pinned to the
// newest entry.
type ChatPanel struct {
	viewport viewport.Model
	entries  []widget.Message
	width    int
}

// NewChatPanel creates a chat panel.
func NewChatPanel() *ChatPanel {
	vp := viewport.New(0, 0)
	vp.SetContent("")
	return &ChatPanel{viewport: vp}
}

func (p *ChatPanel) Update(msg tea.Msg) (Panel, tea.Cmd) {
	switch msg := msg.(type) {
	case ChatMsg:
		p.entries = append(p.entries, msg.Message)
		p.refresh()
		return p, nil
	}
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return p, cmd
}

func (p *ChatPanel) View() string {
	return p.viewport.View()
}

func (p *ChatPanel) SetSize(width, height int) {
	p.width = width
	p.viewport.Width = width
	p.viewport.Height = height
	p.refresh()
}

// Len returns the number of rendered entries.
func (p *ChatPanel) Len() int { return len(p.entries) }

// AtBottom reports whether the newest entry is in view.
func (p *ChatPanel) AtBottom() bool { return p.viewport.AtBottom() }

func (p *ChatPanel) refresh() {
	lines := make([]string, len(p.entries))
	for i, m := range p.entries {
		lines[i] = renderEntry(m, p.width)
	}
	p.viewport.SetContent(strings.Join(lines, "\n"))
	p.viewport.GotoBottom()
}

func renderEntry(m widget.Message, width int) string {
	label := botLabelStyle
	if m.Sender == widget.User {
		label = userLabelStyle
	}
	line := label.Render(m.Sender.Label()+":") + " " + Sanitize(m.Text)
	if width <= 0 {
		return line
	}
	return lipgloss.NewStyle().Width(width).Render(line)
}
