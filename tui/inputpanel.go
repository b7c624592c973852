package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/linanwx/chatwidget/widget"
)

// InputPanel provides the single-line message field. Enter never reaches it;
// the App turns Enter into a send.
type InputPanel struct {
	input         textinput.Model
	width, height int
}

// NewInputPanel creates an input panel with the given prompt.
func NewInputPanel(prompt string) *InputPanel {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = "Type your message..."
	ti.Focus()
	return &InputPanel{input: ti}
}

func (p *InputPanel) Update(msg tea.Msg) (Panel, tea.Cmd) {
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *InputPanel) View() string {
	return p.input.View()
}

func (p *InputPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.input.Width = max(width-lipgloss.Width(p.input.Prompt)-1, 1)
}

// Buffer exposes the field to the widget's send flow.
func (p *InputPanel) Buffer() widget.InputBuffer {
	return &p.input
}

func (p *InputPanel) Focus() tea.Cmd { return p.input.Focus() }

func (p *InputPanel) Blur() { p.input.Blur() }

// SetValue replaces the field contents.
func (p *InputPanel) SetValue(s string) { p.input.SetValue(s) }

func (p *InputPanel) Value() string { return p.input.Value() }
