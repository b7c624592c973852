// Package tui hosts the chat widget in a terminal.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/linanwx/chatwidget/widget"
)

// Panel is a composable TUI region with its own state, update logic, and view.
// The root App model orchestrates panels without knowing their internals.
type Panel interface {
	Update(tea.Msg) (Panel, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// LogLineMsg carries a single log line from the logger writer.
type LogLineMsg struct{ Line string }

// ChatMsg carries one transcript entry to the chat panel.
type ChatMsg struct{ Message widget.Message }

// ReplyMsg resumes a send once its request has finished.
type ReplyMsg struct{ Reply widget.Reply }

// readyMsg is the one-shot start signal produced by Init.
type readyMsg struct{}
