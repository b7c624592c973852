package tui

import (
	"bytes"
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/linanwx/chatwidget/logger"
)

// Run shows app full screen until the user quits or ctx is cancelled.
// Logger output is redirected to the log panel for the duration.
func Run(ctx context.Context, app *App) error {
	app.ctx = ctx
	program := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	// Send blocks until the program loop runs, so nothing may log between
	// Intercept and Run.
	logger.Info("chat widget starting")
	logger.Intercept(&logWriter{program: program})
	_, err := program.Run()
	logger.Restore()

	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		err = nil
	}
	logger.Info("chat widget stopped", "messages", app.widget.Transcript().Len(), "pending", app.widget.Pending())
	return err
}

// logWriter implements io.Writer and sends each write as a LogLineMsg to the TUI.
type logWriter struct {
	program *tea.Program
}

func (w *logWriter) Write(p []byte) (int, error) {
	for _, line := range bytes.Split(p, []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		w.program.Send(LogLineMsg{Line: string(line)})
	}
	return len(p), nil
}
