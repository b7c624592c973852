package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/linanwx/chatwidget/tui"
	"github.com/linanwx/chatwidget/widget"
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send one message and print the conversation",
	Long: `Run a single round trip without the panel: the greeting, your message and
the reply (or the error text) are printed one per line.

Examples:
  chatwidget send -m "hello"
  chatwidget send --server http://localhost:8080 -m "what do you do?"`,
	RunE: runSend,
}

var sendText string

func init() {
	sendCmd.Flags().StringVarP(&sendText, "message", "m", "", "Message text (required)")
	_ = sendCmd.MarkFlagRequired("message")
	registerChatFlags(sendCmd)
	rootCmd.AddCommand(sendCmd)
}

func runSend(cmd *cobra.Command, _ []string) error {
	cfg, err := loadChatConfig(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	w := newWidget(cfg)
	w.Initialize()
	out, _, ok := w.Submit(&textBuffer{value: sendText})
	if !ok {
		return fmt.Errorf("message is empty")
	}
	_, _ = w.Deliver(w.Fetch(ctx, out))

	printTranscript(cmd.OutOrStdout(), w.Transcript())
	return nil
}

func printTranscript(out io.Writer, t *widget.Transcript) {
	for _, m := range t.Messages() {
		fmt.Fprintf(out, "%s: %s\n", m.Sender.Label(), tui.Sanitize(m.Text))
	}
}

// textBuffer is an InputBuffer over a flag value.
type textBuffer struct{ value string }

func (b *textBuffer) Value() string { return b.value }

func (b *textBuffer) Reset() { b.value = "" }

var _ widget.InputBuffer = (*textBuffer)(nil)
