package tui

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

const tabWidth = 4

// Sanitize turns arbitrary message text into inert display text: terminal
// escape sequences are dropped and remaining control characters removed, so
// neither side of the conversation can restyle or move the screen.
func Sanitize(s string) string {
	s = ansi.Strip(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
	return strings.Map(func(r rune) rune {
		if r == '\n' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
