package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if maxLen <= 0 || utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

// oneLine collapses newlines and runs of whitespace so a post body fits a
// single list row.
func oneLine(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

// wrapLines word-wraps text to width and returns the lines.
func wrapLines(text string, width int) []string {
	if width < 20 {
		width = 20
	}
	return strings.Split(lipgloss.NewStyle().Width(width).Render(text), "\n")
}

// plural returns "post" or "posts" for n.
func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
