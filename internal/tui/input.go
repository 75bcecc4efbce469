package tui

import (
	"strings"
	"unicode/utf8"
)

// maxInputLen is the maximum number of runes allowed in form inputs.
const maxInputLen = 5000

// cursorGlyph marks the insertion point of the focused field.
const cursorGlyph = "█"

// editRune processes a keystroke for inline text editing.
// Handles backspace (rune-aware) and single printable characters.
// Returns the text unchanged for non-printable keys (enter, esc, etc.).
// Input is clamped to maxInputLen runes.
func editRune(text string, key string) string {
	switch key {
	case "backspace":
		if len(text) > 0 {
			runes := []rune(text)
			return string(runes[:len(runes)-1])
		}
		return text
	}
	if utf8.RuneCountInString(key) == 1 {
		if utf8.RuneCountInString(text) >= maxInputLen {
			return text
		}
		return text + key
	}
	return text
}

// truncateToHeight limits output to maxLines newline-delimited lines.
// Returns the original string if it fits or maxLines is <= 0.
func truncateToHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
			if n >= maxLines {
				return s[:i+1]
			}
		}
	}
	return s
}

// field is one labelled text input in a form.
type field struct {
	label       string
	value       string
	placeholder string
	masked      bool
	multiline   bool
}

// render draws the field on one line (or several for multiline values).
func (f field) render(focused bool) string {
	marker := "  "
	label := metaStyle.Render(f.label + ":")
	if focused {
		marker = inputPromptStyle.Render("> ")
		label = selectedStyle.Render(f.label + ":")
	}

	value := f.value
	if f.masked {
		value = strings.Repeat("*", utf8.RuneCountInString(value))
	}
	switch {
	case value == "" && !focused:
		value = inputPlaceholderStyle.Render(f.placeholder)
	case focused:
		value = normalStyle.Render(value) + accentStyle.Render(cursorGlyph)
	default:
		value = normalStyle.Render(value)
	}
	if f.multiline {
		value = strings.ReplaceAll(value, "\n", "\n    ")
	}
	return " " + marker + label + " " + value
}
