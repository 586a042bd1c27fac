package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// maxInputLen is the maximum number of runes allowed in form inputs.
const maxInputLen = 500

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
	case "space":
		key = " "
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

// formField is one labelled input of a form.
type formField struct {
	label    string
	value    string
	required bool
	secret   bool
	// choice fields cycle with h/l instead of accepting text.
	choice bool
	hint   string
}

// renderForm draws fields with a cursor on focus.
func renderForm(b *strings.Builder, fields []formField, focus int) {
	for i, f := range fields {
		cursor := " "
		style := metaStyle
		if i == focus {
			cursor = inputPromptStyle.Render(">")
			style = selectedStyle
		}
		label := f.label
		if f.required {
			label += "*"
		}

		value := f.value
		if f.secret {
			value = strings.Repeat("•", utf8.RuneCountInString(value))
		}
		switch {
		case f.choice:
			value = accentStyle.Render(value) + "  " + dimStyle.Render("(h/l to cycle)")
		case i == focus:
			value += "█"
		case value == "" && f.hint != "":
			value = inputPlaceholderStyle.Render(f.hint)
		}
		fmt.Fprintf(b, " %s %s %s\n", cursor, style.Render(fmt.Sprintf("%-12s", label)), value)
	}
}
