package tui

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// formatTime renders a relative timestamp for order listings.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if maxLen <= 0 || utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

// cycleIndex moves idx by delta within n, wrapping around.
func cycleIndex(idx, delta, n int) int {
	if n == 0 {
		return 0
	}
	return ((idx+delta)%n + n) % n
}

// moveCursor applies j/k style navigation to cursor over n rows.
func moveCursor(cursor int, key string, n int) int {
	switch key {
	case "j", "down":
		if cursor < n-1 {
			cursor++
		}
	case "k", "up":
		if cursor > 0 {
			cursor--
		}
	}
	return cursor
}
