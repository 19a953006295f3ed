package layout

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const resetCode = "\x1b[0m"

// StripANSI removes ANSI escape codes from a string.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// VisibleLength returns the display width of a string in terminal cells,
// ignoring ANSI codes. Wide runes count twice.
func VisibleLength(s string) int {
	return ansi.StringWidth(s)
}

// TruncateText truncates text to maxWidth cells with ellipsis.
// Returns the truncated text and whether truncation occurred.
func TruncateText(text string, maxWidth int, cfg TextConfig) (string, bool) {
	if maxWidth <= 0 {
		return "", true
	}
	if VisibleLength(text) <= maxWidth {
		return text, false
	}

	// Not enough room for any text before the ellipsis.
	if maxWidth <= VisibleLength(cfg.Ellipsis) {
		return ansi.Truncate(cfg.Ellipsis, maxWidth, ""), true
	}
	return ansi.Truncate(text, maxWidth, cfg.Ellipsis), true
}

// TruncateANSIAware truncates styled text, preserving ANSI codes. A reset
// code is appended after truncation so styles do not bleed into the next
// cell.
func TruncateANSIAware(styledText string, maxWidth int, cfg TextConfig) string {
	if maxWidth <= 0 {
		return ""
	}
	if VisibleLength(styledText) <= maxWidth {
		return styledText
	}

	tail := cfg.Ellipsis
	if VisibleLength(tail) > maxWidth {
		tail = ansi.Truncate(tail, maxWidth, "")
	}
	out := ansi.Truncate(styledText, maxWidth, tail)
	if !strings.HasSuffix(out, resetCode) {
		out += resetCode
	}
	return out
}

// PadRight pads s with spaces to width cells. Longer strings are returned
// unchanged.
func PadRight(s string, width int) string {
	if gap := width - VisibleLength(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
