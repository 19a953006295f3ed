package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	Title        lipgloss.Style
	Row          lipgloss.Style // base row, background set per node color
	Cursor       lipgloss.Style // gutter marker of the selected row
	Dragged      lipgloss.Style // the row being dragged
	Match        lipgloss.Style
	URL          lipgloss.Style
	Accept       lipgloss.Style // hover verdict: drop allowed
	Reject       lipgloss.Style // hover verdict: drop refused
	DropZone     lipgloss.Style
	DropZoneOver lipgloss.Style
	Help         lipgloss.Style
	Empty        lipgloss.Style
	HintKey      lipgloss.Style // Key portion of hints (e.g., "enter", "j/k")
	HintDesc     lipgloss.Style // Description portion of hints (e.g., "confirm", "move")
	LightText    lipgloss.Color // text on dark node colors
	DarkText     lipgloss.Color // text on light node colors
}

// DefaultStyles returns the default style configuration.
// Industrial design: grayscale with single desaturated teal accent.
func DefaultStyles() Styles {
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"} // secondary text
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"} // desaturated teal
	danger := lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}
	border := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#505050"}

	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Row: lipgloss.NewStyle(),

		Cursor: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Dragged: lipgloss.NewStyle().
			Faint(true).
			Italic(true),

		Match: lipgloss.NewStyle().
			Bold(true).
			Underline(true),

		URL: lipgloss.NewStyle().
			Faint(true),

		Accept: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#338833", Dark: "#66CC66"}),

		Reject: lipgloss.NewStyle().
			Bold(true).
			Foreground(danger),

		DropZone: lipgloss.NewStyle().
			Foreground(border),

		DropZoneOver: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Help: lipgloss.NewStyle().
			Foreground(subtle),

		Empty: lipgloss.NewStyle().
			Foreground(subtle),

		HintKey: lipgloss.NewStyle().
			Foreground(subtle),

		HintDesc: lipgloss.NewStyle().
			Foreground(subtle),

		LightText: lipgloss.Color("#f5f5f5"),
		DarkText:  lipgloss.Color("#1a1a1a"),
	}
}
